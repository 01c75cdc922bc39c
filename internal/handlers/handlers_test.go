package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/teamtasker/task-manager-api/internal/database"
	"github.com/teamtasker/task-manager-api/internal/middleware"
	"github.com/teamtasker/task-manager-api/internal/models"
	"github.com/teamtasker/task-manager-api/internal/repository"
	"github.com/teamtasker/task-manager-api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

// setupTestEnv builds the full handler stack against an in-memory
// database, mounted on the same route layout as the server.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, "test-secret", 30*time.Minute)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, teamRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService, taskService)
	teamHandler := NewTeamHandler(teamService, taskService)
	taskHandler := NewTaskHandler(taskService)

	r := gin.New()

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.RequireAuth(authService), authHandler.Me)
	}

	users := r.Group("/users")
	users.Use(middleware.RequireAuth(authService))
	{
		users.GET("", userHandler.ListUsers)
		users.PUT("/:id", middleware.RequireAdmin(), userHandler.UpdateUser)
		users.DELETE("/:id", middleware.RequireAdmin(), userHandler.DeleteUser)
		users.GET("/:id/tasks", userHandler.ListUserTasks)
	}

	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth(authService))
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	teams := r.Group("/teams")
	teams.Use(middleware.RequireAuth(authService))
	{
		teams.GET("", teamHandler.ListTeams)
		teams.POST("", middleware.RequireAdmin(), teamHandler.CreateTeam)
		teams.GET("/:id", teamHandler.GetTeam)
		teams.DELETE("/:id", middleware.RequireAdmin(), teamHandler.DeleteTeam)
		teams.GET("/:id/members", teamHandler.ListMembers)
		teams.POST("/:id/members/:user_id", middleware.RequireAdmin(), teamHandler.AddMember)
		teams.DELETE("/:id/members/:user_id", middleware.RequireAdmin(), teamHandler.RemoveMember)
		teams.GET("/:id/tasks", teamHandler.ListTeamTasks)
	}

	return testEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

// doJSON performs a request with an optional JSON body and bearer token.
func (e testEnv) doJSON(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account and returns its token and ID.
func (e testEnv) registerAndLogin(t *testing.T, username, password string, isAdmin bool) (string, uint64) {
	t.Helper()

	w := e.doJSON(t, http.MethodPost, "/auth/register", "", map[string]any{
		"username": username,
		"password": password,
		"is_admin": isAdmin,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var registered struct {
		ID uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))

	w = e.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)

	return login.AccessToken, registered.ID
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
