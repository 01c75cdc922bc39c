package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teamtasker/task-manager-api/internal/config"
	"github.com/teamtasker/task-manager-api/internal/database"
	"github.com/teamtasker/task-manager-api/internal/handlers"
	"github.com/teamtasker/task-manager-api/internal/middleware"
	"github.com/teamtasker/task-manager-api/internal/repository"
	"github.com/teamtasker/task-manager-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.GinMode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	log.Infow("database connection established", "driver", cfg.DB.Driver)

	if err := database.Migrate(); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, teamRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, taskService)
	teamHandler := handlers.NewTeamHandler(teamService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

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

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("shutdown failed", "error", err)
	}
}
