package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/teamtasker/task-manager-api/internal/models"
	"github.com/teamtasker/task-manager-api/internal/repository"
)

type taskTestEnv struct {
	db          *gorm.DB
	taskService *TaskService
	user        *models.User
	team        *models.Team
}

func setupTaskTestEnv(t *testing.T) taskTestEnv {
	t.Helper()

	db := setupServiceDB(t)

	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	user := &models.User{Username: "worker", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	team := &models.Team{Name: "backend"}
	require.NoError(t, db.Create(team).Error)

	return taskTestEnv{
		db:          db,
		taskService: NewTaskService(taskRepo, userRepo, teamRepo),
		user:        user,
		team:        team,
	}
}

func TestTaskService_CreateTask_Defaults(t *testing.T) {
	env := setupTaskTestEnv(t)

	task, err := env.taskService.CreateTask(CreateTaskInput{Title: "X"})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusPending, task.Status)
	require.Equal(t, 0, task.Progress)
	require.Nil(t, task.AssignedTo)
	require.Nil(t, task.TeamID)
}

func TestTaskService_CreateTask_UnknownAssignee(t *testing.T) {
	env := setupTaskTestEnv(t)

	missing := env.user.ID + 1000
	_, err := env.taskService.CreateTask(CreateTaskInput{
		Title:      "X",
		AssignedTo: &missing,
	})
	require.ErrorIs(t, err, ErrUserNotFound)

	var count int64
	require.NoError(t, env.db.Model(&models.Task{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestTaskService_CreateTask_UnknownTeam(t *testing.T) {
	env := setupTaskTestEnv(t)

	missing := env.team.ID + 1000
	_, err := env.taskService.CreateTask(CreateTaskInput{
		Title:  "X",
		TeamID: &missing,
	})
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTaskService_CreateTask_ProgressBounds(t *testing.T) {
	env := setupTaskTestEnv(t)

	_, err := env.taskService.CreateTask(CreateTaskInput{Title: "X", Progress: -1})
	require.ErrorIs(t, err, ErrInvalidProgress)

	_, err = env.taskService.CreateTask(CreateTaskInput{Title: "X", Progress: 101})
	require.ErrorIs(t, err, ErrInvalidProgress)

	low, err := env.taskService.CreateTask(CreateTaskInput{Title: "X", Progress: 0})
	require.NoError(t, err)
	require.Equal(t, 0, low.Progress)

	high, err := env.taskService.CreateTask(CreateTaskInput{Title: "X", Progress: 100})
	require.NoError(t, err)
	require.Equal(t, 100, high.Progress)
}

func TestTaskService_CreateTask_InvalidStatus(t *testing.T) {
	env := setupTaskTestEnv(t)

	_, err := env.taskService.CreateTask(CreateTaskInput{
		Title:  "X",
		Status: models.TaskStatus("archived"),
	})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTaskService_UpdateTask_PartialFields(t *testing.T) {
	env := setupTaskTestEnv(t)

	task, err := env.taskService.CreateTask(CreateTaskInput{
		Title:      "X",
		AssignedTo: &env.user.ID,
	})
	require.NoError(t, err)

	progress := 50
	updated, err := env.taskService.UpdateTask(task.ID, UpdateTaskInput{Progress: &progress})
	require.NoError(t, err)
	require.Equal(t, 50, updated.Progress)
	require.Equal(t, "X", updated.Title)
	require.NotNil(t, updated.AssignedTo)
	require.Equal(t, env.user.ID, *updated.AssignedTo)

	status := models.TaskStatusDone
	updated, err = env.taskService.UpdateTask(task.ID, UpdateTaskInput{Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusDone, updated.Status)
	require.Equal(t, 50, updated.Progress)
}

func TestTaskService_UpdateTask_Validation(t *testing.T) {
	env := setupTaskTestEnv(t)

	task, err := env.taskService.CreateTask(CreateTaskInput{Title: "X"})
	require.NoError(t, err)

	bad := 101
	_, err = env.taskService.UpdateTask(task.ID, UpdateTaskInput{Progress: &bad})
	require.ErrorIs(t, err, ErrInvalidProgress)

	badStatus := models.TaskStatus("later")
	_, err = env.taskService.UpdateTask(task.ID, UpdateTaskInput{Status: &badStatus})
	require.ErrorIs(t, err, ErrInvalidStatus)

	missing := env.user.ID + 1000
	_, err = env.taskService.UpdateTask(task.ID, UpdateTaskInput{AssignedTo: &missing})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestTaskService_UpdateTask_ClearAssignee(t *testing.T) {
	env := setupTaskTestEnv(t)

	task, err := env.taskService.CreateTask(CreateTaskInput{
		Title:      "X",
		AssignedTo: &env.user.ID,
	})
	require.NoError(t, err)

	updated, err := env.taskService.UpdateTask(task.ID, UpdateTaskInput{ClearAssignee: true})
	require.NoError(t, err)
	require.Nil(t, updated.AssignedTo)
}

func TestTaskService_UpdateTask_NotFound(t *testing.T) {
	env := setupTaskTestEnv(t)

	title := "Y"
	_, err := env.taskService.UpdateTask(9999, UpdateTaskInput{Title: &title})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_DeleteTask(t *testing.T) {
	env := setupTaskTestEnv(t)

	task, err := env.taskService.CreateTask(CreateTaskInput{Title: "X"})
	require.NoError(t, err)

	require.NoError(t, env.taskService.DeleteTask(task.ID))
	require.ErrorIs(t, env.taskService.DeleteTask(task.ID), ErrTaskNotFound)
}

func TestTaskService_ListByUser(t *testing.T) {
	env := setupTaskTestEnv(t)

	_, err := env.taskService.CreateTask(CreateTaskInput{
		Title:      "mine",
		AssignedTo: &env.user.ID,
	})
	require.NoError(t, err)
	_, err = env.taskService.CreateTask(CreateTaskInput{Title: "unassigned"})
	require.NoError(t, err)

	tasks, err := env.taskService.ListByUser(env.user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "mine", tasks[0].Title)

	_, err = env.taskService.ListByUser(env.user.ID + 1000)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestTaskService_ListByTeam(t *testing.T) {
	env := setupTaskTestEnv(t)

	_, err := env.taskService.CreateTask(CreateTaskInput{
		Title:  "team task",
		TeamID: &env.team.ID,
	})
	require.NoError(t, err)

	tasks, err := env.taskService.ListByTeam(env.team.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	_, err = env.taskService.ListByTeam(env.team.ID + 1000)
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTaskService_ListTasks_StatusFilter(t *testing.T) {
	env := setupTaskTestEnv(t)

	_, err := env.taskService.CreateTask(CreateTaskInput{Title: "a"})
	require.NoError(t, err)
	_, err = env.taskService.CreateTask(CreateTaskInput{Title: "b", Status: models.TaskStatusDone})
	require.NoError(t, err)

	done := models.TaskStatusDone
	tasks, total, err := env.taskService.ListTasks(ListTasksInput{Status: &done})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, tasks, 1)
	require.Equal(t, "b", tasks[0].Title)

	bad := models.TaskStatus("nope")
	_, _, err = env.taskService.ListTasks(ListTasksInput{Status: &bad})
	require.ErrorIs(t, err, ErrInvalidStatus)
}
