package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/teamtasker/task-manager-api/internal/models"
	"github.com/teamtasker/task-manager-api/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidStatus   = errors.New("invalid task status")
)

// TaskService handles task business logic. Assignee and team references
// are validated against the store before any write.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, teamRepo repository.TeamRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		teamRepo: teamRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  *uint64
	TeamID      *uint64
	Progress    int
	Status      models.TaskStatus
	Deadline    *time.Time
}

// CreateTask creates a new task after validating every reference and range.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if input.Progress < models.MinProgress || input.Progress > models.MaxProgress {
		return nil, ErrInvalidProgress
	}

	if input.AssignedTo != nil {
		if err := s.ensureUserExists(*input.AssignedTo); err != nil {
			return nil, err
		}
	}
	if input.TeamID != nil {
		if err := s.ensureTeamExists(*input.TeamID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		TeamID:      input.TeamID,
		Progress:    input.Progress,
		Status:      input.Status,
		Deadline:    input.Deadline,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns a task by ID.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	Status     *models.TaskStatus
	AssignedTo *uint64
	TeamID     *uint64
	Page       int
	PageSize   int
}

// ListTasks returns tasks matching the provided filters.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		Status:     input.Status,
		AssignedTo: input.AssignedTo,
		TeamID:     input.TeamID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateTaskInput represents a partial task update. Only non-nil fields are
// applied; the Clear flags reset the corresponding optional reference.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	AssignedTo    *uint64
	TeamID        *uint64
	Progress      *int
	Status        *models.TaskStatus
	Deadline      *time.Time
	ClearAssignee bool
	ClearTeam     bool
	ClearDeadline bool
}

// UpdateTask applies the supplied fields to an existing task, validating
// each against the same rules as creation.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Progress != nil {
		if *input.Progress < models.MinProgress || *input.Progress > models.MaxProgress {
			return nil, ErrInvalidProgress
		}
		task.Progress = *input.Progress
	}
	if input.ClearAssignee {
		task.AssignedTo = nil
	} else if input.AssignedTo != nil {
		if err := s.ensureUserExists(*input.AssignedTo); err != nil {
			return nil, err
		}
		task.AssignedTo = input.AssignedTo
	}
	if input.ClearTeam {
		task.TeamID = nil
	} else if input.TeamID != nil {
		if err := s.ensureTeamExists(*input.TeamID); err != nil {
			return nil, err
		}
		task.TeamID = input.TeamID
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListByUser returns the tasks assigned to a user.
func (s *TaskService) ListByUser(userID uint64) ([]models.Task, error) {
	if err := s.ensureUserExists(userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user tasks: %w", err)
	}

	return tasks, nil
}

// ListByTeam returns the tasks owned by a team.
func (s *TaskService) ListByTeam(teamID uint64) ([]models.Task, error) {
	if err := s.ensureTeamExists(teamID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team tasks: %w", err)
	}

	return tasks, nil
}

func (s *TaskService) ensureUserExists(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}

func (s *TaskService) ensureTeamExists(teamID uint64) error {
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}
	return nil
}
