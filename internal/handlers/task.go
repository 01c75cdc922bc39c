package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamtasker/task-manager-api/internal/dto"
	apierrors "github.com/teamtasker/task-manager-api/internal/errors"
	"github.com/teamtasker/task-manager-api/internal/models"
	"github.com/teamtasker/task-manager-api/internal/services"
	"github.com/teamtasker/task-manager-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string            `json:"title" binding:"required"`
		Description string            `json:"description"`
		AssignedTo  *uint64           `json:"assigned_to"`
		TeamID      *uint64           `json:"team_id"`
		Progress    int               `json:"progress"`
		Status      models.TaskStatus `json:"status"`
		Deadline    *time.Time        `json:"deadline"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		TeamID:      req.TeamID,
		Progress:    req.Progress,
		Status:      req.Status,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListTasks returns tasks, optionally filtered by status or assignee.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		input.Status = &status
	}
	if assignedStr := c.Query("assigned_to"); assignedStr != "" {
		assignedTo, err := strconv.ParseUint(assignedStr, 10, 64)
		if err != nil {
			apierrors.InvalidInput(c, "Invalid assigned_to parameter")
			return
		}
		input.AssignedTo = &assignedTo
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Tasks: dto.ToTaskDTOs(tasks),
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetTask returns a single task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title         *string            `json:"title"`
		Description   *string            `json:"description"`
		AssignedTo    *uint64            `json:"assigned_to"`
		TeamID        *uint64            `json:"team_id"`
		Progress      *int               `json:"progress"`
		Status        *models.TaskStatus `json:"status"`
		Deadline      *time.Time         `json:"deadline"`
		ClearAssignee bool               `json:"clear_assignee"`
		ClearTeam     bool               `json:"clear_team"`
		ClearDeadline bool               `json:"clear_deadline"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		AssignedTo:    req.AssignedTo,
		TeamID:        req.TeamID,
		Progress:      req.Progress,
		Status:        req.Status,
		Deadline:      req.Deadline,
		ClearAssignee: req.ClearAssignee,
		ClearTeam:     req.ClearTeam,
		ClearDeadline: req.ClearDeadline,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeTaskNotFound, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeUserNotFound, err.Error())
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeTeamNotFound, err.Error())
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.InvalidInput(c, err.Error())
	case errors.Is(err, services.ErrInvalidProgress):
		apierrors.BadRequest(c, apierrors.ErrCodeInvalidProgress, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, apierrors.ErrCodeInvalidStatus, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
