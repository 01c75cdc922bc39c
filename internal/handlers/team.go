package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamtasker/task-manager-api/internal/dto"
	apierrors "github.com/teamtasker/task-manager-api/internal/errors"
	"github.com/teamtasker/task-manager-api/internal/services"
)

// TeamHandler coordinates team and membership HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
	taskService *services.TaskService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService, taskService *services.TaskService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		taskService: taskService,
	}
}

// CreateTeam creates a new team.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	type CreateTeamRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidInput(c, "Invalid request body")
		return
	}

	team, err := h.teamService.CreateTeam(req.Name)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// ListTeams returns all teams.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTOs(teams))
}

// GetTeam returns a single team.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(id)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDTO(*team))
}

// DeleteTeam removes a team, detaching its tasks and members.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(id); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Team deleted successfully",
	})
}

// ListMembers returns the users belonging to a team.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.teamService.ListMembers(id)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(members))
}

// AddMember adds a user to a team.
func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.teamService.AddMember(teamID, userID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member added to team",
	})
}

// RemoveMember removes a user from a team.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(teamID, userID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed from team",
	})
}

// ListTeamTasks returns the tasks owned by a team.
func (h *TeamHandler) ListTeamTasks(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByTeam(id)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeTeamNotFound, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeUserNotFound, err.Error())
	case errors.Is(err, services.ErrMembershipNotFound):
		apierrors.NotFound(c, apierrors.ErrCodeMembershipNotFound, err.Error())
	case errors.Is(err, services.ErrTeamNameTaken):
		apierrors.BadRequest(c, apierrors.ErrCodeDuplicateTeamName, err.Error())
	case errors.Is(err, services.ErrTeamNameRequired):
		apierrors.InvalidInput(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
