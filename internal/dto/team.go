package dto

import (
	"github.com/teamtasker/task-manager-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:   team.ID,
		Name: team.Name,
	}
}

// ToTeamDTOs converts a slice of Team models
func ToTeamDTOs(teams []models.Team) []TeamDTO {
	dtos := make([]TeamDTO, len(teams))
	for i, t := range teams {
		dtos[i] = ToTeamDTO(t)
	}
	return dtos
}
