package repository

import (
	"github.com/teamtasker/task-manager-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users with pagination
	List(page, pageSize int) ([]models.User, int64, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete removes a user, clearing task assignments and team
	// memberships in the same transaction
	Delete(id uint64) error
}

// TeamRepository defines the interface for team and membership data access
type TeamRepository interface {
	// Create creates a new team
	Create(team *models.Team) error

	// FindByID finds a team by ID
	FindByID(id uint64) (*models.Team, error)

	// FindByName finds a team by name
	FindByName(name string) (*models.Team, error)

	// List retrieves all teams
	List() ([]models.Team, error)

	// Delete removes a team, detaching its tasks and removing its
	// memberships in the same transaction
	Delete(id uint64) error

	// AddMember inserts a membership row; inserting an existing
	// membership is a no-op
	AddMember(member *models.TeamMember) error

	// RemoveMember deletes the membership row for (teamID, userID)
	RemoveMember(teamID, userID uint64) error

	// FindMember finds a specific membership row
	FindMember(teamID, userID uint64) (*models.TeamMember, error)

	// ListMembers lists all memberships of a team with users preloaded
	ListMembers(teamID uint64) ([]models.TeamMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListByAssignee lists tasks assigned to a user
	ListByAssignee(userID uint64) ([]models.Task, error)

	// ListByTeam lists tasks owned by a team
	ListByTeam(teamID uint64) ([]models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status     *models.TaskStatus
	AssignedTo *uint64
	TeamID     *uint64
	Page       int
	PageSize   int
}
