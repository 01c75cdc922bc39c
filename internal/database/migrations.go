package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/teamtasker/task-manager-api/internal/models"
)

// AddIndexes creates secondary indexes used by the list endpoints. Unique
// indexes on usernames and team names come from the model tags; these only
// speed up filtering.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model any
		name  string
	}{
		{&models.Task{}, "idx_tasks_assigned_to"},
		{&models.Task{}, "idx_tasks_team_id"},
		{&models.Task{}, "idx_tasks_status"},
		{&models.TeamMember{}, "idx_team_members_user_id"},
	}

	columns := map[string]string{
		"idx_tasks_assigned_to":    "assigned_to",
		"idx_tasks_team_id":        "team_id",
		"idx_tasks_status":         "status",
		"idx_team_members_user_id": "user_id",
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, columns[idx.name])
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
