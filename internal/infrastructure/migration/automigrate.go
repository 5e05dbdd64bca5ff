package migration

import (
	"worklog/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.WorkLogModel{},
		&models.TicketModel{},
		&models.TicketChangeModel{},
		&models.ProjectScopeModel{},
		&models.WorklogSettingModel{},
	}
}
