package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"worklog/internal/domain/worklog"
	"worklog/internal/infrastructure/persistence/models"
	sharedConfig "worklog/internal/shared/config"
	"worklog/internal/shared/db"
	"worklog/internal/shared/logger"
)

// ScopeSettingsRepository implements worklog.SettingsProvider and
// worklog.SettingsStore. Effective settings are the compiled-in defaults,
// overlaid by the service configuration, overlaid by the scope's stored
// values.
type ScopeSettingsRepository struct {
	db     *gorm.DB
	cfg    *sharedConfig.WorklogConfig
	logger logger.Interface
}

// NewScopeSettingsRepository creates a new ScopeSettingsRepository
func NewScopeSettingsRepository(gdb *gorm.DB, cfg *sharedConfig.WorklogConfig, logger logger.Interface) *ScopeSettingsRepository {
	return &ScopeSettingsRepository{db: gdb, cfg: cfg, logger: logger}
}

// ResolveScope maps a project to its configuration scope. Projects
// without a mapping share scope 0.
func (r *ScopeSettingsRepository) ResolveScope(ctx context.Context, projectID uint) (uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.ProjectScopeModel
	err := tx.Where("project_id = ?", projectID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		r.logger.Error("failed to resolve project scope", "project_id", projectID, "error", err)
		return 0, fmt.Errorf("failed to resolve project scope: %w", err)
	}

	return model.ScopeID, nil
}

// Settings returns the effective settings of a scope
func (r *ScopeSettingsRepository) Settings(ctx context.Context, scopeID uint) (worklog.Settings, error) {
	values, err := r.Values(ctx, scopeID)
	if err != nil {
		return worklog.Settings{}, err
	}

	settings := r.baseSettings()
	settings.Apply(values)
	return settings, nil
}

// Values returns the raw stored key/value pairs of a scope
func (r *ScopeSettingsRepository) Values(ctx context.Context, scopeID uint) (map[string]string, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var modelList []models.WorklogSettingModel
	err := tx.Where("scope_id = ?", scopeID).
		Order("setting_key ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Error("failed to load scope settings", "scope_id", scopeID, "error", err)
		return nil, fmt.Errorf("failed to load scope settings: %w", err)
	}

	values := make(map[string]string, len(modelList))
	for _, m := range modelList {
		values[m.SettingKey] = m.Value
	}
	return values, nil
}

// SetValues upserts scope settings. An empty value deletes the key so the
// default applies again.
func (r *ScopeSettingsRepository) SetValues(ctx context.Context, scopeID uint, values map[string]string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	for key, value := range values {
		if value == "" {
			err := tx.Where("scope_id = ? AND setting_key = ?", scopeID, key).
				Delete(&models.WorklogSettingModel{}).Error
			if err != nil {
				r.logger.Error("failed to delete scope setting", "scope_id", scopeID, "key", key, "error", err)
				return fmt.Errorf("failed to delete scope setting: %w", err)
			}
			continue
		}

		model := models.WorklogSettingModel{
			ScopeID:    scopeID,
			SettingKey: key,
			Value:      value,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope_id"}, {Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&model).Error
		if err != nil {
			r.logger.Error("failed to upsert scope setting", "scope_id", scopeID, "key", key, "error", err)
			return fmt.Errorf("failed to upsert scope setting: %w", err)
		}
	}

	return nil
}

// baseSettings merges the service configuration over the compiled-in
// defaults. Zero-valued config fields leave the defaults untouched.
func (r *ScopeSettingsRepository) baseSettings() worklog.Settings {
	settings := worklog.DefaultSettings()
	if r.cfg == nil {
		return settings
	}

	settings.AutoComment = r.cfg.AutoComment
	settings.AutoStopOnClose = r.cfg.AutoStopOnClose
	settings.AutoReassignOnStart = r.cfg.AutoReassignOnStart
	settings.AllowTaskSwitch = r.cfg.AllowTaskSwitch
	settings.RecordHoursField = r.cfg.RecordHoursField
	settings.RecordTotalHours = r.cfg.RecordTotalHours
	if r.cfg.ReassignStatus != "" {
		settings.ReassignStatus = r.cfg.ReassignStatus
	}
	if r.cfg.ReassignResolution != "" {
		settings.ReassignResolution = r.cfg.ReassignResolution
	}
	if statuses := worklog.SplitStatuses(r.cfg.EligibleStatuses); len(statuses) > 0 {
		settings.EligibleStatuses = statuses
	}
	if r.cfg.RoundUpMinutes >= 1 {
		settings.RoundUpMinutes = r.cfg.RoundUpMinutes
	}

	return settings
}
