package models

import "time"

// WorklogSettingModel is the GORM model for per-scope setting overrides.
// Absent keys fall back to the compiled-in defaults.
type WorklogSettingModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ScopeID    uint      `gorm:"column:scope_id;not null;uniqueIndex:idx_scope_key"`
	SettingKey string    `gorm:"column:setting_key;type:varchar(100);not null;uniqueIndex:idx_scope_key"`
	Value      string    `gorm:"column:value;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (WorklogSettingModel) TableName() string {
	return "worklog_settings"
}
