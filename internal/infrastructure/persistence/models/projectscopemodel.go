package models

// ProjectScopeModel maps a project to its configuration scope. Projects
// without a row fall back to scope 0, the shared default scope.
type ProjectScopeModel struct {
	ProjectID uint `gorm:"column:project_id;primaryKey"`
	ScopeID   uint `gorm:"column:scope_id;not null;index"`
}

// TableName returns the table name for GORM
func (ProjectScopeModel) TableName() string {
	return "project_scopes"
}
