package models

// TicketModel is the GORM model for the tracker-owned tickets table. The
// work log reads it and only ever writes owner, status, resolution and
// the hours field; everything else belongs to the tracker.
type TicketModel struct {
	ID         uint    `gorm:"primaryKey;autoIncrement"`
	ProjectID  uint    `gorm:"column:project_id;not null;index"`
	Summary    string  `gorm:"column:summary;type:varchar(500);not null"`
	Owner      string  `gorm:"column:owner;type:varchar(255);index"`
	Status     string  `gorm:"column:status;type:varchar(50);not null;index"`
	Resolution string  `gorm:"column:resolution;type:varchar(50)"`
	Hours      float64 `gorm:"column:hours;default:0"`
	ChangeTime int64   `gorm:"column:changetime;not null;default:0"`
}

// TableName returns the table name for GORM
func (TicketModel) TableName() string {
	return "tickets"
}
