package models

// TicketChangeModel records a comment written back to a ticket together
// with its author and time, mirroring the tracker's change journal.
type TicketChangeModel struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	TicketID uint   `gorm:"column:ticket;not null;index"`
	Author   string `gorm:"column:author;type:varchar(255);not null"`
	Time     int64  `gorm:"column:time;not null;index"`
	Comment  string `gorm:"column:comment;type:text"`
}

// TableName returns the table name for GORM
func (TicketChangeModel) TableName() string {
	return "ticket_changes"
}
