package models

// WorkLogModel is the GORM model for the work_logs table. A row is one
// work interval; end_time 0 marks the interval as still open. The
// composite key mirrors the append-only nature of the log: a worker can
// hold many rows per ticket, one per change time.
type WorkLogModel struct {
	Worker     string `gorm:"column:worker;type:varchar(255);primaryKey"`
	TicketID   uint   `gorm:"column:ticket;primaryKey"`
	LastChange int64  `gorm:"column:lastchange;primaryKey"`
	StartTime  int64  `gorm:"column:starttime;not null;index"`
	EndTime    int64  `gorm:"column:endtime;not null;default:0;index"`
	Comment    string `gorm:"column:comment;type:text"`
}

// TableName returns the table name for GORM
func (WorkLogModel) TableName() string {
	return "work_logs"
}
