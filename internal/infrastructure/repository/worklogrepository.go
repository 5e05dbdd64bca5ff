package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"worklog/internal/domain/worklog"
	"worklog/internal/infrastructure/persistence/models"
	"worklog/internal/shared/db"
	"worklog/internal/shared/logger"
)

// entryRow is the scan target for work log queries joined with tickets.
type entryRow struct {
	Worker     string `gorm:"column:worker"`
	TicketID   uint   `gorm:"column:ticket"`
	LastChange int64  `gorm:"column:lastchange"`
	StartTime  int64  `gorm:"column:starttime"`
	EndTime    int64  `gorm:"column:endtime"`
	Comment    string `gorm:"column:comment"`
	Summary    string `gorm:"column:summary"`
	Status     string `gorm:"column:status"`
}

// WorkLogRepository implements worklog.Repository on MySQL
type WorkLogRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewWorkLogRepository creates a new WorkLogRepository
func NewWorkLogRepository(gdb *gorm.DB, logger logger.Interface) worklog.Repository {
	return &WorkLogRepository{db: gdb, logger: logger}
}

// InsertStart creates an open entry only when the ticket has no other open
// entry. The guard and the insert run as one statement so concurrent
// starts on the same ticket admit exactly one winner.
func (r *WorkLogRepository) InsertStart(ctx context.Context, worker string, ticketID uint, when int64) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Exec(`
		INSERT INTO work_logs (worker, ticket, lastchange, starttime, endtime, comment)
		SELECT ?, ?, ?, ?, 0, ''
		FROM DUAL
		WHERE NOT EXISTS (
			SELECT 1 FROM work_logs WHERE ticket = ? AND endtime = 0
		)`,
		worker, ticketID, when, when, ticketID)
	if result.Error != nil {
		r.logger.Error("failed to insert work start", "worker", worker, "ticket", ticketID, "error", result.Error)
		return fmt.Errorf("failed to insert work start: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return worklog.ErrTicketBusy
	}

	return nil
}

// CloseOpen closes the open entry identified by worker, ticket and last
// change. Matching on lastchange and endtime = 0 makes the close an
// optimistic-concurrency check: a row someone else already closed leaves
// zero rows affected.
func (r *WorkLogRepository) CloseOpen(ctx context.Context, worker string, ticketID uint, lastChange, stopTime int64, comment string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.WorkLogModel{}).
		Where("worker = ? AND ticket = ? AND lastchange = ? AND endtime = 0", worker, ticketID, lastChange).
		Updates(map[string]interface{}{
			"endtime":    stopTime,
			"lastchange": stopTime,
			"comment":    comment,
		})
	if result.Error != nil {
		r.logger.Error("failed to close work entry", "worker", worker, "ticket", ticketID, "error", result.Error)
		return fmt.Errorf("failed to close work entry: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return worklog.ErrStaleEntry
	}

	return nil
}

// FindOpen returns who holds the ticket open, or nil when nobody does
func (r *WorkLogRepository) FindOpen(ctx context.Context, ticketID uint) (*worklog.OpenWork, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.WorkLogModel
	err := tx.Where("ticket = ? AND endtime = 0", ticketID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to find open work", "ticket", ticketID, "error", err)
		return nil, fmt.Errorf("failed to find open work: %w", err)
	}

	return &worklog.OpenWork{Worker: model.Worker, Since: model.StartTime}, nil
}

// LatestForWorker returns the worker's most recently changed entry in the
// project. Ties on lastchange resolve to the open entry (smaller endtime)
// so a just-started task outranks the stop that preceded it.
func (r *WorkLogRepository) LatestForWorker(ctx context.Context, worker string, projectID uint) (*worklog.Entry, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []entryRow
	err := tx.Raw(`
		SELECT w.worker, w.ticket, w.lastchange, w.starttime, w.endtime, w.comment,
		       t.summary, t.status
		FROM work_logs w
		JOIN tickets t ON t.id = w.ticket
		WHERE w.worker = ? AND t.project_id = ?
		ORDER BY w.lastchange DESC, w.endtime ASC
		LIMIT 1`,
		worker, projectID).Scan(&rows).Error
	if err != nil {
		r.logger.Error("failed to query latest entry", "worker", worker, "project_id", projectID, "error", err)
		return nil, fmt.Errorf("failed to query latest entry: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return rowToEntry(rows[0])
}

// Listings come back newest change first with the worker name breaking
// ties, so same-second entries keep a stable order.
const (
	listUserQuery = `
		SELECT w.worker, w.ticket, w.lastchange, w.starttime, w.endtime, w.comment,
		       t.summary, t.status
		FROM work_logs w
		JOIN tickets t ON t.id = w.ticket
		WHERE t.project_id = ? AND w.worker = ?
		ORDER BY w.lastchange DESC, w.worker ASC`

	listLatestQuery = `
		SELECT worker, ticket, lastchange, starttime, endtime, comment, summary, status
		FROM (
			SELECT w.worker, w.ticket, w.lastchange, w.starttime, w.endtime, w.comment,
			       t.summary, t.status,
			       ROW_NUMBER() OVER (
				       PARTITION BY w.worker
				       ORDER BY w.lastchange DESC, w.endtime ASC
			       ) AS rn
			FROM work_logs w
			JOIN tickets t ON t.id = w.ticket
			WHERE t.project_id = ?
		) ranked
		WHERE rn = 1
		ORDER BY lastchange DESC, worker ASC`

	listAllQuery = `
		SELECT w.worker, w.ticket, w.lastchange, w.starttime, w.endtime, w.comment,
		       t.summary, t.status
		FROM work_logs w
		JOIN tickets t ON t.id = w.ticket
		WHERE t.project_id = ?
		ORDER BY w.lastchange DESC, w.worker ASC`
)

// List returns project entries in the requested shape
func (r *WorkLogRepository) List(ctx context.Context, projectID uint, worker string, mode worklog.ListMode) ([]*worklog.Entry, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var (
		rows []entryRow
		err  error
	)

	switch mode {
	case worklog.ModeUser:
		err = tx.Raw(listUserQuery, projectID, worker).Scan(&rows).Error
	case worklog.ModeLatest:
		err = tx.Raw(listLatestQuery, projectID).Scan(&rows).Error
	default:
		err = tx.Raw(listAllQuery, projectID).Scan(&rows).Error
	}
	if err != nil {
		r.logger.Error("failed to list work log", "project_id", projectID, "mode", mode, "error", err)
		return nil, fmt.Errorf("failed to list work log: %w", err)
	}

	entries := make([]*worklog.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := rowToEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// TimelineEvents returns the start and stop events of a project between
// two unix timestamps, ordered by event time
func (r *WorkLogRepository) TimelineEvents(ctx context.Context, projectID uint, from, to int64) ([]worklog.Event, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	type eventRow struct {
		Kind      string `gorm:"column:kind"`
		Worker    string `gorm:"column:worker"`
		TicketID  uint   `gorm:"column:ticket"`
		Summary   string `gorm:"column:summary"`
		Status    string `gorm:"column:status"`
		EventTime int64  `gorm:"column:event_time"`
		StartTime int64  `gorm:"column:starttime"`
		Comment   string `gorm:"column:comment"`
	}

	var rows []eventRow
	err := tx.Raw(`
		SELECT 'start' AS kind, w.worker, w.ticket, t.summary, t.status,
		       w.starttime AS event_time, w.starttime, '' AS comment
		FROM work_logs w
		JOIN tickets t ON t.id = w.ticket
		WHERE t.project_id = ? AND w.starttime BETWEEN ? AND ?
		UNION ALL
		SELECT 'stop' AS kind, w.worker, w.ticket, t.summary, t.status,
		       w.endtime AS event_time, w.starttime, w.comment
		FROM work_logs w
		JOIN tickets t ON t.id = w.ticket
		WHERE t.project_id = ? AND w.endtime <> 0 AND w.endtime BETWEEN ? AND ?
		ORDER BY event_time ASC`,
		projectID, from, to, projectID, from, to).Scan(&rows).Error
	if err != nil {
		r.logger.Error("failed to query timeline events", "project_id", projectID, "error", err)
		return nil, fmt.Errorf("failed to query timeline events: %w", err)
	}

	events := make([]worklog.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, worklog.Event{
			Kind:      worklog.EventKind(row.Kind),
			Worker:    row.Worker,
			TicketID:  row.TicketID,
			Summary:   row.Summary,
			Status:    row.Status,
			Time:      row.EventTime,
			StartTime: row.StartTime,
			Comment:   row.Comment,
		})
	}
	return events, nil
}

func rowToEntry(row entryRow) (*worklog.Entry, error) {
	entry, err := worklog.ReconstructEntry(
		row.Worker, row.TicketID, row.LastChange,
		row.StartTime, row.EndTime,
		row.Comment, row.Summary, row.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct work entry: %w", err)
	}
	return entry, nil
}
