package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"worklog/internal/domain/tracker"
	"worklog/internal/infrastructure/persistence/models"
	"worklog/internal/shared/db"
	"worklog/internal/shared/logger"
)

// TicketNotifier delivers ticket-change notifications. Delivery is best
// effort; a failed notification never rolls back the save.
type TicketNotifier interface {
	NotifyTicketChanged(ctx context.Context, t *tracker.Ticket, author, comment string) error
}

// TicketStore implements tracker.TicketStore against the tracker's tables
type TicketStore struct {
	db       *gorm.DB
	txm      *db.TransactionManager
	notifier TicketNotifier
	logger   logger.Interface
}

// NewTicketStore creates a new TicketStore
func NewTicketStore(gdb *gorm.DB, notifier TicketNotifier, logger logger.Interface) tracker.TicketStore {
	return &TicketStore{
		db:       gdb,
		txm:      db.NewTransactionManager(gdb),
		notifier: notifier,
		logger:   logger,
	}
}

// GetByID retrieves a ticket by ID
func (s *TicketStore) GetByID(ctx context.Context, id uint) (*tracker.Ticket, error) {
	tx := db.GetTxFromContext(ctx, s.db)

	var model models.TicketModel
	err := tx.First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tracker.ErrTicketNotFound
		}
		s.logger.Error("failed to get ticket", "ticket", id, "error", err)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return &tracker.Ticket{
		ID:         model.ID,
		ProjectID:  model.ProjectID,
		Summary:    model.Summary,
		Owner:      model.Owner,
		Status:     model.Status,
		Resolution: model.Resolution,
		Hours:      model.Hours,
	}, nil
}

// Save persists the ticket's mutable fields and the change comment in one
// transaction, then notifies. The notification is fired after commit so a
// delivery failure cannot undo the saved change.
func (s *TicketStore) Save(ctx context.Context, t *tracker.Ticket, author, message string, when int64) error {
	err := s.txm.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx := s.txm.GetTx(txCtx)

		result := tx.Model(&models.TicketModel{}).
			Where("id = ?", t.ID).
			Updates(map[string]interface{}{
				"owner":      t.Owner,
				"status":     t.Status,
				"resolution": t.Resolution,
				"hours":      t.Hours,
				"changetime": when,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update ticket: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return tracker.ErrTicketNotFound
		}

		if message != "" {
			change := models.TicketChangeModel{
				TicketID: t.ID,
				Author:   author,
				Time:     when,
				Comment:  message,
			}
			if err := tx.Create(&change).Error; err != nil {
				return fmt.Errorf("failed to record ticket change: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("failed to save ticket", "ticket", t.ID, "error", err)
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyTicketChanged(ctx, t, author, message); err != nil {
			s.logger.Warn("ticket change notification failed", "ticket", t.ID, "error", err)
		}
	}

	return nil
}
