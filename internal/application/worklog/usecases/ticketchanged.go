package usecases

import (
	"context"
	"fmt"

	"worklog/internal/domain/tracker"
	"worklog/internal/domain/worklog"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
)

type TicketChangedCommand struct {
	TicketID  uint
	OldStatus string
	NewStatus string

	// When is the tracker-side change time as unix seconds; zero means now.
	When int64
}

type TicketChangedResult struct {
	Stopped bool   `json:"stopped"`
	Worker  string `json:"worker,omitempty"`
}

// TicketChangedUseCase reacts to tracker ticket changes: when a ticket
// transitions into the closed status and the scope enables it, whoever
// holds the ticket open is stopped on their behalf.
type TicketChangedUseCase struct {
	repo     worklog.Repository
	tickets  tracker.TicketStore
	settings worklog.SettingsProvider
	stopWork StopWorkExecutor
	logger   logger.Interface
}

func NewTicketChangedUseCase(
	repo worklog.Repository,
	tickets tracker.TicketStore,
	settings worklog.SettingsProvider,
	stopWork StopWorkExecutor,
	logger logger.Interface,
) *TicketChangedUseCase {
	return &TicketChangedUseCase{
		repo:     repo,
		tickets:  tickets,
		settings: settings,
		stopWork: stopWork,
		logger:   logger,
	}
}

func (uc *TicketChangedUseCase) Execute(ctx context.Context, cmd TicketChangedCommand) (*TicketChangedResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	// Only a transition into closed matters. A change on an already closed
	// ticket (comment edits and the like) must not stop anyone.
	if cmd.NewStatus != tracker.StatusClosed || cmd.OldStatus == tracker.StatusClosed {
		return &TicketChangedResult{Stopped: false}, nil
	}

	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load changed ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	scopeID, err := uc.settings.ResolveScope(ctx, t.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to resolve settings scope", "project_id", t.ProjectID, "error", err)
		return nil, errors.NewInternalError("failed to resolve settings scope", err.Error())
	}
	settings, err := uc.settings.Settings(ctx, scopeID)
	if err != nil {
		uc.logger.Errorw("failed to load scope settings", "scope_id", scopeID, "error", err)
		return nil, errors.NewInternalError("failed to load scope settings", err.Error())
	}
	if !settings.AutoStopOnClose {
		return &TicketChangedResult{Stopped: false}, nil
	}

	open, err := uc.repo.FindOpen(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to look up open work", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewInternalError("failed to look up open work", err.Error())
	}
	if open == nil {
		return &TicketChangedResult{Stopped: false}, nil
	}

	res, err := uc.stopWork.Execute(ctx, StopWorkCommand{
		Username:  open.Worker,
		ProjectID: t.ProjectID,
		StopTime:  cmd.When,
	})
	if err != nil {
		return nil, err
	}
	if !res.Stopped {
		// Raced a manual stop; nothing left to do.
		uc.logger.Infow("auto-stop skipped", "ticket_id", cmd.TicketID, "worker", open.Worker, "reason", res.Reason)
		return &TicketChangedResult{Stopped: false}, nil
	}

	uc.logger.Infow("work auto-stopped on ticket close", "ticket_id", cmd.TicketID, "worker", open.Worker)

	return &TicketChangedResult{Stopped: true, Worker: open.Worker}, nil
}
