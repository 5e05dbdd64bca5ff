package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"worklog/internal/domain/tracker"
	"worklog/internal/domain/worklog"
	"worklog/internal/shared/biztime"
	"worklog/internal/shared/errors"
	"worklog/internal/shared/logger"
)

// reassignMessage is the fixed system comment attached to the ticket when
// auto-reassignment kicks in on start.
const reassignMessage = "Automatically reassigning in order to start work."

type StartWorkCommand struct {
	Username string
	TicketID uint

	// When is the start time as unix seconds; zero means now.
	When int64
}

type StartWorkResult struct {
	Started   bool   `json:"started"`
	Reason    string `json:"reason,omitempty"`
	TicketID  uint   `json:"ticket_id"`
	StartTime int64  `json:"start_time,omitempty"`
}

type StartWorkUseCase struct {
	repo     worklog.Repository
	tickets  tracker.TicketStore
	settings worklog.SettingsProvider
	stopWork StopWorkExecutor
	logger   logger.Interface
	now      func() int64
}

func NewStartWorkUseCase(
	repo worklog.Repository,
	tickets tracker.TicketStore,
	settings worklog.SettingsProvider,
	stopWork StopWorkExecutor,
	logger logger.Interface,
) *StartWorkUseCase {
	return &StartWorkUseCase{
		repo:     repo,
		tickets:  tickets,
		settings: settings,
		stopWork: stopWork,
		logger:   logger,
		now:      biztime.NowUnix,
	}
}

func (uc *StartWorkUseCase) Execute(ctx context.Context, cmd StartWorkCommand) (*StartWorkResult, error) {
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	username := cmd.Username
	if username == "" {
		username = worklog.AnonymousUser
	}

	when := cmd.When
	if when == 0 {
		when = uc.now()
	}

	t, err := uc.tickets.GetByID(ctx, cmd.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %d not found", cmd.TicketID))
	}

	settings, err := uc.settingsFor(ctx, t.ProjectID)
	if err != nil {
		return nil, err
	}

	ok, reason, err := canStart(ctx, uc.repo, settings, username, t)
	if err != nil {
		uc.logger.Errorw("start policy check failed", "ticket_id", t.ID, "worker", username, "error", err)
		return nil, errors.NewInternalError("failed to check start policy", err.Error())
	}
	if !ok {
		return &StartWorkResult{Started: false, Reason: reason, TicketID: t.ID}, nil
	}

	// Only reachable when auto-reassignment is enabled; canStart rejects
	// foreign tickets otherwise.
	if !t.IsOwnedBy(username) {
		t.Owner = username
		t.Status = settings.ReassignStatus
		t.Resolution = settings.ReassignResolution
		if err := uc.tickets.Save(ctx, t, username, reassignMessage, when); err != nil {
			uc.logger.Errorw("failed to reassign ticket", "ticket_id", t.ID, "worker", username, "error", err)
			return nil, errors.NewInternalError("failed to reassign ticket", err.Error())
		}

		// The in-memory ticket is stale after the tracker save.
		if t, err = uc.tickets.GetByID(ctx, cmd.TicketID); err != nil {
			uc.logger.Errorw("failed to reload ticket after reassignment", "ticket_id", cmd.TicketID, "error", err)
			return nil, errors.NewInternalError("failed to reload ticket", err.Error())
		}

		uc.logger.Infow("ticket reassigned to start work", "ticket_id", t.ID, "worker", username)
	}

	if settings.AllowTaskSwitch {
		// Best-effort stop of the previous task one second before the new
		// start. A "no active tasks" rejection is the expected, harmless
		// case and is deliberately swallowed.
		stopCmd := StopWorkCommand{
			Username:  username,
			ProjectID: t.ProjectID,
			StopTime:  when - 1,
			Comment:   fmt.Sprintf("Stopping work on this ticket to start work on #%d.", t.ID),
		}
		if _, err := uc.stopWork.Execute(ctx, stopCmd); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.InsertStart(ctx, username, t.ID, when); err != nil {
		if stderrors.Is(err, worklog.ErrTicketBusy) {
			// Lost the race against a concurrent start.
			return &StartWorkResult{
				Started:  false,
				Reason:   fmt.Sprintf("Another user has just started working on ticket #%d.", t.ID),
				TicketID: t.ID,
			}, nil
		}
		uc.logger.Errorw("failed to record work start", "ticket_id", t.ID, "worker", username, "error", err)
		return nil, errors.NewInternalError("failed to record work start", err.Error())
	}

	uc.logger.Infow("work started", "ticket_id", t.ID, "worker", username, "start_time", when)

	return &StartWorkResult{Started: true, TicketID: t.ID, StartTime: when}, nil
}

func (uc *StartWorkUseCase) settingsFor(ctx context.Context, projectID uint) (worklog.Settings, error) {
	scopeID, err := uc.settings.ResolveScope(ctx, projectID)
	if err != nil {
		uc.logger.Errorw("failed to resolve settings scope", "project_id", projectID, "error", err)
		return worklog.Settings{}, errors.NewInternalError("failed to resolve settings scope", err.Error())
	}

	settings, err := uc.settings.Settings(ctx, scopeID)
	if err != nil {
		uc.logger.Errorw("failed to load scope settings", "scope_id", scopeID, "error", err)
		return worklog.Settings{}, errors.NewInternalError("failed to load scope settings", err.Error())
	}

	return settings, nil
}
