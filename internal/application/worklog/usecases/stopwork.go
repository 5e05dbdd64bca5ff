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
	"worklog/internal/shared/utils"
)

// hoursRecordedMessage is the generic ticket comment used on the hours
// path when no human-readable sentence was composed.
const hoursRecordedMessage = "Hours recorded automatically by the work log service."

type StopWorkCommand struct {
	Username  string
	ProjectID uint

	// StopTime is the explicit stop time as unix seconds; zero means now.
	// Explicit values are validated against the active task's start time
	// and the current time.
	StopTime int64

	Comment string
}

type StopWorkResult struct {
	Stopped  bool    `json:"stopped"`
	Reason   string  `json:"reason,omitempty"`
	TicketID uint    `json:"ticket_id,omitempty"`
	StopTime int64   `json:"stop_time,omitempty"`
	Hours    float64 `json:"hours,omitempty"`
}

type StopWorkUseCase struct {
	repo     worklog.Repository
	tickets  tracker.TicketStore
	settings worklog.SettingsProvider
	logger   logger.Interface
	now      func() int64
}

func NewStopWorkUseCase(
	repo worklog.Repository,
	tickets tracker.TicketStore,
	settings worklog.SettingsProvider,
	logger logger.Interface,
) *StopWorkUseCase {
	return &StopWorkUseCase{
		repo:     repo,
		tickets:  tickets,
		settings: settings,
		logger:   logger,
		now:      biztime.NowUnix,
	}
}

func (uc *StopWorkUseCase) Execute(ctx context.Context, cmd StopWorkCommand) (*StopWorkResult, error) {
	if cmd.ProjectID == 0 {
		return nil, errors.NewValidationError("project ID is required")
	}

	active, err := activeTask(ctx, uc.repo, cmd.Username, cmd.ProjectID)
	if err != nil {
		uc.logger.Errorw("failed to look up active task", "worker", cmd.Username, "project_id", cmd.ProjectID, "error", err)
		return nil, errors.NewInternalError("failed to look up active task", err.Error())
	}
	if active == nil {
		return &StopWorkResult{Stopped: false, Reason: "There are no active tasks."}, nil
	}

	now := uc.now()
	stopTime := cmd.StopTime
	if stopTime != 0 {
		if stopTime <= active.StartTime() {
			return &StopWorkResult{
				Stopped: false,
				Reason:  "You cannot set your stop time to that value as it is before the start time.",
			}, nil
		}
		if stopTime > now {
			return &StopWorkResult{
				Stopped: false,
				Reason:  "You cannot set your stop time to that value as it is in the future.",
			}, nil
		}
	} else {
		stopTime = now
	}

	err = uc.repo.CloseOpen(ctx, cmd.Username, active.TicketID(), active.LastChange(), stopTime, cmd.Comment)
	if err != nil {
		if stderrors.Is(err, worklog.ErrStaleEntry) {
			// A concurrent stop or auto-stop already closed the entry.
			return &StopWorkResult{Stopped: false, Reason: "Your active task has already been stopped."}, nil
		}
		uc.logger.Errorw("failed to close work entry", "worker", cmd.Username, "ticket_id", active.TicketID(), "error", err)
		return nil, errors.NewInternalError("failed to close work entry", err.Error())
	}

	settings, err := uc.settingsFor(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}

	var hours float64
	if settings.HoursIntegrationEnabled() {
		hours = worklog.BillableHours(active.StartTime(), stopTime, settings.RoundUpMinutes)
	}

	// Compose at most one ticket comment. The aggregate-hours integration
	// replaces the descriptive sentence with a generic note; the hours
	// path always wins over the plain comment path. The worker's literal
	// comment is appended after a blank line either way.
	var message string
	if settings.RecordTotalHours {
		message = fmt.Sprintf("%s %v hours", hoursRecordedMessage, hours)
	} else if settings.AutoComment || cmd.Comment != "" {
		message = fmt.Sprintf("%s worked on this ticket for %s between %s and %s.",
			cmd.Username,
			utils.HumanDuration(active.StartTime(), stopTime),
			biztime.FormatUnix(active.StartTime()),
			biztime.FormatUnix(stopTime))
	}
	if cmd.Comment != "" && message != "" {
		message += "\n\n" + cmd.Comment
	}

	switch {
	case settings.HoursIntegrationEnabled():
		if message == "" {
			message = hoursRecordedMessage
		}
		if err := uc.saveTicket(ctx, active.TicketID(), cmd.Username, message, stopTime, hours, settings.RecordHoursField); err != nil {
			return nil, err
		}
	case message != "":
		if err := uc.saveTicket(ctx, active.TicketID(), cmd.Username, message, stopTime, 0, false); err != nil {
			return nil, err
		}
	}

	uc.logger.Infow("work stopped",
		"worker", cmd.Username,
		"ticket_id", active.TicketID(),
		"stop_time", stopTime,
		"hours", hours)

	return &StopWorkResult{
		Stopped:  true,
		TicketID: active.TicketID(),
		StopTime: stopTime,
		Hours:    hours,
	}, nil
}

// saveTicket performs the single per-stop ticket mutation: optionally
// writing the billed hours into the custom field, then persisting with the
// composed comment through the tracker's save-and-notify capability.
func (uc *StopWorkUseCase) saveTicket(
	ctx context.Context,
	ticketID uint,
	author, message string,
	when int64,
	hours float64,
	writeHours bool,
) error {
	t, err := uc.tickets.GetByID(ctx, ticketID)
	if err != nil {
		uc.logger.Errorw("failed to load ticket for stop comment", "ticket_id", ticketID, "error", err)
		return errors.NewInternalError("failed to load ticket", err.Error())
	}

	if writeHours {
		t.Hours = hours
	}

	if err := uc.tickets.Save(ctx, t, author, message, when); err != nil {
		uc.logger.Errorw("failed to save ticket on stop", "ticket_id", ticketID, "error", err)
		return errors.NewInternalError("failed to save ticket", err.Error())
	}

	return nil
}

func (uc *StopWorkUseCase) settingsFor(ctx context.Context, projectID uint) (worklog.Settings, error) {
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
