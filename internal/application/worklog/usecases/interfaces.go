package usecases

import "context"

// StartWorkExecutor starts work on a ticket.
type StartWorkExecutor interface {
	Execute(ctx context.Context, cmd StartWorkCommand) (*StartWorkResult, error)
}

// StopWorkExecutor stops the caller's active task. It is also consumed by
// the start flow (task switching) and the ticket-change reaction
// (auto-stop on close).
type StopWorkExecutor interface {
	Execute(ctx context.Context, cmd StopWorkCommand) (*StopWorkResult, error)
}

// TicketChangedExecutor reacts to a tracker-side ticket change.
type TicketChangedExecutor interface {
	Execute(ctx context.Context, cmd TicketChangedCommand) (*TicketChangedResult, error)
}

// WhoIsWorkingOnExecutor looks up who holds a ticket open.
type WhoIsWorkingOnExecutor interface {
	Execute(ctx context.Context, cmd WhoIsWorkingOnQuery) (*WhoIsWorkingOnResult, error)
}

// ActiveTaskExecutor returns the caller's currently open task, if any.
type ActiveTaskExecutor interface {
	Execute(ctx context.Context, cmd ActiveTaskQuery) (*ActiveTaskResult, error)
}

// LatestTaskExecutor returns the caller's most recent task, open or not.
type LatestTaskExecutor interface {
	Execute(ctx context.Context, cmd LatestTaskQuery) (*LatestTaskResult, error)
}

// ListWorkLogExecutor lists a project's work log.
type ListWorkLogExecutor interface {
	Execute(ctx context.Context, cmd ListWorkLogQuery) (*ListWorkLogResult, error)
}

// TimelineExecutor returns a project's start/stop events in a time range.
type TimelineExecutor interface {
	Execute(ctx context.Context, cmd TimelineQuery) (*TimelineResult, error)
}
