package worklog

import "context"

// ListMode selects the shape of a project work-log listing.
type ListMode string

const (
	// ModeAll lists every entry of the project, newest change first.
	ModeAll ListMode = "all"
	// ModeUser lists every entry of a single worker, newest change first.
	ModeUser ListMode = "user"
	// ModeLatest lists one entry per worker, the most recently changed.
	ModeLatest ListMode = "latest"
)

// IsValid reports whether the mode is one of the supported listings.
func (m ListMode) IsValid() bool {
	switch m {
	case ModeAll, ModeUser, ModeLatest:
		return true
	}
	return false
}

// OpenWork identifies who currently holds a ticket and since when.
type OpenWork struct {
	Worker string
	Since  int64
}

// EventKind discriminates timeline events.
type EventKind string

const (
	EventStart EventKind = "start"
	EventStop  EventKind = "stop"
)

// Event is a single point on the project timeline: a work start or stop.
type Event struct {
	Kind      EventKind
	Worker    string
	TicketID  uint
	Summary   string
	Status    string
	Time      int64
	StartTime int64
	Comment   string
}

// Repository is the durable record of start/stop events.
//
// All mutations run inside the caller-scoped transaction when one is
// carried by the context. Zero-row mutations surface as ErrTicketBusy /
// ErrStaleEntry rather than silent no-ops.
type Repository interface {
	// InsertStart creates a new open entry for (worker, ticket) at the
	// given unix time. It fails with ErrTicketBusy when the ticket
	// already has an open entry, whoever holds it.
	InsertStart(ctx context.Context, worker string, ticketID uint, when int64) error

	// CloseOpen closes the open entry matching worker, ticket and
	// lastChange, setting end time and last change to stopTime and
	// attaching the comment. ErrStaleEntry when no such open entry exists.
	CloseOpen(ctx context.Context, worker string, ticketID uint, lastChange, stopTime int64, comment string) error

	// FindOpen returns who holds the ticket open, or nil when nobody does.
	FindOpen(ctx context.Context, ticketID uint) (*OpenWork, error)

	// LatestForWorker returns the worker's most recently changed entry
	// within the project, ties broken by the smaller end time so that an
	// open entry wins. Nil when the worker has no entries there.
	LatestForWorker(ctx context.Context, worker string, projectID uint) (*Entry, error)

	// List returns project entries. ModeUser requires a worker; the other
	// modes ignore it.
	List(ctx context.Context, projectID uint, worker string, mode ListMode) ([]*Entry, error)

	// TimelineEvents returns the start/stop events of a project between
	// two unix timestamps (inclusive), ordered by event time.
	TimelineEvents(ctx context.Context, projectID uint, from, to int64) ([]Event, error)
}
