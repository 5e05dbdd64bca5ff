// Package worklog contains the work interval model: one entry per start
// event, closed in place when work stops. The open sentinel (EndTime == 0)
// marks the active task; (worker, ticket, last_change) identifies an entry.
package worklog

import "fmt"

// OpenEndTime is the sentinel end time of an entry whose work is ongoing.
const OpenEndTime int64 = 0

// AnonymousUser is the reserved username meaning "not logged in". It is
// owned by the surrounding tracker; the work log only treats it as a
// sentinel that may never hold an interval.
const AnonymousUser = "anonymous"

// Entry is a single work interval. Entries are only ever created by the
// repository (insert-on-start), so the package exposes reconstruction for
// the persistence layer rather than a creation constructor.
type Entry struct {
	worker     string
	ticketID   uint
	lastChange int64
	startTime  int64
	endTime    int64
	comment    string

	// Joined from the external ticket table for display purposes.
	summary      string
	ticketStatus string
}

// ReconstructEntry rebuilds an Entry from persistence.
func ReconstructEntry(
	worker string,
	ticketID uint,
	lastChange int64,
	startTime int64,
	endTime int64,
	comment string,
	summary string,
	ticketStatus string,
) (*Entry, error) {
	if worker == "" {
		return nil, fmt.Errorf("worker is required")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if startTime <= 0 {
		return nil, fmt.Errorf("start time must be positive")
	}
	if endTime != OpenEndTime && endTime <= startTime {
		return nil, fmt.Errorf("end time %d is not after start time %d", endTime, startTime)
	}

	return &Entry{
		worker:       worker,
		ticketID:     ticketID,
		lastChange:   lastChange,
		startTime:    startTime,
		endTime:      endTime,
		comment:      comment,
		summary:      summary,
		ticketStatus: ticketStatus,
	}, nil
}

func (e *Entry) Worker() string {
	return e.worker
}

func (e *Entry) TicketID() uint {
	return e.ticketID
}

func (e *Entry) LastChange() int64 {
	return e.lastChange
}

func (e *Entry) StartTime() int64 {
	return e.startTime
}

func (e *Entry) EndTime() int64 {
	return e.endTime
}

func (e *Entry) Comment() string {
	return e.comment
}

func (e *Entry) Summary() string {
	return e.summary
}

func (e *Entry) TicketStatus() string {
	return e.ticketStatus
}

// IsOpen reports whether the entry still carries the open sentinel.
func (e *Entry) IsOpen() bool {
	return e.endTime == OpenEndTime
}

// Duration returns the worked seconds of a closed entry, zero while open.
func (e *Entry) Duration() int64 {
	if e.IsOpen() {
		return 0
	}
	return e.endTime - e.startTime
}
