// Package tracker defines the contract with the external ticket system.
// Tickets, users and permissions are owned by the tracker; the work log
// only reads ticket state and writes back through the save-with-notify
// capability the tracker exposes.
package tracker

import "context"

// StatusClosed is the tracker status that terminates work on a ticket.
const StatusClosed = "closed"

// Ticket is the slice of the external ticket entity the work log needs.
type Ticket struct {
	ID         uint
	ProjectID  uint
	Summary    string
	Owner      string
	Status     string
	Resolution string

	// Hours is the tracker's custom numeric field billed hours are
	// written into when the hours integration is enabled.
	Hours float64
}

// IsClosed reports whether the ticket is in the closed status.
func (t *Ticket) IsClosed() bool {
	return t.Status == StatusClosed
}

// IsOwnedBy reports whether the given username owns the ticket.
func (t *Ticket) IsOwnedBy(username string) bool {
	return t.Owner == username
}

// TicketStore is the external ticket capability. Save persists the ticket
// fields and triggers the tracker's notification side effect as one
// atomic operation; its internals belong to the tracker.
type TicketStore interface {
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	Save(ctx context.Context, t *Ticket, author, message string, when int64) error
}
