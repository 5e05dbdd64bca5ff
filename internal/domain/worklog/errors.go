package worklog

import "errors"

var (
	// ErrTicketBusy is returned by InsertStart when another open entry
	// already exists for the ticket. The conditional insert makes the
	// one-open-entry-per-ticket invariant hold even when two starts race
	// past the policy pre-check.
	ErrTicketBusy = errors.New("ticket already has an open work entry")

	// ErrStaleEntry is returned by CloseOpen when no open entry matches
	// the given (worker, ticket, last_change). The match on last_change
	// acts as an optimistic-concurrency check: a concurrent stop or
	// auto-stop already closed the entry.
	ErrStaleEntry = errors.New("open work entry was modified concurrently")
)
