package tracker

import "errors"

// ErrTicketNotFound is returned by TicketStore lookups for unknown IDs.
var ErrTicketNotFound = errors.New("ticket not found")
