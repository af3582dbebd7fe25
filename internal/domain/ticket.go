package domain

import "time"

// TicketStatus is free text at the storage layer; these two values are the
// ones the UI produces.
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "abierto"
	TicketStatusClosed TicketStatus = "cerrado"
)

// Ticket is a support request. There is no ownership or assignee; any
// authenticated user may close or delete any ticket.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	Status      TicketStatus
	CreatedAt   time.Time
}

// IsClosed reports whether the ticket reached its terminal UI state.
func (t *Ticket) IsClosed() bool {
	return t.Status == TicketStatusClosed
}
