package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-labs/ticketera/internal/domain"
	"github.com/helpdesk-labs/ticketera/internal/repository"
	apperrors "github.com/helpdesk-labs/ticketera/pkg/util"
)

// Listing filter values accepted from the query string.
const (
	FilterAll    = "todos"
	FilterOpen   = "abiertos"
	FilterClosed = "cerrados"
)

// TicketService implements the ticket lifecycle: create, list, close, delete.
type TicketService struct {
	tickets repository.TicketRepository
}

// NewTicketService builds the service.
func NewTicketService(tickets repository.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

// List returns tickets newest-first, optionally narrowed by the status
// filter. Unknown filter values behave as FilterAll, matching the original
// unvalidated query parameter.
func (s *TicketService) List(ctx context.Context, statusFilter string) ([]domain.Ticket, error) {
	var filter repository.TicketFilter
	switch statusFilter {
	case FilterOpen:
		status := domain.TicketStatusOpen
		filter.Status = &status
	case FilterClosed:
		status := domain.TicketStatusClosed
		filter.Status = &status
	}
	return s.tickets.List(ctx, filter)
}

// Create validates and persists a new open ticket. Title and description are
// trimmed; either being empty is a validation failure and nothing is stored.
func (s *TicketService) Create(ctx context.Context, title, description string) (*domain.Ticket, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required")
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Close moves a ticket to its terminal status. Closing an already-closed
// ticket re-applies the same status and succeeds.
func (s *TicketService) Close(ctx context.Context, id int64) error {
	if err := s.tickets.SetStatus(ctx, id, domain.TicketStatusClosed); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("ticket")
		}
		return err
	}
	return nil
}

// Delete removes a ticket outright. There is no soft delete.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("ticket")
		}
		return err
	}
	return nil
}
