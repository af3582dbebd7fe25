package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-labs/ticketera/internal/domain"
	"github.com/helpdesk-labs/ticketera/internal/repository"
	apperrors "github.com/helpdesk-labs/ticketera/pkg/util"
)

type fakeTicketRepo struct {
	nextID  int64
	clock   time.Time
	tickets map[int64]domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		tickets: make(map[int64]domain.Ticket),
	}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.nextID++
	f.clock = f.clock.Add(time.Minute)
	ticket.ID = f.nextID
	ticket.CreatedAt = f.clock
	f.tickets[ticket.ID] = *ticket
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (f *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		result = append(result, ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeTicketRepo) SetStatus(_ context.Context, id int64, status domain.TicketStatus) error {
	ticket, ok := f.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	f.tickets[id] = ticket
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.tickets, id)
	return nil
}

func TestTicketServiceCreate(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, "  Printer down  ", "\t3rd floor printer out of toner\n")
	require.NoError(t, err)
	require.Equal(t, "Printer down", ticket.Title)
	require.Equal(t, "3rd floor printer out of toner", ticket.Description)
	require.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.NotZero(t, ticket.ID)
	require.False(t, ticket.CreatedAt.IsZero())
}

func TestTicketServiceCreateRejectsEmptyFields(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()

	for _, tc := range []struct {
		name        string
		title       string
		description string
	}{
		{"empty title", "", "something"},
		{"empty description", "something", ""},
		{"whitespace only", "   ", "\t\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.title, tc.description)
			require.Error(t, err)
			require.True(t, apperrors.IsValidation(err))
		})
	}
	require.Empty(t, repo.tickets, "validation failures must not persist rows")
}

func TestTicketServiceListFilters(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, "uno", "primero")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "dos", "segundo")
	require.NoError(t, err)
	third, err := svc.Create(ctx, "tres", "tercero")
	require.NoError(t, err)
	require.NoError(t, svc.Close(ctx, second.ID))

	all, err := svc.List(ctx, FilterAll)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, third.ID, all[0].ID, "newest first")
	require.Equal(t, first.ID, all[2].ID)

	open, err := svc.List(ctx, FilterOpen)
	require.NoError(t, err)
	require.Len(t, open, 2)
	for _, ticket := range open {
		require.Equal(t, domain.TicketStatusOpen, ticket.Status)
	}

	closed, err := svc.List(ctx, FilterClosed)
	require.NoError(t, err)
	require.Len(t, closed, 1)
	require.Equal(t, second.ID, closed[0].ID)

	// unknown filter values behave as "todos"
	garbage, err := svc.List(ctx, "whatever")
	require.NoError(t, err)
	require.Len(t, garbage, 3)
}

func TestTicketServiceCloseIsIdempotent(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, "uno", "primero")
	require.NoError(t, err)

	require.NoError(t, svc.Close(ctx, ticket.ID))
	require.NoError(t, svc.Close(ctx, ticket.ID))

	got, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusClosed, got.Status)
}

func TestTicketServiceCloseUnknownID(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo())

	err := svc.Close(context.Background(), 42)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, 404, domainErr.HTTPStatus)
}

func TestTicketServiceDelete(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, "uno", "primero")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, ticket.ID))

	listed, err := svc.List(ctx, FilterAll)
	require.NoError(t, err)
	require.Empty(t, listed)

	err = svc.Delete(ctx, ticket.ID)
	require.Error(t, err)
	require.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
}
