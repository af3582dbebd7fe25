package auth

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-labs/ticketera/internal/domain"
	"github.com/helpdesk-labs/ticketera/internal/repository"
	"github.com/helpdesk-labs/ticketera/internal/session"
)

const currentUserKey = "current_user"

// Middleware resolves the signed-in user from the cookie session.
type Middleware struct {
	sessions *session.Manager
	users    repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(sessions *session.Manager, users repository.UserRepository) *Middleware {
	return &Middleware{sessions: sessions, users: users}
}

// LoadUser populates the current user when a valid session exists, without
// gating the route. Public pages use it to render the signed-in state.
func (m *Middleware) LoadUser(c *fiber.Ctx) error {
	if user := m.resolve(c); user != nil {
		c.Locals(currentUserKey, user)
	}
	return c.Next()
}

// RequireLogin gates a route behind authentication. Anonymous requests are
// redirected to the login page, carrying the requested path so login can
// send the user onward.
func (m *Middleware) RequireLogin(c *fiber.Ctx) error {
	user := m.resolve(c)
	if user == nil {
		return c.Redirect("/login?next="+url.QueryEscape(c.OriginalURL()), fiber.StatusFound)
	}
	c.Locals(currentUserKey, user)
	return c.Next()
}

func (m *Middleware) resolve(c *fiber.Ctx) *domain.User {
	if user, ok := c.Locals(currentUserKey).(*domain.User); ok {
		return user
	}
	id, ok := m.sessions.UserID(c)
	if !ok {
		return nil
	}
	user, err := m.users.GetByID(c.Context(), id)
	if err != nil {
		// stale session referencing a removed account behaves as anonymous
		if err == pgx.ErrNoRows {
			_ = m.sessions.SignOut(c)
		}
		return nil
	}
	return user
}

// CurrentUser retrieves the authenticated user placed by the middleware.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(currentUserKey).(*domain.User)
	return user, ok
}
