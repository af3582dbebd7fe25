package session

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"github.com/helpdesk-labs/ticketera/internal/config"
)

const (
	localsKey  = "app_session"
	userIDKey  = "user_id"
	flashesKey = "flashes"

	// flash messages are stored as a single string; messages never contain
	// newlines so this separator is safe.
	flashSeparator = "\n"
)

// Manager owns the cookie session and exposes login state and flash messages
// to handlers. All mutations within a request share one session instance and
// are persisted by the Middleware after the handler chain returns.
type Manager struct {
	store *session.Store
}

type requestSession struct {
	sess  *session.Session
	dirty bool
}

// NewManager builds a Manager. A nil storage falls back to fiber's in-memory
// session storage.
func NewManager(cfg config.SessionConfig, storage fiber.Storage) *Manager {
	return &Manager{store: session.New(session.Config{
		Storage:        storage,
		Expiration:     cfg.TTL(),
		KeyLookup:      "cookie:" + cfg.CookieName,
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
	})}
}

// Middleware loads the session once per request and saves it after the
// handlers finish, but only when something was written. Requests that never
// touch the session do not set a cookie.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := m.store.Get(c)
		if err != nil {
			return err
		}
		rs := &requestSession{sess: sess}
		c.Locals(localsKey, rs)

		err = c.Next()

		if rs.dirty {
			if saveErr := rs.sess.Save(); saveErr != nil && err == nil {
				err = saveErr
			}
		}
		return err
	}
}

func (m *Manager) fromCtx(c *fiber.Ctx) (*requestSession, error) {
	rs, ok := c.Locals(localsKey).(*requestSession)
	if !ok || rs == nil {
		return nil, errors.New("session middleware not installed")
	}
	return rs, nil
}

// SignIn associates the session with a user. The session id is rotated so a
// pre-login cookie cannot be replayed.
func (m *Manager) SignIn(c *fiber.Ctx, userID int64) error {
	rs, err := m.fromCtx(c)
	if err != nil {
		return err
	}
	if err := rs.sess.Regenerate(); err != nil {
		return err
	}
	rs.sess.Set(userIDKey, userID)
	rs.dirty = true
	return nil
}

// SignOut drops the login association and rotates the session id, keeping the
// session itself alive so a farewell flash can still be delivered.
func (m *Manager) SignOut(c *fiber.Ctx) error {
	rs, err := m.fromCtx(c)
	if err != nil {
		return err
	}
	if err := rs.sess.Regenerate(); err != nil {
		return err
	}
	rs.sess.Delete(userIDKey)
	rs.dirty = true
	return nil
}

// UserID returns the signed-in user's id, if any.
func (m *Manager) UserID(c *fiber.Ctx) (int64, bool) {
	rs, err := m.fromCtx(c)
	if err != nil {
		return 0, false
	}
	id, ok := rs.sess.Get(userIDKey).(int64)
	return id, ok
}

// Flash queues a one-time message for the next rendered page.
func (m *Manager) Flash(c *fiber.Ctx, message string) error {
	rs, err := m.fromCtx(c)
	if err != nil {
		return err
	}
	if existing, ok := rs.sess.Get(flashesKey).(string); ok && existing != "" {
		message = existing + flashSeparator + message
	}
	rs.sess.Set(flashesKey, message)
	rs.dirty = true
	return nil
}

// TakeFlashes returns queued messages and clears them.
func (m *Manager) TakeFlashes(c *fiber.Ctx) []string {
	rs, err := m.fromCtx(c)
	if err != nil {
		return nil
	}
	raw, ok := rs.sess.Get(flashesKey).(string)
	if !ok || raw == "" {
		return nil
	}
	rs.sess.Delete(flashesKey)
	rs.dirty = true
	return strings.Split(raw, flashSeparator)
}
