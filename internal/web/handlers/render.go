package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/ticketera/internal/auth"
	"github.com/helpdesk-labs/ticketera/internal/session"
)

// renderer merges per-request view state (flashes, signed-in user) into every
// rendered page.
type renderer struct {
	sessions *session.Manager
}

func (r *renderer) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Flashes"] = r.sessions.TakeFlashes(c)
	if user, ok := auth.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	return c.Render(name, data)
}
