package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/ticketera/internal/service"
	"github.com/helpdesk-labs/ticketera/internal/session"
	apperrors "github.com/helpdesk-labs/ticketera/pkg/util"
)

// TicketsHandler serves the listing and the ticket lifecycle forms.
type TicketsHandler struct {
	renderer
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, sessions *session.Manager) *TicketsHandler {
	return &TicketsHandler{renderer: renderer{sessions: sessions}, tickets: tickets}
}

// List GET /?status=todos|abiertos|cerrados.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	status := c.Query("status", service.FilterAll)
	tickets, err := h.tickets.List(c.Context(), status)
	if err != nil {
		return err
	}
	return h.render(c, "index", fiber.Map{
		"Tickets": tickets,
		"Status":  status,
	})
}

// NewForm GET /tickets/nuevo.
func (h *TicketsHandler) NewForm(c *fiber.Ctx) error {
	return h.render(c, "new_ticket", fiber.Map{"Title": "Nuevo ticket"})
}

// Create POST /tickets/nuevo. On validation failure the user is sent back to
// an empty form; submitted values are not preserved.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	_, err := h.tickets.Create(c.Context(), c.FormValue("title"), c.FormValue("description"))
	if err != nil {
		if apperrors.IsValidation(err) {
			_ = h.sessions.Flash(c, "Título y descripción son requeridos.")
			return c.Redirect("/tickets/nuevo", fiber.StatusFound)
		}
		return err
	}
	_ = h.sessions.Flash(c, "Ticket creado.")
	return c.Redirect("/", fiber.StatusFound)
}

// Close POST /tickets/:id/cerrar.
func (h *TicketsHandler) Close(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	if err := h.tickets.Close(c.Context(), id); err != nil {
		return err
	}
	_ = h.sessions.Flash(c, "Ticket cerrado.")
	return c.Redirect("/", fiber.StatusFound)
}

// Delete POST /tickets/:id/eliminar.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	id, err := ticketID(c)
	if err != nil {
		return err
	}
	if err := h.tickets.Delete(c.Context(), id); err != nil {
		return err
	}
	_ = h.sessions.Flash(c, "Ticket eliminado.")
	return c.Redirect("/", fiber.StatusFound)
}

// ticketID parses the numeric path id. Non-numeric ids get the same 404 as
// unknown ones.
func ticketID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("ticket")
	}
	return id, nil
}
