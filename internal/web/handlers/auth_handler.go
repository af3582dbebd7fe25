package handlers

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-labs/ticketera/internal/service"
	"github.com/helpdesk-labs/ticketera/internal/session"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	renderer
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{renderer: renderer{sessions: sessions}, auth: authService}
}

// LoginForm GET /login.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return h.render(c, "login", fiber.Map{
		"Title": "Entrar",
		"Next":  c.Query("next"),
	})
}

// Login POST /login. The flash never reveals which of the two fields was
// wrong.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	user, err := h.auth.Login(c.Context(), username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			_ = h.sessions.Flash(c, "Usuario o contraseña incorrectos.")
			return c.Redirect(loginPath(c.Query("next")), fiber.StatusFound)
		}
		return err
	}

	if err := h.sessions.SignIn(c, user.ID); err != nil {
		return err
	}
	_ = h.sessions.Flash(c, "Bienvenido.")

	target := c.Query("next")
	if !isSafeRedirect(target) {
		target = "/"
	}
	return c.Redirect(target, fiber.StatusFound)
}

// Logout GET /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.SignOut(c); err != nil {
		return err
	}
	_ = h.sessions.Flash(c, "Sesión cerrada.")
	return c.Redirect("/login", fiber.StatusFound)
}

func loginPath(next string) string {
	if next == "" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// isSafeRedirect only allows absolute paths within this app, so the next
// parameter cannot send the browser to another host.
func isSafeRedirect(target string) bool {
	return strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//")
}
