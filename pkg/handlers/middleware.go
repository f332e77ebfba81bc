package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localUserID = "userID"

// requireAuth resolves the caller from the session, falling back to the
// X-User-Id header, and stashes the id in locals for the handlers.
func (h *Handler) requireAuth(c *fiber.Ctx) error {
	var raw string
	if sess, err := h.sessions.Get(c); err == nil {
		if v, ok := sess.Get("user_id").(string); ok {
			raw = v
		}
	}
	if raw == "" {
		raw = c.Get("X-User-Id")
	}
	if raw == "" {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(localUserID, id)
	return c.Next()
}

// requireAdmin runs after requireAuth and checks the admin flag.
func (h *Handler) requireAdmin(c *fiber.Ctx) error {
	user, err := h.users.UserByID(c.Context(), callerID(c))
	if err != nil || !user.Admin {
		return jsonError(c, fiber.StatusForbidden, "admin only")
	}
	return c.Next()
}

// requireSeedKey gates the seed-tooling endpoints behind a shared key. An
// unset key disables the endpoints entirely.
func (h *Handler) requireSeedKey(c *fiber.Ctx) error {
	if h.seedKey == "" || c.Get("X-Seed-Key") != h.seedKey {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.Next()
}

func callerID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(localUserID).(uuid.UUID)
	return id
}
