package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// listUsers is intentionally minimal and unauthenticated: it backs the
// seed tooling and exposes public fields only.
func (h *Handler) listUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.Context())
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, publicUser(u))
	}
	return c.JSON(fiber.Map{"users": out})
}

// deleteByEmail removes a user with full cascade: events, friendship rows
// on both sides, then the account.
func (h *Handler) deleteByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return jsonError(c, fiber.StatusBadRequest, "missing email")
	}
	user, err := h.users.UserByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"ok": true, "deleted": 0})
		}
		log.Printf("Failed to look up user: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	removed, _, err := h.users.RemoveUsers(c.Context(), []uuid.UUID{user.ID})
	if err != nil {
		log.Printf("Failed to delete user: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"ok": true, "deleted": removed})
}

func (h *Handler) makeAdmin(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil || body.UserID == "" {
		return jsonError(c, fiber.StatusBadRequest, "missing userId")
	}
	id, err := uuid.Parse(body.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid userId")
	}
	if err := h.users.SetAdmin(c.Context(), id); err != nil {
		log.Printf("Failed to set admin flag: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"ok": true})
}
