package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (h *Handler) listFriends(c *fiber.Ctx) error {
	friends, err := h.users.Friends(c.Context(), callerID(c))
	if err != nil {
		log.Printf("Failed to list friends: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	out := make([]fiber.Map, 0, len(friends))
	for _, f := range friends {
		out = append(out, publicUser(f))
	}
	return c.JSON(out)
}

// addFriend establishes the mutual relation by email.
func (h *Handler) addFriend(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return jsonError(c, fiber.StatusBadRequest, "email required")
	}
	friend, err := h.users.UserByEmail(c.Context(), body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not found")
		}
		log.Printf("Failed to look up friend: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	me := callerID(c)
	if friend.ID == me {
		return jsonError(c, fiber.StatusBadRequest, "cannot befriend yourself")
	}
	if err := h.users.AddFriend(c.Context(), me, friend.ID); err != nil {
		log.Printf("Failed to add friend: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// busyNow answers the instantaneous busy/free query for a friend.
func (h *Handler) busyNow(c *fiber.Ctx) error {
	friendID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}
	busy, err := h.engine.Busy(c.Context(), friendID, time.Time{})
	if err != nil {
		log.Printf("Failed to check busy state: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"friendId": friendID, "busy": busy})
}
