package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schedulesync/pkg/models"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if !strings.Contains(body.Email, "@") {
		return jsonError(c, fiber.StatusBadRequest, "valid email required")
	}
	if len(body.Password) < 6 {
		return jsonError(c, fiber.StatusBadRequest, "password must be at least 6 characters")
	}
	if body.Name == "" {
		body.Name = strings.SplitN(body.Email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	user := models.User{Email: body.Email, Name: body.Name, PasswordHash: string(hash)}
	if err := h.users.CreateUser(c.Context(), &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, fiber.StatusConflict, "email already registered")
		}
		log.Printf("Failed to create user: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	if err := h.startSession(c, user.ID.String()); err != nil {
		log.Printf("Failed to save session: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"ok": true, "user": publicUser(user)})
}

func (h *Handler) login(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	user, err := h.users.UserByEmail(c.Context(), body.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		log.Printf("Failed to look up user: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return jsonError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := h.startSession(c, user.ID.String()); err != nil {
		log.Printf("Failed to save session: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"ok": true, "user": publicUser(user)})
}

func (h *Handler) startSession(c *fiber.Ctx, userID string) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set("user_id", userID)
	return sess.Save()
}

func publicUser(u models.User) fiber.Map {
	return fiber.Map{"id": u.ID, "email": u.Email, "name": u.Name}
}
