package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schedulesync/pkg/seeder"
)

// seedHeader carries the client's idempotency token; absence disables
// repeat suppression.
const seedHeader = "X-Seed-Req"

type seedBody struct {
	Clear     *bool `json:"clear"`
	PerDayMax *int  `json:"perDayMax"`
}

func (h *Handler) seedMyWeek(c *fiber.Ctx) error {
	return h.seedMine(c, seeder.WindowWeek)
}

func (h *Handler) seedMyMonth(c *fiber.Ctx) error {
	return h.seedMine(c, seeder.WindowMonth)
}

func (h *Handler) seedMine(c *fiber.Ctx, kind seeder.WindowKind) error {
	var body seedBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid body")
		}
	}
	clear := true
	if body.Clear != nil {
		clear = *body.Clear
	}
	perDayMax := 0
	if body.PerDayMax != nil {
		if *body.PerDayMax < 0 {
			return jsonError(c, fiber.StatusBadRequest, "perDayMax must be positive")
		}
		perDayMax = *body.PerDayMax
	}

	res, err := h.engine.SeedWindow(c.Context(), seeder.SeedRequest{
		Owner:     callerID(c),
		Kind:      kind,
		Clear:     clear,
		PerDayMax: perDayMax,
		Token:     c.Get(seedHeader),
	})
	if err != nil {
		return h.seedError(c, err)
	}
	if res.Repeat {
		return c.JSON(fiber.Map{"ok": true, "repeat": true, "created": 0})
	}
	return c.JSON(fiber.Map{"ok": true, "created": res.Created})
}

func (h *Handler) seedAll(c *fiber.Ctx) error {
	var body struct {
		Mode         string `json:"mode"`
		Clear        *bool  `json:"clear"`
		PerDayMax    *int   `json:"perDayMax"`
		IncludeAdmin bool   `json:"includeAdmin"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid body")
		}
	}
	kind := seeder.WindowWeek
	switch body.Mode {
	case "", "week":
	case "month":
		kind = seeder.WindowMonth
	default:
		return jsonError(c, fiber.StatusBadRequest, "mode must be week or month")
	}
	clear := true
	if body.Clear != nil {
		clear = *body.Clear
	}
	perDayMax := 0
	if body.PerDayMax != nil {
		if *body.PerDayMax < 0 {
			return jsonError(c, fiber.StatusBadRequest, "perDayMax must be positive")
		}
		perDayMax = *body.PerDayMax
	}

	targets, err := h.users.SeedTargets(c.Context(), body.IncludeAdmin)
	if err != nil {
		log.Printf("Failed to list seed targets: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	total, err := h.engine.SeedAll(c.Context(), targets, kind, clear, perDayMax)
	if err != nil {
		return h.seedError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "created": total})
}

func (h *Handler) dedupe(c *fiber.Ctx) error {
	removed, err := h.engine.Dedupe(c.Context())
	if err != nil {
		log.Printf("Failed to dedupe events: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"ok": true, "removed": removed})
}

func (h *Handler) fullWeekUser(c *fiber.Ctx) error {
	var body struct {
		UserID    string `json:"userId"`
		StartHour *int   `json:"startHour"`
		EndHour   *int   `json:"endHour"`
		Clear     *bool  `json:"clear"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if body.UserID == "" {
		return jsonError(c, fiber.StatusBadRequest, "userId required")
	}
	owner, err := uuid.Parse(body.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid userId")
	}
	startHour, endHour, clear := 8, 22, true
	if body.StartHour != nil {
		startHour = *body.StartHour
	}
	if body.EndHour != nil {
		endHour = *body.EndHour
	}
	if body.Clear != nil {
		clear = *body.Clear
	}

	res, err := h.engine.FillWeek(c.Context(), owner, startHour, endHour, clear)
	if err != nil {
		if errors.Is(err, seeder.ErrRateLimited) || errors.Is(err, seeder.ErrUnknownWindow) {
			return h.seedError(c, err)
		}
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"ok": true, "created": res.Created})
}

func (h *Handler) resetSample(c *fiber.Ctx) error {
	var body struct {
		Domain string   `json:"domain"`
		Emails []string `json:"emails"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if body.Domain == "" && len(body.Emails) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "domain or emails required")
	}
	users, err := h.users.UsersByDomainOrEmails(c.Context(), body.Domain, body.Emails)
	if err != nil {
		log.Printf("Failed to match sample users: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	removedUsers, removedEvents, err := h.users.RemoveUsers(c.Context(), ids)
	if err != nil {
		log.Printf("Failed to remove sample users: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"ok": true, "removedUsers": removedUsers, "removedEvents": removedEvents})
}

func (h *Handler) seedError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, seeder.ErrRateLimited):
		return jsonError(c, fiber.StatusTooManyRequests, "Too many seed requests. Try again.")
	case errors.Is(err, seeder.ErrUnknownWindow):
		return jsonError(c, fiber.StatusBadRequest, "unknown window kind")
	default:
		log.Printf("Seed operation failed: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
}
