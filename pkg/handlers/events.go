package handlers

import (
	"errors"
	"log"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schedulesync/pkg/models"
)

type eventBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Start       *string `json:"start"`
	End         *string `json:"end"`
}

// listEvents returns the caller's events, or a friend's when ?owner= names
// one. Reads are never allowed outside the friendship set.
func (h *Handler) listEvents(c *fiber.Ctx) error {
	owner := callerID(c)
	if raw := c.Query("owner"); raw != "" {
		requested, err := uuid.Parse(raw)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid owner")
		}
		if requested != owner {
			ok, err := h.users.IsFriend(c.Context(), owner, requested)
			if err != nil {
				log.Printf("Failed to check friendship: %v", err)
				return jsonError(c, fiber.StatusInternalServerError, "server error")
			}
			if !ok {
				return jsonError(c, fiber.StatusForbidden, "not a friend")
			}
			owner = requested
		}
	}
	events, err := h.events.EventsByOwner(c.Context(), owner)
	if err != nil {
		log.Printf("Failed to list events: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(events)
}

func (h *Handler) createEvent(c *fiber.Ctx) error {
	var body eventBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if body.Title == nil || *body.Title == "" {
		return jsonError(c, fiber.StatusBadRequest, "title required")
	}
	if body.Start == nil || body.End == nil {
		return jsonError(c, fiber.StatusBadRequest, "start and end required")
	}
	start, err := parseInstant(*body.Start)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid start")
	}
	end, err := parseInstant(*body.End)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid end")
	}
	if !start.Before(end) {
		return jsonError(c, fiber.StatusBadRequest, "start must be before end")
	}
	ev := models.Event{
		OwnerID: callerID(c),
		Title:   *body.Title,
		StartAt: start,
		EndAt:   end,
	}
	if body.Description != nil {
		ev.Description = *body.Description
	}
	if err := h.events.CreateEvent(c.Context(), &ev); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, fiber.StatusConflict, "duplicate event")
		}
		log.Printf("Failed to create event: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(ev)
}

func (h *Handler) updateEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid event id")
	}
	var body eventBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	changes := map[string]any{}
	if body.Title != nil {
		if *body.Title == "" {
			return jsonError(c, fiber.StatusBadRequest, "title cannot be empty")
		}
		changes["title"] = *body.Title
	}
	if body.Description != nil {
		changes["description"] = *body.Description
	}
	var start, end time.Time
	if body.Start != nil {
		if start, err = parseInstant(*body.Start); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid start")
		}
		changes["start_at"] = start
	}
	if body.End != nil {
		if end, err = parseInstant(*body.End); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid end")
		}
		changes["end_at"] = end
	}
	if body.Start != nil && body.End != nil && !start.Before(end) {
		return jsonError(c, fiber.StatusBadRequest, "start must be before end")
	}
	if len(changes) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "nothing to update")
	}
	ev, err := h.events.UpdateEvent(c.Context(), id, callerID(c), changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not found")
		}
		log.Printf("Failed to update event: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(ev)
}

func (h *Handler) deleteEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid event id")
	}
	if err := h.events.DeleteEvent(c.Context(), id, callerID(c)); err != nil {
		log.Printf("Failed to delete event: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// exportICS serializes the caller's events as an iCalendar document.
func (h *Handler) exportICS(c *fiber.Ctx) error {
	owner := callerID(c)
	events, err := h.events.EventsByOwner(c.Context(), owner)
	if err != nil {
		log.Printf("Failed to list events for export: %v", err)
		return jsonError(c, fiber.StatusInternalServerError, "server error")
	}
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	for _, ev := range events {
		item := cal.AddEvent(ev.ID.String())
		item.SetCreatedTime(ev.CreatedAt)
		item.SetDtStampTime(ev.UpdatedAt)
		item.SetStartAt(ev.StartAt)
		item.SetEndAt(ev.EndAt)
		item.SetSummary(ev.Title)
		if ev.Description != "" {
			item.SetDescription(ev.Description)
		}
	}
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="schedule.ics"`)
	return c.SendString(cal.Serialize())
}

func parseInstant(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
