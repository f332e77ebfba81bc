package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"schedulesync/pkg/models"
	"schedulesync/pkg/seeder"
)

// UserStore is the user persistence surface the handlers consume.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SeedTargets(ctx context.Context, includeAdmin bool) ([]uuid.UUID, error)
	AddFriend(ctx context.Context, a, b uuid.UUID) error
	Friends(ctx context.Context, id uuid.UUID) ([]models.User, error)
	IsFriend(ctx context.Context, a, b uuid.UUID) (bool, error)
	SetAdmin(ctx context.Context, id uuid.UUID) error
	UsersByDomainOrEmails(ctx context.Context, domain string, emails []string) ([]models.User, error)
	RemoveUsers(ctx context.Context, ids []uuid.UUID) (usersRemoved, eventsRemoved int64, err error)
}

// EventStore is the event CRUD surface the handlers consume.
type EventStore interface {
	EventsByOwner(ctx context.Context, owner uuid.UUID) ([]models.Event, error)
	CreateEvent(ctx context.Context, ev *models.Event) error
	UpdateEvent(ctx context.Context, id, owner uuid.UUID, changes map[string]any) (models.Event, error)
	DeleteEvent(ctx context.Context, id, owner uuid.UUID) error
}

// SeedEngine is the calendar synthesis engine surface.
type SeedEngine interface {
	SeedWindow(ctx context.Context, req seeder.SeedRequest) (seeder.SeedResult, error)
	SeedAll(ctx context.Context, owners []uuid.UUID, kind seeder.WindowKind, clear bool, perDayMax int) (int, error)
	FillWeek(ctx context.Context, owner uuid.UUID, startHour, endHour int, clear bool) (seeder.SeedResult, error)
	Dedupe(ctx context.Context) (int64, error)
	Busy(ctx context.Context, owner uuid.UUID, at time.Time) (bool, error)
}

type Handler struct {
	users    UserStore
	events   EventStore
	engine   SeedEngine
	sessions *session.Store
	seedKey  string
}

func New(users UserStore, events EventStore, engine SeedEngine, sessions *session.Store, seedKey string) *Handler {
	return &Handler{
		users:    users,
		events:   events,
		engine:   engine,
		sessions: sessions,
		seedKey:  seedKey,
	}
}

// Register mounts every route on app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.health)

	auth := app.Group("/auth")
	auth.Post("/register", h.register)
	auth.Post("/login", h.login)

	events := app.Group("/events", h.requireAuth)
	events.Get("/", h.listEvents)
	events.Get("/export.ics", h.exportICS)
	events.Post("/", h.createEvent)
	events.Put("/:id", h.updateEvent)
	events.Delete("/:id", h.deleteEvent)

	friends := app.Group("/friends", h.requireAuth)
	friends.Get("/", h.listFriends)
	friends.Post("/add", h.addFriend)
	friends.Get("/:id/busy-now", h.busyNow)

	seed := app.Group("/seed", h.requireAuth)
	seed.Post("/my-week", h.seedMyWeek)
	seed.Post("/my-month", h.seedMyMonth)
	seed.Post("/all", h.requireAdmin, h.seedAll)
	seed.Post("/dedupe", h.requireAdmin, h.dedupe)
	seed.Post("/full-week-user", h.requireAdmin, h.fullWeekUser)
	seed.Post("/reset-sample", h.requireAdmin, h.resetSample)

	users := app.Group("/users")
	users.Get("/", h.listUsers)
	users.Delete("/by-email", h.requireSeedKey, h.deleteByEmail)
	users.Post("/make-admin", h.requireSeedKey, h.makeAdmin)
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
