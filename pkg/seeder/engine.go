package seeder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRateLimited is returned when a user seeds again inside the
	// minimum interval.
	ErrRateLimited = errors.New("too many seed requests")
)

// EventStore is the persistence surface the engine consumes.
// Implementations must scope every operation to the given owner.
type EventStore interface {
	// DeleteWindow removes the owner's events starting in [start, end) and
	// returns the number removed.
	DeleteWindow(ctx context.Context, owner uuid.UUID, start, end time.Time) (int64, error)
	// DayCounts returns a day-key -> count map of the owner's events
	// starting in [start, end).
	DayCounts(ctx context.Context, owner uuid.UUID, start, end time.Time) (map[string]int, error)
	// InsertCandidates bulk-inserts unordered. Rows colliding on the
	// identity key (owner, start, end, title) are skipped, not errors, and
	// a skip never aborts the rest of the batch.
	InsertCandidates(ctx context.Context, cands []Candidate) (inserted, skipped int, err error)
	// BusyAt reports whether the owner has an event with start <= at < end.
	BusyAt(ctx context.Context, owner uuid.UUID, at time.Time) (bool, error)
	// DuplicateGroups lists, per identity key held by more than one event,
	// the ids of the group's members.
	DuplicateGroups(ctx context.Context) ([][]uuid.UUID, error)
	// DeleteEvents removes events by id and returns the number removed.
	DeleteEvents(ctx context.Context, ids []uuid.UUID) (int64, error)
}

const (
	// HardDayCap bounds perDayMax regardless of what a request asks for.
	HardDayCap = 5
	// DefaultWeekMax and DefaultMonthMax apply when a request leaves
	// perDayMax unset.
	DefaultWeekMax  = 5
	DefaultMonthMax = 3
)

// Engine runs the seeding pipeline: rate check, idempotency check,
// optional window clear, generate, cap, top-up, tolerant bulk insert.
// All transient state (guard, limiter) lives on the engine so a shared
// store could replace it without changing call sites.
type Engine struct {
	store   EventStore
	gen     *Generator
	guard   *IdempotencyGuard
	limiter *RateLimiter
	now     func() time.Time
	seed    func() int64
}

func New(store EventStore) *Engine {
	return &Engine{
		store:   store,
		gen:     NewGenerator(),
		guard:   NewIdempotencyGuard(DefaultIdempotencyTTL),
		limiter: NewRateLimiter(DefaultSeedInterval),
		now:     time.Now,
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

// SeedRequest describes one user-facing seed invocation.
type SeedRequest struct {
	Owner     uuid.UUID
	Kind      WindowKind
	Clear     bool
	PerDayMax int    // 0 means the kind's default
	Token     string // idempotency token; empty disables suppression
}

// SeedResult reports what a seed run did. Repeat marks an
// idempotency-suppressed run, which performs no mutation at all.
type SeedResult struct {
	Created int
	Skipped int
	Deleted int64
	Repeat  bool
}

// SeedWindow runs the full pipeline for one user. The rate check and the
// idempotency check both happen before any mutating work; rate first,
// idempotency second.
func (e *Engine) SeedWindow(ctx context.Context, req SeedRequest) (SeedResult, error) {
	w, err := WindowFor(e.now(), req.Kind)
	if err != nil {
		return SeedResult{}, err
	}
	perDayMax := clampCap(req.PerDayMax, defaultCap(req.Kind))

	if !e.limiter.Allow(req.Owner) {
		return SeedResult{}, ErrRateLimited
	}
	if req.Token != "" {
		key := Fingerprint(req.Owner, w.Start, req.Token)
		if e.guard.Seen(key) {
			log.Printf("[SEED:idempotent] owner=%s token=%s window=%s (skipping)", req.Owner, req.Token, dayKey(w.Start))
			return SeedResult{Repeat: true}, nil
		}
		e.guard.Mark(key)
	}

	log.Printf("[SEED:init] owner=%s kind=%s clear=%t perDayMax=%d range=[%s..%s)",
		req.Owner, req.Kind, req.Clear, perDayMax, w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	return e.seedWindow(ctx, req.Owner, w, req.Clear, perDayMax)
}

// SeedAll runs the pipeline for each supplied user with shared settings.
// One admin action: the per-user rate and idempotency checks do not apply.
func (e *Engine) SeedAll(ctx context.Context, owners []uuid.UUID, kind WindowKind, clear bool, perDayMax int) (int, error) {
	w, err := WindowFor(e.now(), kind)
	if err != nil {
		return 0, err
	}
	perDayMax = clampCap(perDayMax, DefaultMonthMax)
	total := 0
	for _, owner := range owners {
		res, err := e.seedWindow(ctx, owner, w, clear, perDayMax)
		if err != nil {
			return total, fmt.Errorf("seed all: owner %s: %w", owner, err)
		}
		total += res.Created
	}
	log.Printf("[SEED:all:done] users=%d created=%d", len(owners), total)
	return total, nil
}

// FillWeek writes one envelope-wide "Busy Block" per day of the current
// week for owner, optionally clearing the window first.
func (e *Engine) FillWeek(ctx context.Context, owner uuid.UUID, startHour, endHour int, clear bool) (SeedResult, error) {
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return SeedResult{}, fmt.Errorf("invalid hour range %d..%d", startHour, endHour)
	}
	w, err := WindowFor(e.now(), WindowWeek)
	if err != nil {
		return SeedResult{}, err
	}
	var out SeedResult
	if clear {
		deleted, err := e.store.DeleteWindow(ctx, owner, w.Start, w.End)
		if err != nil {
			return out, err
		}
		out.Deleted = deleted
	}
	var cands []Candidate
	for day := w.Start; day.Before(w.End); day = day.AddDate(0, 0, 1) {
		cands = append(cands, Candidate{
			OwnerID: owner,
			Title:   "Busy Block",
			StartAt: day.Add(time.Duration(startHour) * time.Hour),
			EndAt:   day.Add(time.Duration(endHour) * time.Hour),
		})
	}
	inserted, skipped, err := e.store.InsertCandidates(ctx, cands)
	if err != nil {
		return out, err
	}
	out.Created, out.Skipped = inserted, skipped
	return out, nil
}

// seedWindow is the shared mutating pipeline. Each run draws from a fresh
// rand source so concurrent requests never share a generator.
func (e *Engine) seedWindow(ctx context.Context, owner uuid.UUID, w Window, clear bool, perDayMax int) (SeedResult, error) {
	rng := rand.New(rand.NewSource(e.seed()))
	var out SeedResult
	if clear {
		deleted, err := e.store.DeleteWindow(ctx, owner, w.Start, w.End)
		if err != nil {
			return out, err
		}
		out.Deleted = deleted
		log.Printf("[SEED:cleared] owner=%s deleted=%d", owner, deleted)
	}

	cands := e.gen.Generate(rng, owner, w, perDayMax)
	capped := EnforceDailyCap(rng, cands, perDayMax)
	toInsert := capped
	if !clear {
		var err error
		toInsert, err = TopUp(ctx, e.store, rng, owner, w, capped, perDayMax)
		if err != nil {
			return out, err
		}
	}
	if len(toInsert) == 0 {
		return out, nil
	}
	inserted, skipped, err := e.store.InsertCandidates(ctx, toInsert)
	if err != nil {
		return out, err
	}
	out.Created, out.Skipped = inserted, skipped
	log.Printf("[SEED:inserted] owner=%s created=%d skipped=%d", owner, inserted, skipped)
	return out, nil
}

func defaultCap(kind WindowKind) int {
	if kind == WindowMonth {
		return DefaultMonthMax
	}
	return DefaultWeekMax
}

func clampCap(requested, def int) int {
	if requested <= 0 {
		requested = def
	}
	if requested > HardDayCap {
		return HardDayCap
	}
	return requested
}
