package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schedulesync/pkg/models"
	"schedulesync/pkg/seeder"
)

// Store bundles the GORM-backed persistence operations the handlers and
// the seeding engine consume.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// EventsByOwner lists the owner's events sorted by start.
func (s *Store) EventsByOwner(ctx context.Context, owner uuid.UUID) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", owner).
		Order("start_at asc").
		Find(&events).Error
	return events, err
}

func (s *Store) CreateEvent(ctx context.Context, ev *models.Event) error {
	return s.db.WithContext(ctx).Create(ev).Error
}

// UpdateEvent applies changes to the event only when it belongs to owner.
func (s *Store) UpdateEvent(ctx context.Context, id, owner uuid.UUID, changes map[string]any) (models.Event, error) {
	res := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ? AND owner_id = ?", id, owner).
		Updates(changes)
	if res.Error != nil {
		return models.Event{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Event{}, gorm.ErrRecordNotFound
	}
	var ev models.Event
	err := s.db.WithContext(ctx).First(&ev, "id = ?", id).Error
	return ev, err
}

// DeleteEvent removes the event only when it belongs to owner. Deleting a
// missing event is not an error, matching the rest of the owner-scoped
// delete paths.
func (s *Store) DeleteEvent(ctx context.Context, id, owner uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, owner).
		Delete(&models.Event{}).Error
}

// DeleteWindow removes the owner's events starting in [start, end).
func (s *Store) DeleteWindow(ctx context.Context, owner uuid.UUID, start, end time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("owner_id = ? AND start_at >= ? AND start_at < ?", owner, start, end).
		Delete(&models.Event{})
	return res.RowsAffected, res.Error
}

// DayCounts groups the owner's events in [start, end) by UTC day. Counts
// only; no rows are materialized.
func (s *Store) DayCounts(ctx context.Context, owner uuid.UUID, start, end time.Time) (map[string]int, error) {
	var rows []struct {
		Day string
		N   int
	}
	err := s.db.WithContext(ctx).Model(&models.Event{}).
		Select("to_char(start_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, count(*) AS n").
		Where("owner_id = ? AND start_at >= ? AND start_at < ?", owner, start, end).
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Day] = r.N
	}
	return counts, nil
}

// InsertCandidates bulk-inserts unordered. Conflicts on the identity-key
// index are dropped row by row, so one duplicate never aborts the batch;
// the shortfall is reported as the skipped count.
func (s *Store) InsertCandidates(ctx context.Context, cands []seeder.Candidate) (int, int, error) {
	if len(cands) == 0 {
		return 0, 0, nil
	}
	events := make([]models.Event, len(cands))
	for i, c := range cands {
		events[i] = models.Event{
			OwnerID:     c.OwnerID,
			Title:       c.Title,
			Description: c.Description,
			StartAt:     c.StartAt,
			EndAt:       c.EndAt,
		}
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&events)
	if res.Error != nil {
		return 0, 0, res.Error
	}
	inserted := int(res.RowsAffected)
	return inserted, len(events) - inserted, nil
}

// BusyAt applies the half-open containment test start <= at < end.
func (s *Store) BusyAt(ctx context.Context, owner uuid.UUID, at time.Time) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Event{}).
		Where("owner_id = ? AND start_at <= ? AND end_at > ?", owner, at, at).
		Count(&n).Error
	return n > 0, err
}

// DuplicateGroups lists, per identity key with more than one event, the
// member ids ordered by id text so the caller's keeper choice is stable.
func (s *Store) DuplicateGroups(ctx context.Context) ([][]uuid.UUID, error) {
	var keys []struct {
		OwnerID uuid.UUID
		StartAt time.Time
		EndAt   time.Time
		Title   string
	}
	err := s.db.WithContext(ctx).Model(&models.Event{}).
		Select("owner_id, start_at, end_at, title").
		Group("owner_id, start_at, end_at, title").
		Having("count(*) > 1").
		Scan(&keys).Error
	if err != nil {
		return nil, err
	}
	groups := make([][]uuid.UUID, 0, len(keys))
	for _, k := range keys {
		var ids []uuid.UUID
		err := s.db.WithContext(ctx).Model(&models.Event{}).
			Where("owner_id = ? AND start_at = ? AND end_at = ? AND title = ?", k.OwnerID, k.StartAt, k.EndAt, k.Title).
			Order("id::text").
			Pluck("id", &ids).Error
		if err != nil {
			return nil, err
		}
		groups = append(groups, ids)
	}
	return groups, nil
}

// DeleteEvents removes events by id.
func (s *Store) DeleteEvents(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.Event{})
	return res.RowsAffected, res.Error
}
