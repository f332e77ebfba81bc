package storage

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"schedulesync/pkg/models"
)

// CreateUser persists a new user. The email is lower-cased so the unique
// index acts case-insensitively; a collision surfaces as
// gorm.ErrDuplicatedKey.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(user.Email)
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&user).Error
	return user, err
}

func (s *Store) UserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return user, err
}

// ListUsers returns the public fields of every user.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Select("id, email, name").
		Order("email asc").
		Find(&users).Error
	return users, err
}

// SeedTargets lists the user ids an all-users seed should cover. Admin
// accounts are excluded unless includeAdmin is set.
func (s *Store) SeedTargets(ctx context.Context, includeAdmin bool) ([]uuid.UUID, error) {
	q := s.db.WithContext(ctx).Model(&models.User{})
	if !includeAdmin {
		q = q.Where("admin = ?", false)
	}
	var ids []uuid.UUID
	err := q.Pluck("id", &ids).Error
	return ids, err
}

// AddFriend establishes the mutual relation by upserting both directions.
// Each row is an add-if-absent, so replaying either half is harmless.
func (s *Store) AddFriend(ctx context.Context, a, b uuid.UUID) error {
	rows := []models.Friendship{
		{UserID: a, FriendID: b},
		{UserID: b, FriendID: a},
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// Friends lists the users on id's friend set, public fields only.
func (s *Store) Friends(ctx context.Context, id uuid.UUID) ([]models.User, error) {
	var friends []models.User
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Select("users.id, users.email, users.name").
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", id).
		Order("users.email asc").
		Find(&friends).Error
	return friends, err
}

func (s *Store) IsFriend(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", a, b).
		Count(&n).Error
	return n > 0, err
}

func (s *Store) SetAdmin(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("admin", true).Error
}

// UsersByDomainOrEmails matches users whose email ends in @domain or is in
// emails. Both filters may be combined; matching is case-insensitive.
func (s *Store) UsersByDomainOrEmails(ctx context.Context, domain string, emails []string) ([]models.User, error) {
	lowered := make([]string, len(emails))
	for i, e := range emails {
		lowered[i] = strings.ToLower(e)
	}
	q := s.db.WithContext(ctx).Model(&models.User{}).Select("id, email, name")
	switch {
	case domain != "" && len(lowered) > 0:
		q = q.Where("email ILIKE ? OR email IN ?", "%@"+strings.ToLower(domain), lowered)
	case domain != "":
		q = q.Where("email ILIKE ?", "%@"+strings.ToLower(domain))
	case len(lowered) > 0:
		q = q.Where("email IN ?", lowered)
	}
	var users []models.User
	err := q.Find(&users).Error
	return users, err
}

// RemoveUsers cascades account removal: the users' events, every
// friendship row referencing them on either side, then the users
// themselves.
func (s *Store) RemoveUsers(ctx context.Context, ids []uuid.UUID) (usersRemoved, eventsRemoved int64, err error) {
	if len(ids) == 0 {
		return 0, 0, nil
	}
	db := s.db.WithContext(ctx)
	res := db.Where("owner_id IN ?", ids).Delete(&models.Event{})
	if res.Error != nil {
		return 0, 0, res.Error
	}
	eventsRemoved = res.RowsAffected
	if err := db.Where("user_id IN ? OR friend_id IN ?", ids, ids).Delete(&models.Friendship{}).Error; err != nil {
		return 0, eventsRemoved, err
	}
	res = db.Where("id IN ?", ids).Delete(&models.User{})
	return res.RowsAffected, eventsRemoved, res.Error
}
