package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. Email is stored lower-cased so the unique
// index doubles as a case-insensitive uniqueness check.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Admin        bool      `gorm:"default:false" json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Event is a time-blocked calendar entry owned by exactly one user.
// The composite index on (owner, start, end, title) is the identity key:
// the database rejects exact duplicates as a backstop behind the dedupe
// maintenance operation.
type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_events_identity" json:"owner"`
	Title       string    `gorm:"size:200;not null;uniqueIndex:idx_events_identity" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	StartAt     time.Time `gorm:"index;not null;uniqueIndex:idx_events_identity" json:"start"`
	EndAt       time.Time `gorm:"not null;uniqueIndex:idx_events_identity" json:"end"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Friendship is one direction of the mutual friend relation. Adding a
// friend writes both directions; each row is an idempotent set-membership
// add, so either half is safe to retry.
type Friendship struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	FriendID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}
