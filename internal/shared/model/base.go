// Package model defines the base shape shared by all persisted entities.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every entity. The ID is an opaque UUID string
// assigned once at creation and never changed afterwards; CreatedAt is set
// at insert time and UpdatedAt is refreshed by GORM on every save,
// including saves that change no other column.
type Base struct {
	// ID is the unique identifier for the entity (UUIDv4 string).
	ID string `gorm:"primaryKey;size:36"`

	// CreatedAt is the timestamp when the entity was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the entity was last updated.
	UpdatedAt time.Time
}

// BeforeCreate assigns a fresh UUID unless the caller already set one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
