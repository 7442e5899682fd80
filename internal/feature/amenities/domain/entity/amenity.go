// Package entity defines the domain entities for the amenities feature.
package entity

import (
	"unicode/utf8"

	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/model"
)

// MaxNameLength is the maximum length for an amenity name.
const MaxNameLength = 50

// Amenity is a shared catalog entry (wifi, parking, ...). Amenities are
// attached to places many-to-many and are never owned by a single place.
type Amenity struct {
	model.Base

	// Name is the display name of the amenity.
	Name string `gorm:"size:50;not null"`
}

// NewAmenity validates the name and returns an Amenity.
func NewAmenity(name string) (*Amenity, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Amenity{Name: name}, nil
}

// Rename validates and applies a new name.
func (a *Amenity) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	a.Name = name
	return nil
}

func validateName(name string) error {
	if name == "" {
		return apperr.Validation("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return apperr.Validation("name", "must be at most 50 characters")
	}
	return nil
}
