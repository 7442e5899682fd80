// Package entity defines the domain entities for the places feature.
package entity

import (
	"unicode/utf8"

	amenityentity "rental_backend/internal/feature/amenities/domain/entity"
	reviewentity "rental_backend/internal/feature/reviews/domain/entity"
	userentity "rental_backend/internal/feature/users/domain/entity"
	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/model"
)

const (
	// MaxTitleLength is the maximum length of a place title.
	MaxTitleLength = 100
	// MaxDescriptionLength is the maximum length of a place description.
	MaxDescriptionLength = 500
)

// Place is a rental listing. It is owned by exactly one user, carries a
// shared many-to-many amenity set, and exclusively owns its reviews
// (deleting the place deletes them, never the amenities).
type Place struct {
	model.Base

	// Title is the listing headline.
	Title string `gorm:"size:100;not null"`

	// Description is optional free text.
	Description string `gorm:"size:500"`

	// Price is the nightly price, non-negative.
	Price float64 `gorm:"not null"`

	// Latitude in [-90, 90], Longitude in [-180, 180], both inclusive.
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`

	// OwnerID must resolve to an existing user at creation and at every
	// ownership transfer.
	OwnerID string          `gorm:"size:36;not null;index"`
	Owner   userentity.User `gorm:"foreignKey:OwnerID"`

	// Amenities is the shared catalog attachment, order-irrelevant.
	Amenities []amenityentity.Amenity `gorm:"many2many:place_amenities"`

	// Reviews is the owned collection, cascade-deleted with the place.
	Reviews []reviewentity.Review `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE"`
}

// NewPlace validates the raw field values and returns a Place. Geometry and
// price bounds are checked here, before the facade resolves the owner, so a
// bad payload reports its own error even when the owner id is also bad.
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string) (*Place, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateLatitude(latitude); err != nil {
		return nil, err
	}
	if err := validateLongitude(longitude); err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, apperr.Validation("owner_id", "must not be empty")
	}
	return &Place{
		Title:       title,
		Description: description,
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		OwnerID:     ownerID,
	}, nil
}

// Patch is a partial update. Amenity and owner reassignment carry through
// the facade, which resolves the references before the patch is applied.
type Patch struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
}

// ApplyPatch validates the present fields and merges them into the place.
// Absent fields are not re-validated against their stored values.
func (p *Place) ApplyPatch(patch Patch) error {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.Latitude != nil {
		if err := validateLatitude(*patch.Latitude); err != nil {
			return err
		}
	}
	if patch.Longitude != nil {
		if err := validateLongitude(*patch.Longitude); err != nil {
			return err
		}
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Latitude != nil {
		p.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		p.Longitude = *patch.Longitude
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return apperr.Validation("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return apperr.Validation("title", "must be at most 100 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return apperr.Validation("description", "must be at most 500 characters")
	}
	return nil
}

func validatePrice(price float64) error {
	if price < 0 {
		return apperr.Validation("price", "must be non-negative")
	}
	return nil
}

func validateLatitude(latitude float64) error {
	if latitude < -90 || latitude > 90 {
		return apperr.Validation("latitude", "must be between -90 and 90")
	}
	return nil
}

func validateLongitude(longitude float64) error {
	if longitude < -180 || longitude > 180 {
		return apperr.Validation("longitude", "must be between -180 and 180")
	}
	return nil
}
