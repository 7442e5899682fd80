// Package entity defines the domain entities for the reviews feature.
package entity

import (
	"unicode/utf8"

	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/model"
)

const (
	// MaxTextLength is the maximum length of a review text.
	MaxTextLength = 1024
	// MinRating and MaxRating bound the rating, inclusive on both ends.
	MinRating = 1
	MaxRating = 5
)

// Review is a user's review of a place. The author and the place are fixed
// at creation time; a review cannot be moved to another place or reassigned
// to another author.
type Review struct {
	model.Base

	// Text is the review body.
	Text string `gorm:"size:1024;not null"`

	// Rating is an integer between 1 and 5 inclusive.
	Rating int `gorm:"not null"`

	// UserID is the author. Immutable after creation.
	UserID string `gorm:"size:36;not null;index"`

	// PlaceID is the reviewed place. Immutable after creation. The place
	// owns its reviews: deleting the place deletes them.
	PlaceID string `gorm:"size:36;not null;index"`
}

// NewReview validates the raw field values and returns a Review. Reference
// resolution of user and place is the facade's job, but both ids must at
// least be present.
func NewReview(text string, rating int, userID, placeID string) (*Review, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, apperr.Validation("user_id", "must not be empty")
	}
	if placeID == "" {
		return nil, apperr.Validation("place_id", "must not be empty")
	}
	return &Review{Text: text, Rating: rating, UserID: userID, PlaceID: placeID}, nil
}

// Patch is a partial update. Author and place are deliberately absent:
// both are immutable after creation.
type Patch struct {
	Text   *string
	Rating *int
}

// ApplyPatch validates the present fields and merges them into the review.
func (r *Review) ApplyPatch(p Patch) error {
	if p.Text != nil {
		if err := validateText(*p.Text); err != nil {
			return err
		}
	}
	if p.Rating != nil {
		if err := validateRating(*p.Rating); err != nil {
			return err
		}
	}

	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	return nil
}

func validateText(text string) error {
	if text == "" {
		return apperr.Validation("text", "must not be empty")
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return apperr.Validation("text", "must be at most 1024 characters")
	}
	return nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return apperr.Validation("rating", "must be between 1 and 5")
	}
	return nil
}
