// Package entity defines the domain entities for the users feature.
package entity

import (
	"regexp"
	"unicode/utf8"

	"rental_backend/internal/shared/apperr"
	"rental_backend/internal/shared/model"
)

const (
	// MaxNameLength is the maximum length for first and last names.
	MaxNameLength = 50
)

// emailPattern is a deliberately loose format check: one local part, an @,
// and a dot somewhere in the domain. It is not an RFC 5322 validator and is
// not meant to become one; anything stricter rejects real addresses.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a registered account.
type User struct {
	model.Base

	// FirstName and LastName identify the user; both are required.
	FirstName string `gorm:"size:50;not null"`
	LastName  string `gorm:"size:50;not null"`

	// Email is used for authentication and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. Plaintext is never stored.
	Password string `gorm:"size:255;not null"`

	// IsAdmin grants the principal full rights in the authorization policy.
	IsAdmin bool `gorm:"not null;default:false"`
}

// NewUser validates the raw field values and returns a User. The password
// is set separately by the caller after hashing.
func NewUser(firstName, lastName, email string, isAdmin bool) (*User, error) {
	if err := validateName("first_name", firstName); err != nil {
		return nil, err
	}
	if err := validateName("last_name", lastName); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	return &User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		IsAdmin:   isAdmin,
	}, nil
}

// Patch is a partial update. Nil fields are left untouched; unknown JSON
// keys never reach this struct because the transport binds into it by name.
// Password and IsAdmin changes go through the usecase, which re-hashes and
// enforces the admin-only rule respectively.
type Patch struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// ApplyPatch validates the present fields and merges them into the user.
func (u *User) ApplyPatch(p Patch) error {
	if p.FirstName != nil {
		if err := validateName("first_name", *p.FirstName); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := validateName("last_name", *p.LastName); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if err := ValidateEmail(*p.Email); err != nil {
			return err
		}
	}

	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return nil
}

// ValidateEmail checks the loose email format described on emailPattern.
func ValidateEmail(email string) error {
	if email == "" {
		return apperr.Validation("email", "must not be empty")
	}
	if !emailPattern.MatchString(email) {
		return apperr.Validation("email", "malformed email address")
	}
	return nil
}

func validateName(field, value string) error {
	if value == "" {
		return apperr.Validation(field, "must not be empty")
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		return apperr.Validation(field, "must be at most 50 characters")
	}
	return nil
}
