package models

import (
	"time"

	"github.com/google/uuid"

	"starlog/app/apperr"
)

// Validate checks if the user meets all validation requirements.
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return apperr.Validation("user", err.Error())
	}
	return nil
}

// BeforeCreate sets up any necessary fields before creation.
func (u *User) BeforeCreate() {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
}
