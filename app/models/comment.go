package models

import (
	"time"

	"github.com/google/uuid"

	"starlog/app/apperr"
)

// Validate checks if the comment meets all validation requirements.
func (c *Comment) Validate() error {
	if c.Content == "" {
		return apperr.Validation("content", "is required")
	}
	if c.Username == "" {
		return apperr.Validation("username", "is required")
	}
	if err := validate.Struct(c); err != nil {
		return apperr.Validation("comment", err.Error())
	}
	return nil
}

// BeforeCreate sets up any necessary fields before creation.
func (c *Comment) BeforeCreate() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
}
