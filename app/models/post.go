package models

import (
	"time"

	"github.com/google/uuid"

	"starlog/app/apperr"
)

// Validate checks if the post meets all validation requirements.
func (p *Post) Validate() error {
	if p.Title == "" {
		return apperr.Validation("title", "is required")
	}
	if len(p.ContentSections) == 0 {
		return apperr.Validation("contentSections", "at least one section is required")
	}
	if err := p.ContentSections.Validate(); err != nil {
		return err
	}
	if !p.Status.Valid() {
		return apperr.Validationf("status", "unrecognized status %q", string(p.Status))
	}
	if err := validate.Struct(p); err != nil {
		return apperr.Validation("post", err.Error())
	}
	return nil
}

// BeforeCreate sets up any necessary fields before creation.
func (p *Post) BeforeCreate() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusDefault
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
}

// Owner reports whether userID is the owning author.
func (p *Post) Owner(userID string) bool {
	return userID != "" && p.AuthorID == userID
}
