package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Role is the capability level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Post represents a blog post composed of ordered content sections.
type Post struct {
	ID                 string      `json:"id" validate:"required"`
	Title              string      `json:"title" validate:"required,min=1,max=200"`
	TwoLineDescription string      `json:"twoLineDescription" validate:"max=300"`
	ThumbnailURL       string      `json:"thumbnailUrl"`
	Tags               []string    `json:"tags"`
	ContentSections    SectionList `json:"contentSections" validate:"-"`
	AuthorID           string      `json:"author" validate:"required"`
	AuthorName         string      `json:"authorName,omitempty"`
	Status             Status      `json:"status" validate:"required"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// Comment represents a reply attached to a post, optionally nested under
// another comment. Username is a display snapshot, not a live user reference.
type Comment struct {
	ID              string    `json:"id" validate:"required"`
	PostID          string    `json:"postId" validate:"required"`
	ParentCommentID string    `json:"parentComment,omitempty"`
	Username        string    `json:"username" validate:"required,min=1,max=100"`
	Content         string    `json:"content" validate:"required,min=1,max=2000"`
	CreatedAt       time.Time `json:"createdAt"`
}

// User represents a registered account.
type User struct {
	ID           string    `json:"id" validate:"required"`
	Username     string    `json:"username" validate:"required,min=2,max=50"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role" validate:"required,oneof=user admin"`
	CreatedAt    time.Time `json:"createdAt"`
}
