package repositories

import "starlog/app/models"

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	ListByStatus(status models.Status) ([]*models.Post, error)
	ListByAuthor(authorID string) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id string) error
}

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListByPost(postID string) ([]*models.Comment, error)
	Delete(id string) error
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
