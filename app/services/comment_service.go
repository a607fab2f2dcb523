package services

import (
	"sort"

	"starlog/app/apperr"
	"starlog/app/auth"
	"starlog/app/models"
	"starlog/app/repositories"
)

// CommentService handles business logic for comments. Comments are
// append-only: they are created and administratively deleted, never edited.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment creates a comment on a post. parentCommentID may be empty; when
// set it must reference a comment on the same post. The username is stored as
// a display snapshot.
func (s *CommentService) AddComment(postID, username, content, parentCommentID string) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:          postID,
		ParentCommentID: parentCommentID,
		Username:        username,
		Content:         content,
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}

	if parentCommentID != "" {
		parent, err := s.commentRepo.GetByID(parentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperr.ErrNotFound
		}
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForPost returns all comments on a post, newest first. Threading is the
// caller's to reconstruct from the parent references; no tree is pre-built.
func (s *CommentService) ListForPost(postID string) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

// DeleteComment removes a comment. Admin only.
func (s *CommentService) DeleteComment(actor auth.Identity, commentID string) error {
	if actor.Anonymous() {
		return apperr.ErrUnauthenticated
	}
	if !actor.IsAdmin() {
		return apperr.ErrUnauthorized
	}
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(commentID)
}
