package services

import (
	"errors"
	"sort"
	"time"

	"starlog/app/apperr"
	"starlog/app/auth"
	"starlog/app/models"
	"starlog/app/repositories"
)

// PostService handles business logic for blog posts, including the moderation
// workflow. Every mutating operation takes the caller identity explicitly.
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, userRepo repositories.UserRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
	}
}

// PostInput carries the author-editable fields of a post. Edits replace all
// of them wholesale; there is no partial patch.
type PostInput struct {
	Title              string
	TwoLineDescription string
	ThumbnailURL       string
	Tags               []string
	ContentSections    models.SectionList
}

// CreatePost validates and persists a new post. Posts enter the moderation
// queue with the default status.
func (s *PostService) CreatePost(author auth.Identity, in PostInput) (*models.Post, error) {
	if author.Anonymous() {
		return nil, apperr.ErrUnauthenticated
	}
	post := &models.Post{
		Title:              in.Title,
		TwoLineDescription: in.TwoLineDescription,
		ThumbnailURL:       in.ThumbnailURL,
		Tags:               in.Tags,
		ContentSections:    in.ContentSections,
		AuthorID:           author.ID,
	}
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditPost replaces the editable fields of an existing post and stamps the
// update time. Only the owning author or an admin may edit. Concurrent edits
// are last-write-wins.
func (s *PostService) EditPost(editor auth.Identity, postID string, in PostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if editor.Anonymous() {
		return nil, apperr.ErrUnauthenticated
	}
	if !editor.CanModifyPost(post) {
		return nil, apperr.ErrUnauthorized
	}

	post.Title = in.Title
	post.TwoLineDescription = in.TwoLineDescription
	post.ThumbnailURL = in.ThumbnailURL
	post.Tags = in.Tags
	post.ContentSections = in.ContentSections
	post.AuthorName = ""
	post.UpdatedAt = time.Now().UTC()

	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and all of its comments. Only the owning author
// or an admin may delete.
func (s *PostService) DeletePost(actor auth.Identity, postID string) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if actor.Anonymous() {
		return apperr.ErrUnauthenticated
	}
	if !actor.CanModifyPost(post) {
		return apperr.ErrUnauthorized
	}

	comments, err := s.commentRepo.ListByPost(postID)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		if err := s.commentRepo.Delete(comment.ID); err != nil {
			return err
		}
	}
	return s.postRepo.Delete(postID)
}

// GetByID retrieves a post with the author identifier resolved to a display
// name. Readable by anyone; visibility filtering is the list operations'
// concern.
func (s *PostService) GetByID(postID string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(post.AuthorID)
	switch {
	case err == nil:
		post.AuthorName = user.Username
	case errors.Is(err, apperr.ErrNotFound):
		// Author account gone; attribution stays blank.
	default:
		return nil, err
	}
	return post, nil
}

// ListApproved returns all approved posts, newest first. No authentication
// required.
func (s *PostService) ListApproved() ([]*models.Post, error) {
	posts, err := s.postRepo.ListByStatus(models.StatusApproved)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// ListPending returns the moderation queue, newest first. Admin only.
func (s *PostService) ListPending(moderator auth.Identity) ([]*models.Post, error) {
	if moderator.Anonymous() {
		return nil, apperr.ErrUnauthenticated
	}
	if !moderator.CanModerate() {
		return nil, apperr.ErrUnauthorized
	}
	posts, err := s.postRepo.ListByStatus(models.StatusPending)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// ListByAuthor returns all posts owned by authorID regardless of status, for
// the author's own management view. Admins may view any author's posts.
func (s *PostService) ListByAuthor(actor auth.Identity, authorID string) ([]*models.Post, error) {
	if actor.Anonymous() {
		return nil, apperr.ErrUnauthenticated
	}
	if actor.ID != authorID && !actor.IsAdmin() {
		return nil, apperr.ErrUnauthorized
	}
	posts, err := s.postRepo.ListByAuthor(authorID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// Approve moves a post from PENDING to APPROVED. Approving an already
// approved post is a harmless no-op. Admin only; the capability check runs
// before existence is revealed.
func (s *PostService) Approve(moderator auth.Identity, postID string) (*models.Post, error) {
	if moderator.Anonymous() {
		return nil, apperr.ErrUnauthenticated
	}
	if !moderator.CanModerate() {
		return nil, apperr.ErrUnauthorized
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.Status == models.StatusApproved {
		return post, nil
	}
	if !post.Status.CanTransitionTo(models.StatusApproved) {
		return nil, apperr.Validationf("status", "cannot approve a %s post", string(post.Status))
	}
	post.Status = models.StatusApproved
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func sortNewestFirst(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
