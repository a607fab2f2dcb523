// Package mock provides in-memory repository implementations for tests.
package mock

import (
	"sync"

	"starlog/app/apperr"
	"starlog/app/models"
)

type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex
}

type CommentRepository struct {
	comments map[string]*models.Comment
	mutex    sync.RWMutex
}

type UserRepository struct {
	users map[string]*models.User
	mutex sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*models.Post)}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string]*models.Comment)}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*models.User)}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[string]*models.Post)
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	post.BeforeCreate()
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	post, exists := m.posts[id]
	if !exists {
		return nil, apperr.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) ListByStatus(status models.Status) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	var posts []*models.Post
	for _, post := range m.posts {
		if post.Status == status {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

func (m *PostRepository) ListByAuthor(authorID string) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	var posts []*models.Post
	for _, post := range m.posts {
		if post.AuthorID == authorID {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, exists := m.posts[post.ID]; !exists {
		return apperr.ErrNotFound
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, exists := m.posts[id]; !exists {
		return apperr.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	comment.BeforeCreate()
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) GetByID(id string) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	comment, exists := m.comments[id]
	if !exists {
		return nil, apperr.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (m *CommentRepository) ListByPost(postID string) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

func (m *CommentRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, exists := m.comments[id]; !exists {
		return apperr.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	user.BeforeCreate()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) GetByID(id string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	user, exists := m.users[id]
	if !exists {
		return nil, apperr.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.ErrNotFound
}
