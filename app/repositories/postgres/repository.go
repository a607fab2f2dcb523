// Package postgres is the relational implementation of the repository
// interfaces. Section lists persist as a JSONB column so a post row keeps the
// same inline-document layout the Badger backend uses, submitted order
// included.
package postgres

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"starlog/app/apperr"
	"starlog/app/models"
)

type postRecord struct {
	ID                 string `gorm:"type:uuid;primaryKey"`
	Title              string `gorm:"not null"`
	TwoLineDescription string
	ThumbnailURL       string
	Tags               []byte `gorm:"type:jsonb"`
	Sections           []byte `gorm:"type:jsonb;not null"`
	AuthorID           string `gorm:"not null;index"`
	Status             string `gorm:"not null;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type commentRecord struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	PostID          string `gorm:"type:uuid;not null;index"`
	ParentCommentID *string
	Username        string `gorm:"not null"`
	Content         string `gorm:"not null"`
	CreatedAt       time.Time
}

type userRecord struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Username     string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
	CreatedAt    time.Time
}

func (postRecord) TableName() string    { return "posts" }
func (commentRecord) TableName() string { return "comments" }
func (userRecord) TableName() string    { return "users" }

// Repository persists entities in PostgreSQL via gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository connects to the database and migrates the schema.
func NewRepository(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, apperr.Store("open", err)
	}
	if err := db.AutoMigrate(&postRecord{}, &commentRecord{}, &userRecord{}); err != nil {
		return nil, apperr.Store("migrate", err)
	}
	return &Repository{db: db}, nil
}

// Comments returns the comment view of the repository.
func (r *Repository) Comments() *CommentStore { return &CommentStore{r.db} }

// Users returns the user view of the repository.
func (r *Repository) Users() *UserStore { return &UserStore{r.db} }

func toPostRecord(post *models.Post) (*postRecord, error) {
	sections, err := json.Marshal(post.ContentSections)
	if err != nil {
		return nil, apperr.Store("encode sections", err)
	}
	tags, err := json.Marshal(post.Tags)
	if err != nil {
		return nil, apperr.Store("encode tags", err)
	}
	return &postRecord{
		ID:                 post.ID,
		Title:              post.Title,
		TwoLineDescription: post.TwoLineDescription,
		ThumbnailURL:       post.ThumbnailURL,
		Tags:               tags,
		Sections:           sections,
		AuthorID:           post.AuthorID,
		Status:             string(post.Status),
		CreatedAt:          post.CreatedAt,
		UpdatedAt:          post.UpdatedAt,
	}, nil
}

func fromPostRecord(rec *postRecord) (*models.Post, error) {
	post := &models.Post{
		ID:                 rec.ID,
		Title:              rec.Title,
		TwoLineDescription: rec.TwoLineDescription,
		ThumbnailURL:       rec.ThumbnailURL,
		AuthorID:           rec.AuthorID,
		Status:             models.Status(rec.Status),
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
	if len(rec.Tags) > 0 {
		if err := json.Unmarshal(rec.Tags, &post.Tags); err != nil {
			return nil, apperr.Store("decode tags", err)
		}
	}
	if len(rec.Sections) > 0 {
		if err := json.Unmarshal(rec.Sections, &post.ContentSections); err != nil {
			return nil, apperr.Store("decode sections", err)
		}
	}
	return post, nil
}

func (r *Repository) Create(post *models.Post) error {
	post.BeforeCreate()
	rec, err := toPostRecord(post)
	if err != nil {
		return err
	}
	return apperr.Store("create post", r.db.Create(rec).Error)
}

func (r *Repository) GetByID(id string) (*models.Post, error) {
	var rec postRecord
	err := r.db.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("get post", err)
	}
	return fromPostRecord(&rec)
}

func (r *Repository) ListByStatus(status models.Status) ([]*models.Post, error) {
	var recs []postRecord
	if err := r.db.Where("status = ?", string(status)).Find(&recs).Error; err != nil {
		return nil, apperr.Store("list posts", err)
	}
	return fromPostRecords(recs)
}

func (r *Repository) ListByAuthor(authorID string) ([]*models.Post, error) {
	var recs []postRecord
	if err := r.db.Where("author_id = ?", authorID).Find(&recs).Error; err != nil {
		return nil, apperr.Store("list posts", err)
	}
	return fromPostRecords(recs)
}

func fromPostRecords(recs []postRecord) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, len(recs))
	for i := range recs {
		post, err := fromPostRecord(&recs[i])
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *Repository) Update(post *models.Post) error {
	rec, err := toPostRecord(post)
	if err != nil {
		return err
	}
	return apperr.Store("update post", r.db.Save(rec).Error)
}

func (r *Repository) Delete(id string) error {
	return apperr.Store("delete post", r.db.Delete(&postRecord{}, "id = ?", id).Error)
}

// CommentStore implements CommentRepository.
type CommentStore struct {
	db *gorm.DB
}

func (s *CommentStore) Create(comment *models.Comment) error {
	comment.BeforeCreate()
	rec := &commentRecord{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Username:  comment.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.ParentCommentID != "" {
		parent := comment.ParentCommentID
		rec.ParentCommentID = &parent
	}
	return apperr.Store("create comment", s.db.Create(rec).Error)
}

func (s *CommentStore) GetByID(id string) (*models.Comment, error) {
	var rec commentRecord
	err := s.db.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("get comment", err)
	}
	return fromCommentRecord(&rec), nil
}

func (s *CommentStore) ListByPost(postID string) ([]*models.Comment, error) {
	var recs []commentRecord
	if err := s.db.Where("post_id = ?", postID).Find(&recs).Error; err != nil {
		return nil, apperr.Store("list comments", err)
	}
	comments := make([]*models.Comment, 0, len(recs))
	for i := range recs {
		comments = append(comments, fromCommentRecord(&recs[i]))
	}
	return comments, nil
}

func (s *CommentStore) Delete(id string) error {
	return apperr.Store("delete comment", s.db.Delete(&commentRecord{}, "id = ?", id).Error)
}

func fromCommentRecord(rec *commentRecord) *models.Comment {
	comment := &models.Comment{
		ID:        rec.ID,
		PostID:    rec.PostID,
		Username:  rec.Username,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
	}
	if rec.ParentCommentID != nil {
		comment.ParentCommentID = *rec.ParentCommentID
	}
	return comment
}

// UserStore implements UserRepository.
type UserStore struct {
	db *gorm.DB
}

func (s *UserStore) Create(user *models.User) error {
	user.BeforeCreate()
	rec := &userRecord{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	}
	return apperr.Store("create user", s.db.Create(rec).Error)
}

func (s *UserStore) GetByID(id string) (*models.User, error) {
	var rec userRecord
	err := s.db.First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("get user", err)
	}
	return fromUserRecord(&rec), nil
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	var rec userRecord
	err := s.db.First(&rec, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("get user", err)
	}
	return fromUserRecord(&rec), nil
}

func fromUserRecord(rec *userRecord) *models.User {
	return &models.User{
		ID:           rec.ID,
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		Role:         models.Role(rec.Role),
		CreatedAt:    rec.CreatedAt,
	}
}
