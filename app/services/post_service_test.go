package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starlog/app/apperr"
	"starlog/app/auth"
	"starlog/app/models"
	"starlog/app/repositories/mock"
)

var (
	author    = auth.Identity{ID: "u-ann", Username: "ann", Role: models.RoleUser}
	stranger  = auth.Identity{ID: "u-ben", Username: "ben", Role: models.RoleUser}
	moderator = auth.Identity{ID: "u-mod", Username: "mod", Role: models.RoleAdmin}
	nobody    = auth.Identity{}
)

func newPostFixture() (*PostService, *mock.PostRepository, *mock.UserRepository) {
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	userRepo := mock.NewUserRepository()
	return NewPostService(postRepo, commentRepo, userRepo), postRepo, userRepo
}

func sampleInput() PostInput {
	return PostInput{
		Title:              "Intro to X",
		TwoLineDescription: "two lines",
		Tags:               []string{"go", "web"},
		ContentSections: models.SectionList{
			models.Paragraph{ID: "a", Text: "hello"},
			models.Subtopic{ID: "b", Title: "Setup", Level: 2},
			models.BulletList{ID: "c", Items: []string{"one", "two"}},
		},
	}
}

func TestCreatePost(t *testing.T) {
	service, _, _ := newPostFixture()

	t.Run("valid input round-trips with section order intact", func(t *testing.T) {
		created, err := service.CreatePost(author, sampleInput())
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, models.StatusPending, created.Status)
		assert.Equal(t, author.ID, created.AuthorID)

		got, err := service.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, got.ContentSections.IDs())
	})

	t.Run("anonymous caller rejected", func(t *testing.T) {
		_, err := service.CreatePost(nobody, sampleInput())
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		in := sampleInput()
		in.Title = ""
		_, err := service.CreatePost(author, in)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("empty section list rejected", func(t *testing.T) {
		in := sampleInput()
		in.ContentSections = nil
		_, err := service.CreatePost(author, in)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("invalid section aborts the whole create", func(t *testing.T) {
		in := sampleInput()
		in.ContentSections = append(in.ContentSections, models.Subtopic{ID: "z", Level: 9})
		_, err := service.CreatePost(author, in)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestEditPost(t *testing.T) {
	service, _, _ := newPostFixture()
	created, err := service.CreatePost(author, sampleInput())
	require.NoError(t, err)

	t.Run("owner edit replaces fields wholesale and stamps update time", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		in := sampleInput()
		in.Title = "Intro to X, second edition"
		in.ContentSections = models.SectionList{models.Paragraph{ID: "only", Text: "rewritten"}}

		edited, err := service.EditPost(author, created.ID, in)
		require.NoError(t, err)
		assert.True(t, edited.UpdatedAt.After(edited.CreatedAt))

		got, err := service.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Intro to X, second edition", got.Title)
		assert.Equal(t, []string{"only"}, got.ContentSections.IDs())
	})

	t.Run("non-owner non-admin always rejected", func(t *testing.T) {
		_, err := service.EditPost(stranger, created.ID, sampleInput())
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)

		got, err := service.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Intro to X, second edition", got.Title, "failed edit must not partially apply")
	})

	t.Run("admin may edit", func(t *testing.T) {
		in := sampleInput()
		in.Title = "Moderated title"
		_, err := service.EditPost(moderator, created.ID, in)
		assert.NoError(t, err)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := service.EditPost(author, "missing", sampleInput())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestModeration(t *testing.T) {
	service, _, _ := newPostFixture()
	created, err := service.CreatePost(author, sampleInput())
	require.NoError(t, err)

	t.Run("pending posts are not publicly listed", func(t *testing.T) {
		live, err := service.ListApproved()
		require.NoError(t, err)
		assert.Empty(t, live)
	})

	t.Run("only admins see the queue", func(t *testing.T) {
		_, err := service.ListPending(author)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)

		queue, err := service.ListPending(moderator)
		require.NoError(t, err)
		require.Len(t, queue, 1)
		assert.Equal(t, created.ID, queue[0].ID)
	})

	t.Run("only admins approve", func(t *testing.T) {
		_, err := service.Approve(author, created.ID)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
		_, err = service.Approve(nobody, created.ID)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	})

	t.Run("approval makes the post public", func(t *testing.T) {
		approved, err := service.Approve(moderator, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, approved.Status)

		live, err := service.ListApproved()
		require.NoError(t, err)
		require.Len(t, live, 1)
		assert.Equal(t, created.ID, live[0].ID)
	})

	t.Run("re-approving is a no-op", func(t *testing.T) {
		again, err := service.Approve(moderator, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, again.Status)
	})

	t.Run("approving an unknown post", func(t *testing.T) {
		_, err := service.Approve(moderator, "missing")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestListApprovedOrder(t *testing.T) {
	service, postRepo, _ := newPostFixture()

	base := time.Now().UTC()
	for i, title := range []string{"oldest", "middle", "newest"} {
		post := &models.Post{
			Title:           title,
			AuthorID:        author.ID,
			Status:          models.StatusApproved,
			ContentSections: models.SectionList{models.Paragraph{ID: "p", Text: "x"}},
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, postRepo.Create(post))
	}

	live, err := service.ListApproved()
	require.NoError(t, err)
	require.Len(t, live, 3)
	assert.Equal(t, "newest", live[0].Title)
	assert.Equal(t, "oldest", live[2].Title)
}

func TestListByAuthor(t *testing.T) {
	service, _, _ := newPostFixture()
	created, err := service.CreatePost(author, sampleInput())
	require.NoError(t, err)

	t.Run("author sees own posts regardless of status", func(t *testing.T) {
		mine, err := service.ListByAuthor(author, author.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, created.ID, mine[0].ID)
	})

	t.Run("another user may not browse someone's drafts", func(t *testing.T) {
		_, err := service.ListByAuthor(stranger, author.ID)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("admin may", func(t *testing.T) {
		mine, err := service.ListByAuthor(moderator, author.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})
}

func TestGetByIDAttribution(t *testing.T) {
	service, _, userRepo := newPostFixture()
	user := &models.User{ID: author.ID, Username: "ann", Email: "ann@example.com", PasswordHash: "h", Role: models.RoleUser}
	require.NoError(t, userRepo.Create(user))

	created, err := service.CreatePost(author, sampleInput())
	require.NoError(t, err)

	got, err := service.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", got.AuthorName)

	_, err = service.GetByID("missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	userRepo := mock.NewUserRepository()
	service := NewPostService(postRepo, commentRepo, userRepo)

	created, err := service.CreatePost(author, sampleInput())
	require.NoError(t, err)
	require.NoError(t, commentRepo.Create(&models.Comment{PostID: created.ID, Username: "bob", Content: "bye"}))

	t.Run("stranger may not delete", func(t *testing.T) {
		err := service.DeletePost(stranger, created.ID)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("owner delete removes post and comments", func(t *testing.T) {
		require.NoError(t, service.DeletePost(author, created.ID))

		_, err := service.GetByID(created.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		remaining, err := commentRepo.ListByPost(created.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}
