package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starlog/app/apperr"
	"starlog/app/models"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository("")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, repo.Close())
	})
	return repo
}

func TestPostRepository(t *testing.T) {
	repo := newTestRepository(t)

	post := &models.Post{
		Title:    "First",
		AuthorID: "u1",
		ContentSections: models.SectionList{
			models.Paragraph{ID: "a", Text: "hello"},
			models.CodeSnippet{ID: "b", Language: "go", Code: "x := 1"},
		},
	}

	t.Run("create assigns id and defaults", func(t *testing.T) {
		require.NoError(t, repo.Create(post))
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, models.StatusDefault, post.Status)
	})

	t.Run("get round-trips the section list in order", func(t *testing.T) {
		got, err := repo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Title, got.Title)
		assert.Equal(t, []string{"a", "b"}, got.ContentSections.IDs())
		assert.Equal(t, "hello", got.ContentSections[0].(models.Paragraph).Text)
	})

	t.Run("get unknown id fails with not found", func(t *testing.T) {
		_, err := repo.GetByID("nope")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("list by status", func(t *testing.T) {
		approved := &models.Post{
			Title:           "Second",
			AuthorID:        "u2",
			Status:          models.StatusApproved,
			ContentSections: models.SectionList{models.Paragraph{ID: "c", Text: "x"}},
		}
		require.NoError(t, repo.Create(approved))

		pending, err := repo.ListByStatus(models.StatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, post.ID, pending[0].ID)

		live, err := repo.ListByStatus(models.StatusApproved)
		require.NoError(t, err)
		require.Len(t, live, 1)
		assert.Equal(t, approved.ID, live[0].ID)
	})

	t.Run("list by author", func(t *testing.T) {
		mine, err := repo.ListByAuthor("u1")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, post.ID, mine[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		post.Title = "First, revised"
		post.UpdatedAt = time.Now().UTC()
		require.NoError(t, repo.Update(post))

		got, err := repo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "First, revised", got.Title)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(post.ID))
		_, err := repo.GetByID(post.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCommentStore(t *testing.T) {
	repo := newTestRepository(t)
	comments := repo.Comments()

	comment := &models.Comment{PostID: "p1", Username: "bob", Content: "nice"}
	require.NoError(t, comments.Create(comment))
	assert.NotEmpty(t, comment.ID)

	reply := &models.Comment{PostID: "p1", Username: "alice", Content: "agreed", ParentCommentID: comment.ID}
	require.NoError(t, comments.Create(reply))

	other := &models.Comment{PostID: "p2", Username: "eve", Content: "elsewhere"}
	require.NoError(t, comments.Create(other))

	t.Run("list filters by post", func(t *testing.T) {
		got, err := comments.ListByPost("p1")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("get preserves parent reference", func(t *testing.T) {
		got, err := comments.GetByID(reply.ID)
		require.NoError(t, err)
		assert.Equal(t, comment.ID, got.ParentCommentID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, comments.Delete(other.ID))
		_, err := comments.GetByID(other.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestUserStore(t *testing.T) {
	repo := newTestRepository(t)
	users := repo.Users()

	user := &models.User{Username: "ann", Email: "ann@example.com", PasswordHash: "hash", Role: models.RoleUser}
	require.NoError(t, users.Create(user))

	t.Run("get by id", func(t *testing.T) {
		got, err := users.GetByID(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ann", got.Username)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := users.GetByEmail("ann@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		_, err = users.GetByEmail("ghost@example.com")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
