package editor

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starlog/app/apperr"
	"starlog/app/models"
)

func sampleSections(t *testing.T) models.SectionList {
	t.Helper()
	return models.SectionList{
		models.Paragraph{ID: "a", Text: "one"},
		models.Subtopic{ID: "b", Title: "two", Level: 2},
		models.BulletList{ID: "c", Items: []string{"x"}},
		models.CodeSnippet{ID: "d", Language: "go", Code: "package main"},
	}
}

func TestAddSection(t *testing.T) {
	sections := sampleSections(t)
	out, err := AddSection(sections, models.SectionImage)
	require.NoError(t, err)
	assert.Len(t, out, 5)
	assert.Equal(t, models.SectionImage, out[4].Type())
	assert.Len(t, sections, 4, "input sequence must not change")

	_, err = AddSection(sections, "slideshow")
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateSection(t *testing.T) {
	sections := sampleSections(t)

	out, err := UpdateSection(sections, "a", "text", "rewritten")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", out[0].(models.Paragraph).Text)
	assert.Equal(t, "one", sections[0].(models.Paragraph).Text, "input sequence must not change")

	_, err = UpdateSection(sections, "a", "items", []string{"nope"})
	assert.True(t, apperr.IsValidation(err))

	_, err = UpdateSection(sections, "missing", "text", "x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRemoveSection(t *testing.T) {
	sections := sampleSections(t)

	out := RemoveSection(sections, "b")
	assert.Equal(t, []string{"a", "c", "d"}, out.IDs())

	// Removing an absent id is a no-op, not an error.
	out = RemoveSection(sections, "nope")
	assert.Equal(t, sections.IDs(), out.IDs())
}

func TestReorder(t *testing.T) {
	sections := sampleSections(t)

	t.Run("moves one element preserving relative order", func(t *testing.T) {
		out, err := Reorder(sections, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "a", "d"}, out.IDs())

		out, err = Reorder(sections, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "a", "b", "c"}, out.IDs())
	})

	t.Run("preserves length and the id multiset for all valid moves", func(t *testing.T) {
		for from := 0; from < len(sections); from++ {
			for to := 0; to < len(sections); to++ {
				out, err := Reorder(sections, from, to)
				require.NoError(t, err)
				require.Len(t, out, len(sections))

				got := out.IDs()
				want := sections.IDs()
				sort.Strings(got)
				sort.Strings(want)
				assert.Equal(t, want, got)
			}
		}
	})

	t.Run("rejects out-of-bounds indexes", func(t *testing.T) {
		for _, pair := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
			_, err := Reorder(sections, pair[0], pair[1])
			assert.True(t, apperr.IsIndex(err), "expected IndexError for %v", pair)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		_, err := Reorder(sections, 0, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, sections.IDs())
	})
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"go", "web", "tutorial"}, ParseTags(" go, web ,tutorial"))
	assert.Equal(t, []string{"go", "go"}, ParseTags("go,go"), "duplicates are kept")
	assert.Nil(t, ParseTags(""))
	assert.Nil(t, ParseTags(" , ,"))
}

func TestNormalizeYoutubeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"watch link", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"watch link with params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"already embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"unrelated url", "https://vimeo.com/123", "https://vimeo.com/123"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeYoutubeURL(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, NormalizeYoutubeURL(got), "normalization must be idempotent")
		})
	}
}
