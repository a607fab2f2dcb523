package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starlog/app/apperr"
)

func TestNewSection(t *testing.T) {
	t.Run("creates each recognized type with a fresh id", func(t *testing.T) {
		types := []SectionType{
			SectionParagraph, SectionSubtopic, SectionImage,
			SectionYoutubeEmbed, SectionBulletList, SectionCodeSnippet,
		}
		seen := make(map[string]bool)
		for _, st := range types {
			section, err := NewSection(st)
			require.NoError(t, err)
			assert.Equal(t, st, section.Type())
			assert.NotEmpty(t, section.SectionID())
			assert.False(t, seen[section.SectionID()], "ids must be unique")
			seen[section.SectionID()] = true
		}
	})

	t.Run("subtopic defaults to level 2", func(t *testing.T) {
		section, err := NewSection(SectionSubtopic)
		require.NoError(t, err)
		assert.Equal(t, 2, section.(Subtopic).Level)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewSection("carousel")
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestSectionValidate(t *testing.T) {
	assert.NoError(t, Subtopic{ID: "s1", Title: "Intro", Level: 2}.Validate())
	assert.NoError(t, Subtopic{ID: "s1", Title: "Intro", Level: 3}.Validate())
	assert.True(t, apperr.IsValidation(Subtopic{ID: "s1", Title: "Intro", Level: 4}.Validate()))
	assert.NoError(t, Paragraph{ID: "p1", Text: "hello"}.Validate())
}

func TestUpdateField(t *testing.T) {
	t.Run("updates a legal field", func(t *testing.T) {
		updated, err := UpdateField(Paragraph{ID: "p1", Text: "old"}, "text", "new")
		require.NoError(t, err)
		assert.Equal(t, "new", updated.(Paragraph).Text)
		assert.Equal(t, "p1", updated.SectionID())
	})

	t.Run("rejects a field from another variant", func(t *testing.T) {
		_, err := UpdateField(Paragraph{ID: "p1", Text: "hi"}, "items", []string{"a"})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("rejects a wrongly typed value", func(t *testing.T) {
		_, err := UpdateField(Subtopic{ID: "s1", Level: 2}, "level", "three")
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("accepts json numbers for level", func(t *testing.T) {
		updated, err := UpdateField(Subtopic{ID: "s1", Level: 2}, "level", float64(3))
		require.NoError(t, err)
		assert.Equal(t, 3, updated.(Subtopic).Level)
	})

	t.Run("accepts json arrays for items", func(t *testing.T) {
		updated, err := UpdateField(BulletList{ID: "b1"}, "items", []interface{}{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, updated.(BulletList).Items)
	})

	t.Run("never changes the section type", func(t *testing.T) {
		updated, err := UpdateField(Image{ID: "i1"}, "url", "https://cdn/x.png")
		require.NoError(t, err)
		assert.Equal(t, SectionImage, updated.Type())
	})
}

func TestSectionListCodec(t *testing.T) {
	t.Run("round-trips every variant preserving order", func(t *testing.T) {
		in := SectionList{
			Paragraph{ID: "a", Text: "hello"},
			Subtopic{ID: "b", Title: "Setup", Level: 3},
			Image{ID: "c", URL: "https://cdn/x.png", Caption: "fig 1", AltText: "a chart"},
			YoutubeEmbed{ID: "d", VideoURL: "https://www.youtube.com/embed/xyz"},
			BulletList{ID: "e", Items: []string{"one", "two"}},
			CodeSnippet{ID: "f", Language: "go", Code: "package main"},
		}
		data, err := json.Marshal(in)
		require.NoError(t, err)

		var out SectionList
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, in, out)
		assert.Equal(t, in.IDs(), out.IDs())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		var out SectionList
		err := json.Unmarshal([]byte(`[{"id":"x","type":"carousel"}]`), &out)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("rejects fields outside the variant's set", func(t *testing.T) {
		var out SectionList
		err := json.Unmarshal([]byte(`[{"id":"x","type":"paragraph","text":"hi","items":["a"]}]`), &out)
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("assigns an id when the wire form has none", func(t *testing.T) {
		var out SectionList
		require.NoError(t, json.Unmarshal([]byte(`[{"type":"paragraph","text":"hi"}]`), &out))
		require.Len(t, out, 1)
		assert.NotEmpty(t, out[0].SectionID())
	})

	t.Run("list validation reports the failing section", func(t *testing.T) {
		list := SectionList{
			Paragraph{ID: "a", Text: "fine"},
			Subtopic{ID: "b", Title: "bad", Level: 9},
		}
		err := list.Validate()
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})
}
