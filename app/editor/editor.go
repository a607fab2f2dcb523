// Package editor maintains the ordered section sequence of a post while it is
// being authored, and renders a finalized sequence for display.
package editor

import (
	"strings"

	"starlog/app/apperr"
	"starlog/app/models"
)

// AddSection appends a newly created default-valued section of the given type.
// The input sequence is not modified.
func AddSection(sections models.SectionList, t models.SectionType) (models.SectionList, error) {
	section, err := models.NewSection(t)
	if err != nil {
		return nil, err
	}
	out := make(models.SectionList, 0, len(sections)+1)
	out = append(out, sections...)
	out = append(out, section)
	return out, nil
}

// UpdateSection returns a sequence with only the named field of the matching
// section changed. Fails with ErrNotFound if no section has the given id.
func UpdateSection(sections models.SectionList, id, field string, value interface{}) (models.SectionList, error) {
	for i, s := range sections {
		if s.SectionID() != id {
			continue
		}
		updated, err := models.UpdateField(s, field, value)
		if err != nil {
			return nil, err
		}
		out := make(models.SectionList, len(sections))
		copy(out, sections)
		out[i] = updated
		return out, nil
	}
	return nil, apperr.ErrNotFound
}

// RemoveSection returns a sequence with the matching section excised. Removing
// an absent id is a no-op, not an error.
func RemoveSection(sections models.SectionList, id string) models.SectionList {
	out := make(models.SectionList, 0, len(sections))
	for _, s := range sections {
		if s.SectionID() != id {
			out = append(out, s)
		}
	}
	return out
}

// Reorder moves the element at from to position to, preserving the relative
// order of all other elements. Either index out of [0, len) fails with an
// IndexError.
func Reorder(sections models.SectionList, from, to int) (models.SectionList, error) {
	if from < 0 || from >= len(sections) {
		return nil, &apperr.IndexError{Index: from, Length: len(sections)}
	}
	if to < 0 || to >= len(sections) {
		return nil, &apperr.IndexError{Index: to, Length: len(sections)}
	}
	out := make(models.SectionList, 0, len(sections))
	out = append(out, sections...)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(models.SectionList{moved}, out[to:]...)...)
	return out, nil
}

// ParseTags normalizes free-text comma-separated tag input into a trimmed
// list. Empty entries are dropped; duplicates are kept.
func ParseTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// NormalizeYoutubeURL rewrites the two common YouTube link shapes
// (watch?v=ID and youtu.be/ID) to the canonical embed form. Anything else
// passes through unchanged, so normalizing twice equals normalizing once.
func NormalizeYoutubeURL(raw string) string {
	if idx := strings.Index(raw, "watch?v="); idx >= 0 {
		id := raw[idx+len("watch?v="):]
		if amp := strings.IndexByte(id, '&'); amp >= 0 {
			id = id[:amp]
		}
		return "https://www.youtube.com/embed/" + id
	}
	if idx := strings.Index(raw, "youtu.be/"); idx >= 0 {
		id := raw[idx+len("youtu.be/"):]
		if q := strings.IndexByte(id, '?'); q >= 0 {
			id = id[:q]
		}
		return "https://www.youtube.com/embed/" + id
	}
	return raw
}
