package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"starlog/app/apperr"
)

// SectionType identifies one of the six recognized content block kinds.
type SectionType string

const (
	SectionParagraph    SectionType = "paragraph"
	SectionSubtopic     SectionType = "subtopic"
	SectionImage        SectionType = "image"
	SectionYoutubeEmbed SectionType = "youtubeEmbed"
	SectionBulletList   SectionType = "bulletList"
	SectionCodeSnippet  SectionType = "codeSnippet"
)

// ContentSection is one typed block of post content. The set of
// implementations is closed: a section's type is fixed at creation and
// unrecognized types are rejected during decoding.
type ContentSection interface {
	// SectionID is the stable identifier assigned at creation, used for
	// reordering and in-place updates. Identity is by ID, not position.
	SectionID() string
	Type() SectionType
	Validate() error

	toEnvelope() sectionEnvelope
}

// Paragraph is a block of running text.
type Paragraph struct {
	ID   string
	Text string
}

// Subtopic is a heading. Level maps to h2/h3.
type Subtopic struct {
	ID    string
	Title string
	Level int
}

// Image is an illustration with optional caption and alt text. PreviewURL
// holds a local preview while the upload is in flight.
type Image struct {
	ID         string
	URL        string
	Caption    string
	AltText    string
	PreviewURL string
}

// YoutubeEmbed is an embedded video player.
type YoutubeEmbed struct {
	ID       string
	VideoURL string
	Caption  string
}

// BulletList is an ordered list of short text items.
type BulletList struct {
	ID    string
	Items []string
}

// CodeSnippet is a highlighted block of code.
type CodeSnippet struct {
	ID       string
	Language string
	Code     string
}

func (s Paragraph) SectionID() string    { return s.ID }
func (s Subtopic) SectionID() string     { return s.ID }
func (s Image) SectionID() string        { return s.ID }
func (s YoutubeEmbed) SectionID() string { return s.ID }
func (s BulletList) SectionID() string   { return s.ID }
func (s CodeSnippet) SectionID() string  { return s.ID }

func (s Paragraph) Type() SectionType    { return SectionParagraph }
func (s Subtopic) Type() SectionType     { return SectionSubtopic }
func (s Image) Type() SectionType        { return SectionImage }
func (s YoutubeEmbed) Type() SectionType { return SectionYoutubeEmbed }
func (s BulletList) Type() SectionType   { return SectionBulletList }
func (s CodeSnippet) Type() SectionType  { return SectionCodeSnippet }

func (s Paragraph) Validate() error { return nil }

func (s Subtopic) Validate() error {
	if s.Level != 2 && s.Level != 3 {
		return apperr.Validationf("level", "must be 2 or 3, got %d", s.Level)
	}
	return nil
}

func (s Image) Validate() error        { return nil }
func (s YoutubeEmbed) Validate() error { return nil }
func (s BulletList) Validate() error   { return nil }
func (s CodeSnippet) Validate() error  { return nil }

// NewSection creates a default-valued section of the given type with a freshly
// generated identifier. Unknown types fail with a ValidationError.
func NewSection(t SectionType) (ContentSection, error) {
	id := uuid.NewString()
	switch t {
	case SectionParagraph:
		return Paragraph{ID: id}, nil
	case SectionSubtopic:
		return Subtopic{ID: id, Level: 2}, nil
	case SectionImage:
		return Image{ID: id}, nil
	case SectionYoutubeEmbed:
		return YoutubeEmbed{ID: id}, nil
	case SectionBulletList:
		return BulletList{ID: id, Items: []string{""}}, nil
	case SectionCodeSnippet:
		return CodeSnippet{ID: id, Language: "plaintext"}, nil
	}
	return nil, apperr.Validationf("type", "unrecognized section type %q", string(t))
}

// UpdateField returns a copy of section with only the named field changed.
// Setting a field that is not legal for the section's type fails with a
// ValidationError; the type itself can never change.
func UpdateField(section ContentSection, field string, value interface{}) (ContentSection, error) {
	switch s := section.(type) {
	case Paragraph:
		if field == "text" {
			return setString(&s.Text, s, field, value)
		}
	case Subtopic:
		switch field {
		case "title":
			return setString(&s.Title, s, field, value)
		case "level":
			n, err := asInt(field, value)
			if err != nil {
				return nil, err
			}
			s.Level = n
			return s, nil
		}
	case Image:
		switch field {
		case "url":
			return setString(&s.URL, s, field, value)
		case "caption":
			return setString(&s.Caption, s, field, value)
		case "altText":
			return setString(&s.AltText, s, field, value)
		case "previewUrl":
			return setString(&s.PreviewURL, s, field, value)
		}
	case YoutubeEmbed:
		switch field {
		case "videoUrl":
			return setString(&s.VideoURL, s, field, value)
		case "caption":
			return setString(&s.Caption, s, field, value)
		}
	case BulletList:
		if field == "items" {
			items, err := asStringSlice(field, value)
			if err != nil {
				return nil, err
			}
			s.Items = items
			return s, nil
		}
	case CodeSnippet:
		switch field {
		case "language":
			return setString(&s.Language, s, field, value)
		case "code":
			return setString(&s.Code, s, field, value)
		}
	}
	return nil, apperr.Validationf(field, "not a valid field for %s section", string(section.Type()))
}

func setString(dst *string, s ContentSection, field string, value interface{}) (ContentSection, error) {
	str, ok := value.(string)
	if !ok {
		return nil, apperr.Validationf(field, "expected string, got %T", value)
	}
	*dst = str
	return s, nil
}

func asInt(field string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64: // JSON numbers decode as float64
		return int(v), nil
	}
	return 0, apperr.Validationf(field, "expected number, got %T", value)
}

func asStringSlice(field string, value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, apperr.Validationf(field, "expected string items, got %T", e)
			}
			items = append(items, s)
		}
		return items, nil
	}
	return nil, apperr.Validationf(field, "expected list of strings, got %T", value)
}

// sectionEnvelope is the wire form of a section: a flat record with a type
// discriminator and the union of every variant's fields. Decoding rejects
// unknown types and fields outside the declared variant's set.
type sectionEnvelope struct {
	ID         string      `json:"id"`
	Type       SectionType `json:"type"`
	Text       string      `json:"text,omitempty"`
	Title      string      `json:"title,omitempty"`
	Level      int         `json:"level,omitempty"`
	URL        string      `json:"url,omitempty"`
	Caption    string      `json:"caption,omitempty"`
	AltText    string      `json:"altText,omitempty"`
	PreviewURL string      `json:"previewUrl,omitempty"`
	VideoURL   string      `json:"videoUrl,omitempty"`
	Items      []string    `json:"items,omitempty"`
	Language   string      `json:"language,omitempty"`
	Code       string      `json:"code,omitempty"`
}

func (s Paragraph) toEnvelope() sectionEnvelope {
	return sectionEnvelope{ID: s.ID, Type: SectionParagraph, Text: s.Text}
}

func (s Subtopic) toEnvelope() sectionEnvelope {
	return sectionEnvelope{ID: s.ID, Type: SectionSubtopic, Title: s.Title, Level: s.Level}
}

func (s Image) toEnvelope() sectionEnvelope {
	return sectionEnvelope{
		ID: s.ID, Type: SectionImage,
		URL: s.URL, Caption: s.Caption, AltText: s.AltText, PreviewURL: s.PreviewURL,
	}
}

func (s YoutubeEmbed) toEnvelope() sectionEnvelope {
	return sectionEnvelope{ID: s.ID, Type: SectionYoutubeEmbed, VideoURL: s.VideoURL, Caption: s.Caption}
}

func (s BulletList) toEnvelope() sectionEnvelope {
	return sectionEnvelope{ID: s.ID, Type: SectionBulletList, Items: s.Items}
}

func (s CodeSnippet) toEnvelope() sectionEnvelope {
	return sectionEnvelope{ID: s.ID, Type: SectionCodeSnippet, Language: s.Language, Code: s.Code}
}

// setFields returns the names of the variant-specific fields carrying a value.
func (e sectionEnvelope) setFields() []string {
	var fields []string
	add := func(name string, set bool) {
		if set {
			fields = append(fields, name)
		}
	}
	add("text", e.Text != "")
	add("title", e.Title != "")
	add("level", e.Level != 0)
	add("url", e.URL != "")
	add("caption", e.Caption != "")
	add("altText", e.AltText != "")
	add("previewUrl", e.PreviewURL != "")
	add("videoUrl", e.VideoURL != "")
	add("items", e.Items != nil)
	add("language", e.Language != "")
	add("code", e.Code != "")
	return fields
}

var sectionFields = map[SectionType][]string{
	SectionParagraph:    {"text"},
	SectionSubtopic:     {"title", "level"},
	SectionImage:        {"url", "caption", "altText", "previewUrl"},
	SectionYoutubeEmbed: {"videoUrl", "caption"},
	SectionBulletList:   {"items"},
	SectionCodeSnippet:  {"language", "code"},
}

func (e sectionEnvelope) checkStrayFields() error {
	allowed := sectionFields[e.Type]
	for _, f := range e.setFields() {
		ok := false
		for _, a := range allowed {
			if f == a {
				ok = true
				break
			}
		}
		if !ok {
			return apperr.Validationf(f, "not a valid field for %s section", string(e.Type))
		}
	}
	return nil
}

func (e sectionEnvelope) toSection() (ContentSection, error) {
	if err := e.checkStrayFields(); err != nil {
		return nil, err
	}
	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}
	switch e.Type {
	case SectionParagraph:
		return Paragraph{ID: id, Text: e.Text}, nil
	case SectionSubtopic:
		level := e.Level
		if level == 0 {
			level = 2
		}
		return Subtopic{ID: id, Title: e.Title, Level: level}, nil
	case SectionImage:
		return Image{ID: id, URL: e.URL, Caption: e.Caption, AltText: e.AltText, PreviewURL: e.PreviewURL}, nil
	case SectionYoutubeEmbed:
		return YoutubeEmbed{ID: id, VideoURL: e.VideoURL, Caption: e.Caption}, nil
	case SectionBulletList:
		return BulletList{ID: id, Items: e.Items}, nil
	case SectionCodeSnippet:
		return CodeSnippet{ID: id, Language: e.Language, Code: e.Code}, nil
	}
	return nil, apperr.Validationf("type", "unrecognized section type %q", string(e.Type))
}

// SectionList is the ordered section sequence of a post. Its JSON form is the
// flat envelope records the store and the API exchange; order is preserved
// exactly across encode/decode.
type SectionList []ContentSection

func (l SectionList) MarshalJSON() ([]byte, error) {
	envelopes := make([]sectionEnvelope, len(l))
	for i, s := range l {
		envelopes[i] = s.toEnvelope()
	}
	return json.Marshal(envelopes)
}

func (l *SectionList) UnmarshalJSON(data []byte) error {
	var envelopes []sectionEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return fmt.Errorf("decoding content sections: %w", err)
	}
	sections := make(SectionList, 0, len(envelopes))
	for _, e := range envelopes {
		s, err := e.toSection()
		if err != nil {
			return err
		}
		sections = append(sections, s)
	}
	*l = sections
	return nil
}

// Validate checks every section in the list.
func (l SectionList) Validate() error {
	for i, s := range l {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("section %d: %w", i, err)
		}
	}
	return nil
}

// IDs returns the section identifiers in sequence order.
func (l SectionList) IDs() []string {
	ids := make([]string, len(l))
	for i, s := range l {
		ids[i] = s.SectionID()
	}
	return ids
}
