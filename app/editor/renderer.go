package editor

import (
	"iter"

	"starlog/app/models"
)

// Node is one element of the display tree produced from a section sequence.
type Node interface{ node() }

// ParagraphNode renders running text.
type ParagraphNode struct {
	Text string
}

// HeadingNode renders a subtopic heading (h2/h3).
type HeadingNode struct {
	Level int
	Text  string
}

// ImageNode renders an image figure. Caption and Alt are empty when the
// section carried none.
type ImageNode struct {
	Src     string
	Alt     string
	Caption string
}

// VideoNode renders an embedded video player.
type VideoNode struct {
	Src     string
	Caption string
}

// ListNode renders a bullet list.
type ListNode struct {
	Items []string
}

// CodeNode renders a highlighted code block.
type CodeNode struct {
	Language string
	Code     string
}

func (ParagraphNode) node() {}
func (HeadingNode) node()   {}
func (ImageNode) node()     {}
func (VideoNode) node()     {}
func (ListNode) node()      {}
func (CodeNode) node()      {}

// Render produces the display nodes for a finalized section sequence, one per
// section, in sequence order. The returned iterator is lazy and restartable
// and never mutates the input. Rendering is lenient: missing optional fields
// drop the corresponding display element, and a section that maps to nothing
// (an image with no source, a type the renderer does not know) is skipped
// rather than being an error.
func Render(sections models.SectionList) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, s := range sections {
			n := renderSection(s)
			if n == nil {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// RenderAll collects the full display tree into a slice.
func RenderAll(sections models.SectionList) []Node {
	var nodes []Node
	for n := range Render(sections) {
		nodes = append(nodes, n)
	}
	return nodes
}

func renderSection(section models.ContentSection) Node {
	switch s := section.(type) {
	case models.Paragraph:
		return ParagraphNode{Text: s.Text}
	case models.Subtopic:
		level := s.Level
		if level != 2 && level != 3 {
			level = 2
		}
		return HeadingNode{Level: level, Text: s.Title}
	case models.Image:
		src := s.PreviewURL
		if src == "" {
			src = s.URL
		}
		if src == "" {
			return nil
		}
		return ImageNode{Src: src, Alt: s.AltText, Caption: s.Caption}
	case models.YoutubeEmbed:
		if s.VideoURL == "" {
			return nil
		}
		return VideoNode{Src: NormalizeYoutubeURL(s.VideoURL), Caption: s.Caption}
	case models.BulletList:
		return ListNode{Items: s.Items}
	case models.CodeSnippet:
		return CodeNode{Language: s.Language, Code: s.Code}
	}
	return nil
}
