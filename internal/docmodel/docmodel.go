// Package docmodel defines the in-memory document tree produced by parsing.
//
// A Document owns an ordered sequence of Blocks for the duration of one
// build; nothing in the model is mutated after parsing.
package docmodel

import (
	"fmt"

	"git.home.luguber.info/inful/snipdoc/internal/frontmatter"
)

// BlockKind discriminates the Block variants.
type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockCode
	BlockCallout
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockCode:
		return "code"
	case BlockCallout:
		return "callout"
	default:
		return "unknown"
	}
}

// Block is one ordered content element of a Document. Kind selects which of
// the variant fields are meaningful; line numbers are 1-based and refer to
// the original file, front-matter included.
type Block struct {
	Kind      BlockKind
	StartLine int
	EndLine   int

	// Heading
	Level int

	// Heading, Paragraph, Callout
	Text string

	// Code
	Tag  string // verbatim language tag, "" when the fence had none
	Code string

	// Callout
	CalloutKind string // e.g. NOTE, WARNING
}

// Document is one parsed input file.
type Document struct {
	// Path is the document path relative to the input root, slash-separated.
	Path string

	Meta   frontmatter.Meta
	Blocks []Block

	// BodyLine is the 1-based line of the first body line in the original
	// file (after any front-matter block).
	BodyLine int

	// Body is the markdown body with front-matter removed.
	Body []byte
}

// Title returns the front-matter title, falling back to the first heading.
func (d *Document) Title() string {
	if d.Meta.Title != "" {
		return d.Meta.Title
	}
	for _, b := range d.Blocks {
		if b.Kind == BlockHeading {
			return b.Text
		}
	}
	return d.Path
}

// CodeBlocks returns the document's code blocks in document order.
func (d *Document) CodeBlocks() []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Kind == BlockCode {
			out = append(out, b)
		}
	}
	return out
}

// BlockRef identifies a block by document path plus line range. It is the
// identity used for validation results and report entries.
func BlockRef(path string, start, end int) string {
	return fmt.Sprintf("%s:%d-%d", path, start, end)
}
