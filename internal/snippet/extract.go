package snippet

import (
	"iter"

	"git.home.luguber.info/inful/snipdoc/internal/docmodel"
)

// Snippet is a read-only view of one validation-eligible code block plus
// its enclosing document path. It is derived during a single build pass and
// never mutated.
type Snippet struct {
	DocPath   string
	Language  Language
	Tag       string // verbatim fence tag
	Code      string
	StartLine int
	EndLine   int
}

// Key returns the snippet identity (path plus line range) used for
// validation results.
func (s Snippet) Key() string {
	return docmodel.BlockRef(s.DocPath, s.StartLine, s.EndLine)
}

// Extract returns a lazy, restartable sequence over the document's
// recognized code blocks, in document order. Blocks with unrecognized or
// missing tags are not yielded; Skipped counts them for reporting.
func Extract(doc *docmodel.Document) iter.Seq[Snippet] {
	return func(yield func(Snippet) bool) {
		for _, b := range doc.Blocks {
			if b.Kind != docmodel.BlockCode {
				continue
			}
			lang := Classify(b.Tag)
			if !lang.Recognized() {
				continue
			}
			sn := Snippet{
				DocPath:   doc.Path,
				Language:  lang,
				Tag:       b.Tag,
				Code:      b.Code,
				StartLine: b.StartLine,
				EndLine:   b.EndLine,
			}
			if !yield(sn) {
				return
			}
		}
	}
}

// Skipped counts the document's code blocks whose tag is missing or not in
// the recognized set.
func Skipped(doc *docmodel.Document) int {
	n := 0
	for _, b := range doc.Blocks {
		if b.Kind == docmodel.BlockCode && !Classify(b.Tag).Recognized() {
			n++
		}
	}
	return n
}
