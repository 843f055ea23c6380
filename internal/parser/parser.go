// Package parser turns raw document bytes into a docmodel.Document.
//
// Parsing is deterministic and side-effect free: the same input always
// produces the same Document. Structural problems (malformed front-matter,
// unterminated fences, invalid heading nesting) surface as parse-category
// errors and fail that document only.
package parser

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/snipdoc/internal/docmodel"
	serrors "git.home.luguber.info/inful/snipdoc/internal/errors"
	"git.home.luguber.info/inful/snipdoc/internal/frontmatter"
)

// Parse parses raw file content into a Document. path is the document path
// relative to the input root and is recorded verbatim.
func Parse(path string, content []byte) (*docmodel.Document, error) {
	raw, body, _, bodyLine, err := frontmatter.Split(content)
	if err != nil {
		return nil, serrors.WrapParse(err, "front-matter").WithContext("path", path)
	}

	meta, err := frontmatter.Decode(raw)
	if err != nil {
		return nil, serrors.WrapParse(err, "front-matter").WithContext("path", path)
	}

	if line, open := scanUnterminatedFence(body); open {
		return nil, serrors.ParseError(fmt.Sprintf("unterminated code fence opened at line %d", line+bodyLine-1)).
			WithContext("path", path)
	}

	lines := newLineIndex(content)
	bodyOffset := len(content) - len(body)

	blocks, err := walkBody(body, lines, bodyOffset)
	if err != nil {
		if se, ok := err.(*serrors.SnipdocError); ok {
			return nil, se.WithContext("path", path)
		}
		return nil, serrors.WrapParse(err, "parse body").WithContext("path", path)
	}

	return &docmodel.Document{
		Path:     path,
		Meta:     meta,
		Blocks:   blocks,
		BodyLine: bodyLine,
		Body:     body,
	}, nil
}

func walkBody(body []byte, lines *lineIndex, bodyOffset int) ([]docmodel.Block, error) {
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(body))

	var blocks []docmodel.Block
	prevHeading := 0

	walkErr := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Heading:
			start, end := nodeLineRange(node, lines, bodyOffset)
			if prevHeading != 0 && node.Level > prevHeading+1 {
				return gmast.WalkStop, serrors.ParseError(fmt.Sprintf(
					"invalid heading nesting at line %d: level %d follows level %d", start, node.Level, prevHeading))
			}
			prevHeading = node.Level
			blocks = append(blocks, docmodel.Block{
				Kind:      docmodel.BlockHeading,
				Level:     node.Level,
				Text:      flattenText(node, body),
				StartLine: start,
				EndLine:   end,
			})

		case *gmast.Paragraph:
			start, end := nodeLineRange(node, lines, bodyOffset)
			blocks = append(blocks, docmodel.Block{
				Kind:      docmodel.BlockParagraph,
				Text:      flattenText(node, body),
				StartLine: start,
				EndLine:   end,
			})
			return gmast.WalkSkipChildren, nil

		case *gmast.FencedCodeBlock:
			blocks = append(blocks, fencedBlock(node, body, lines, bodyOffset))
			return gmast.WalkSkipChildren, nil

		case *gmast.Blockquote:
			if kind, text, ok := calloutOf(node, body); ok {
				start, end := nodeLineRange(node, lines, bodyOffset)
				blocks = append(blocks, docmodel.Block{
					Kind:        docmodel.BlockCallout,
					CalloutKind: kind,
					Text:        text,
					StartLine:   start,
					EndLine:     end,
				})
				return gmast.WalkSkipChildren, nil
			}
		}
		return gmast.WalkContinue, nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return blocks, nil
}

func fencedBlock(node *gmast.FencedCodeBlock, body []byte, lines *lineIndex, bodyOffset int) docmodel.Block {
	var code bytes.Buffer
	segs := node.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		code.Write(seg.Value(body))
	}

	tag := ""
	if node.Info != nil {
		info := string(node.Info.Segment.Value(body))
		if fields := strings.Fields(info); len(fields) > 0 {
			tag = fields[0]
		}
	}

	// The AST does not carry the fence delimiter lines, only the content
	// segments; the opener sits one line above the first content line.
	start, end := 0, 0
	switch {
	case segs.Len() > 0:
		start = lines.lineAt(segs.At(0).Start+bodyOffset) - 1
		end = lines.lineAt(segs.At(segs.Len()-1).Stop-1+bodyOffset) + 1
	case node.Info != nil:
		start = lines.lineAt(node.Info.Segment.Start + bodyOffset)
		end = start + 1
	}

	return docmodel.Block{
		Kind:      docmodel.BlockCode,
		Tag:       tag,
		Code:      code.String(),
		StartLine: start,
		EndLine:   end,
	}
}

// calloutOf reports whether a blockquote is a callout of the form
// "> [!NOTE] ..." and returns its kind plus the remaining text.
func calloutOf(node *gmast.Blockquote, body []byte) (kind, text string, ok bool) {
	first := node.FirstChild()
	if first == nil {
		return "", "", false
	}
	content := flattenText(first, body)
	if !strings.HasPrefix(content, "[!") {
		return "", "", false
	}
	closing := strings.Index(content, "]")
	if closing < 3 {
		return "", "", false
	}
	kind = content[2:closing]
	for _, r := range kind {
		if r < 'A' || r > 'Z' {
			return "", "", false
		}
	}
	return kind, strings.TrimSpace(content[closing+1:]), true
}

// flattenText concatenates the raw text segments beneath a node.
func flattenText(n gmast.Node, source []byte) string {
	var sb strings.Builder
	_ = gmast.Walk(n, func(child gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if t, isText := child.(*gmast.Text); isText {
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		}
		return gmast.WalkContinue, nil
	})
	return sb.String()
}

func nodeLineRange(n gmast.Node, lines *lineIndex, bodyOffset int) (start, end int) {
	segs := n.Lines()
	if segs.Len() == 0 {
		return 0, 0
	}
	start = lines.lineAt(segs.At(0).Start + bodyOffset)
	end = lines.lineAt(segs.At(segs.Len()-1).Stop - 1 + bodyOffset)
	return start, end
}

// lineIndex maps byte offsets in the original file to 1-based line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(content []byte) *lineIndex {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (li *lineIndex) lineAt(offset int) int {
	if offset < 0 {
		return 1
	}
	return sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
}
