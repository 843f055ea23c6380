package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/snipdoc/internal/docmodel"
	serrors "git.home.luguber.info/inful/snipdoc/internal/errors"
)

const hooksDoc = `---
title: useFetch
tags:
  - react
---
# useFetch

A data fetching hook.

` + "```js\nconst x = 1;\nconst y = 2;\n```" + `

> [!NOTE] Works offline.

## Usage

Call it from a component.
`

func TestParse_FullDocument(t *testing.T) {
	doc, err := Parse("hooks/use-fetch.md", []byte(hooksDoc))
	require.NoError(t, err)
	require.Equal(t, "useFetch", doc.Meta.Title)
	require.Equal(t, []string{"react"}, doc.Meta.Tags)
	require.Equal(t, 6, doc.BodyLine)

	kinds := make([]docmodel.BlockKind, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		kinds = append(kinds, b.Kind)
	}
	require.Equal(t, []docmodel.BlockKind{
		docmodel.BlockHeading,
		docmodel.BlockParagraph,
		docmodel.BlockCode,
		docmodel.BlockCallout,
		docmodel.BlockHeading,
		docmodel.BlockParagraph,
	}, kinds)
}

func TestParse_CodeBlockLinesAndTag(t *testing.T) {
	doc, err := Parse("hooks/use-fetch.md", []byte(hooksDoc))
	require.NoError(t, err)

	code := doc.CodeBlocks()
	require.Len(t, code, 1)
	require.Equal(t, "js", code[0].Tag)
	require.Equal(t, "const x = 1;\nconst y = 2;\n", code[0].Code)
	// Opening fence on line 10 of the original file, closer on line 13.
	require.Equal(t, 10, code[0].StartLine)
	require.Equal(t, 13, code[0].EndLine)
}

func TestParse_HeadingLines(t *testing.T) {
	doc, err := Parse("doc.md", []byte("# One\n\ntext\n\n## Two\n"))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Blocks[0].StartLine)
	require.Equal(t, "One", doc.Blocks[0].Text)
	require.Equal(t, 5, doc.Blocks[2].StartLine)
}

func TestParse_DeterministicBlocks(t *testing.T) {
	a, err := Parse("doc.md", []byte(hooksDoc))
	require.NoError(t, err)
	b, err := Parse("doc.md", []byte(hooksDoc))
	require.NoError(t, err)
	require.Equal(t, a.Blocks, b.Blocks)
}

func TestParse_MalformedFrontmatter_ReturnsParseError(t *testing.T) {
	_, err := Parse("doc.md", []byte("---\ntitle: [oops\n---\nbody\n"))
	require.Error(t, err)
	require.True(t, serrors.IsCategory(err, serrors.CategoryParse))
}

func TestParse_UnterminatedFrontmatter_ReturnsParseError(t *testing.T) {
	_, err := Parse("doc.md", []byte("---\ntitle: x\nbody without closing\n"))
	require.Error(t, err)
	require.True(t, serrors.IsCategory(err, serrors.CategoryParse))
}

func TestParse_UnterminatedFence_ReturnsParseError(t *testing.T) {
	_, err := Parse("doc.md", []byte("# T\n\n```js\nconst x = 1;\n"))
	require.Error(t, err)
	require.True(t, serrors.IsCategory(err, serrors.CategoryParse))
	require.Contains(t, err.Error(), "line 3")
}

func TestParse_InvalidHeadingNesting_ReturnsParseError(t *testing.T) {
	_, err := Parse("doc.md", []byte("# One\n\n### Three\n"))
	require.Error(t, err)
	require.True(t, serrors.IsCategory(err, serrors.CategoryParse))
	require.Contains(t, err.Error(), "heading nesting")
}

func TestParse_HeadingNesting_DeeperByOneIsFine(t *testing.T) {
	_, err := Parse("doc.md", []byte("# One\n\n## Two\n\n### Three\n\n# Back\n"))
	require.NoError(t, err)
}

func TestParse_CalloutDetection(t *testing.T) {
	doc, err := Parse("doc.md", []byte("> [!WARNING] Do not run snippets.\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	require.Equal(t, docmodel.BlockCallout, doc.Blocks[0].Kind)
	require.Equal(t, "WARNING", doc.Blocks[0].CalloutKind)
	require.Equal(t, "Do not run snippets.", doc.Blocks[0].Text)
}

func TestParse_PlainBlockquote_IsNotCallout(t *testing.T) {
	doc, err := Parse("doc.md", []byte("> just a quote\n"))
	require.NoError(t, err)
	for _, b := range doc.Blocks {
		require.NotEqual(t, docmodel.BlockCallout, b.Kind)
	}
}

func TestParse_TaglessFence(t *testing.T) {
	doc, err := Parse("doc.md", []byte("```\nplain\n```\n"))
	require.NoError(t, err)
	code := doc.CodeBlocks()
	require.Len(t, code, 1)
	require.Equal(t, "", code[0].Tag)
}

func TestScanUnterminatedFence(t *testing.T) {
	cases := []struct {
		name string
		body string
		open bool
		line int
	}{
		{"balanced", "```\nx\n```\n", false, 0},
		{"unterminated", "text\n```js\nx\n", true, 2},
		{"tilde balanced", "~~~\nx\n~~~\n", false, 0},
		{"nested in quote", "> ```\n> x\n", true, 1},
		{"longer closer", "````\nx\n`````\n", false, 0},
		{"shorter closer is content", "````\nx\n```\n", true, 1},
		{"no fence", "plain text\n", false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line, open := scanUnterminatedFence([]byte(tc.body))
			require.Equal(t, tc.open, open)
			if tc.open {
				require.Equal(t, tc.line, line)
			}
		})
	}
}
