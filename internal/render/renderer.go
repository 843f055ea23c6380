// Package render composes parsed documents into a navigable HTML page tree.
//
// Rendering is pure and idempotent: identical input produces byte-identical
// output. All filesystem effects go through WriteSite, which stages the full
// tree and publishes it atomically.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"git.home.luguber.info/inful/snipdoc/internal/docmodel"
	serrors "git.home.luguber.info/inful/snipdoc/internal/errors"
)

// Page is one rendered output page.
type Page struct {
	DocPath  string
	Slug     string
	Title    string
	Sections []string
	HTML     []byte
}

// Renderer renders documents to HTML pages.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with syntax highlighting keyed by fence language
// tags. Highlighting emits CSS classes (not inline colors) so output stays
// stable across chroma style tweaks.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
					highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				),
			),
		),
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.CSSPath}}">
</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`))

// RenderDocuments renders every document to exactly one page. A slug
// collision between two documents is a render error; nothing may be written
// in that case, so collisions are detected before any output exists.
func (r *Renderer) RenderDocuments(docs []*docmodel.Document) ([]Page, error) {
	bySlug := make(map[string]string, len(docs))
	pages := make([]Page, 0, len(docs))

	for _, doc := range docs {
		slug := Slugify(doc.Path)
		if prev, exists := bySlug[slug]; exists {
			return nil, serrors.RenderError(
				fmt.Sprintf("documents %q and %q both render to %q", prev, doc.Path, slug)).
				WithContext("slug", slug)
		}
		bySlug[slug] = doc.Path

		page, err := r.renderPage(doc, slug)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })
	return pages, nil
}

func (r *Renderer) renderPage(doc *docmodel.Document, slug string) (Page, error) {
	var body bytes.Buffer
	if err := r.md.Convert(doc.Body, &body); err != nil {
		return Page{}, serrors.WrapRender(err, "convert markdown").WithContext("path", doc.Path)
	}

	var out bytes.Buffer
	err := pageTemplate.Execute(&out, struct {
		Title   string
		CSSPath string
		Body    template.HTML
	}{
		Title:   doc.Title(),
		CSSPath: relAssetPath(slug) + "assets/chroma.css",
		Body:    template.HTML(body.String()),
	})
	if err != nil {
		return Page{}, serrors.WrapRender(err, "execute page template").WithContext("path", doc.Path)
	}

	sections, err := SectionHeadings(out.Bytes())
	if err != nil {
		return Page{}, serrors.WrapRender(err, "scan rendered page").WithContext("path", doc.Path)
	}

	return Page{
		DocPath:  doc.Path,
		Slug:     slug,
		Title:    doc.Title(),
		Sections: sections,
		HTML:     out.Bytes(),
	}, nil
}

// relAssetPath returns the ../ prefix needed to reach the site root from a
// slug's directory.
func relAssetPath(slug string) string {
	depth := 0
	for _, r := range slug {
		if r == '/' {
			depth++
		}
	}
	prefix := ""
	for i := 0; i < depth; i++ {
		prefix += "../"
	}
	return prefix
}

// HighlightCSS returns the stylesheet backing the highlighting classes.
func HighlightCSS() ([]byte, error) {
	style := styles.Get("github")
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return nil, fmt.Errorf("write chroma stylesheet: %w", err)
	}
	return buf.Bytes(), nil
}
