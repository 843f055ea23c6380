package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/snipdoc/internal/docmodel"
	serrors "git.home.luguber.info/inful/snipdoc/internal/errors"
	"git.home.luguber.info/inful/snipdoc/internal/frontmatter"
)

func doc(path, title, body string) *docmodel.Document {
	return &docmodel.Document{
		Path: path,
		Meta: frontmatter.Meta{Title: title},
		Body: []byte(body),
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"README.md":            "readme.html",
		"guides/Use Fetch.mdx": "guides/use-fetch.html",
		"guides/café.md":       "guides/cafe.html",
		"a_b.md":               "a-b.html",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestRenderDocuments_OnePagePerDocument(t *testing.T) {
	pages, err := New().RenderDocuments([]*docmodel.Document{
		doc("b.md", "B", "# B\n"),
		doc("a.md", "A", "# A\n"),
	})
	require.NoError(t, err)
	require.Len(t, pages, 2)
	// Sorted by slug for deterministic output.
	require.Equal(t, "a.html", pages[0].Slug)
	require.Equal(t, "b.html", pages[1].Slug)
}

func TestRenderDocuments_SlugCollision_IsRenderError(t *testing.T) {
	_, err := New().RenderDocuments([]*docmodel.Document{
		doc("guides/Intro.md", "A", "# A\n"),
		doc("guides/intro.mdx", "B", "# B\n"),
	})
	require.Error(t, err)
	require.True(t, serrors.IsCategory(err, serrors.CategoryRender))
}

func TestRenderDocuments_Idempotent(t *testing.T) {
	input := []*docmodel.Document{
		doc("guides/hooks.md", "Hooks", "# Hooks\n\n```js\nconst a = 1;\n```\n"),
	}
	r := New()
	first, err := r.RenderDocuments(input)
	require.NoError(t, err)
	second, err := r.RenderDocuments(input)
	require.NoError(t, err)
	require.Equal(t, first[0].HTML, second[0].HTML)
}

func TestRenderPage_HighlightsCode(t *testing.T) {
	pages, err := New().RenderDocuments([]*docmodel.Document{
		doc("hooks.md", "Hooks", "```js\nconst a = 1;\n```\n"),
	})
	require.NoError(t, err)
	require.Contains(t, string(pages[0].HTML), "chroma")
}

func TestRenderPage_WellFormedHTML(t *testing.T) {
	pages, err := New().RenderDocuments([]*docmodel.Document{
		doc("hooks.md", "Hooks", "# Hooks\n\n## Usage\n\ntext\n"),
	})
	require.NoError(t, err)

	root, err := html.Parse(bytes.NewReader(pages[0].HTML))
	require.NoError(t, err)
	require.NotNil(t, root)
	require.Equal(t, []string{"Usage"}, pages[0].Sections)
}

func TestWriteSite_AtomicPublish(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "dist")

	pages, err := New().RenderDocuments([]*docmodel.Document{
		doc("guides/hooks.md", "Hooks", "# Hooks\n"),
	})
	require.NoError(t, err)

	err = WriteSite(pages, map[string][]byte{"build-report.json": []byte("{}\n")}, out)
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(out, "index.html"))
	require.FileExists(t, filepath.Join(out, "guides", "hooks.html"))
	require.FileExists(t, filepath.Join(out, "assets", "chroma.css"))
	require.FileExists(t, filepath.Join(out, "build-report.json"))

	// No stray staging directories remain.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteSite_ReplacesPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "dist")
	require.NoError(t, os.MkdirAll(out, 0o755))
	stale := filepath.Join(out, "stale.html")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	pages, err := New().RenderDocuments([]*docmodel.Document{doc("a.md", "A", "# A\n")})
	require.NoError(t, err)
	require.NoError(t, WriteSite(pages, nil, out))

	require.NoFileExists(t, stale)
	require.FileExists(t, filepath.Join(out, "a.html"))
}

func TestRelAssetPath(t *testing.T) {
	require.Equal(t, "", relAssetPath("a.html"))
	require.Equal(t, "../", relAssetPath("guides/a.html"))
	require.Equal(t, "../../", relAssetPath("guides/react/a.html"))
}
