package render

import (
	"os"
	"path/filepath"

	serrors "git.home.luguber.info/inful/snipdoc/internal/errors"
)

// WriteSite writes the full page tree plus any extra files (e.g. the build
// report) under outDir. The tree is staged next to the destination and
// published with a rename, so a failed build leaves no partial output.
func WriteSite(pages []Page, extra map[string][]byte, outDir string) error {
	outAbs, err := filepath.Abs(outDir)
	if err != nil {
		return serrors.WrapFS(err, "resolve output directory")
	}

	parent := filepath.Dir(outAbs)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return serrors.WrapFS(err, "create output parent directory")
	}

	stage, err := os.MkdirTemp(parent, ".snipdoc-stage-*")
	if err != nil {
		return serrors.WrapFS(err, "create staging directory")
	}
	defer os.RemoveAll(stage)

	css, err := HighlightCSS()
	if err != nil {
		return serrors.WrapRender(err, "generate highlight stylesheet")
	}
	if err := writeFile(filepath.Join(stage, "assets", "chroma.css"), css); err != nil {
		return err
	}

	for _, page := range pages {
		if err := writeFile(filepath.Join(stage, filepath.FromSlash(page.Slug)), page.HTML); err != nil {
			return err
		}
	}

	index, err := RenderIndex(pages)
	if err != nil {
		return serrors.WrapRender(err, "render index page")
	}
	if err := writeFile(filepath.Join(stage, "index.html"), index); err != nil {
		return err
	}

	for name, content := range extra {
		if err := writeFile(filepath.Join(stage, name), content); err != nil {
			return err
		}
	}

	if err := os.RemoveAll(outAbs); err != nil {
		return serrors.WrapFS(err, "clear previous output")
	}
	if err := os.Rename(stage, outAbs); err != nil {
		return serrors.WrapFS(err, "publish staged output")
	}
	return nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return serrors.WrapFS(err, "create page directory")
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return serrors.WrapFS(err, "write page")
	}
	return nil
}
