package build

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	serrors "git.home.luguber.info/inful/snipdoc/internal/errors"
)

// documentExtensions are the input file extensions snipdoc ingests.
var documentExtensions = map[string]bool{
	".md":  true,
	".mdx": true,
}

// Discover walks root and returns the relative slash-separated paths of all
// document files. filepath.WalkDir visits entries in lexical order, which
// gives the deterministic ordering reproducible builds need.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, serrors.ConfigError("input root does not exist").WithContext("root", root)
	}
	if !info.IsDir() {
		return nil, serrors.ConfigError("input root is not a directory").WithContext("root", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !documentExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, serrors.WrapFS(err, "walk input root")
	}
	return paths, nil
}
