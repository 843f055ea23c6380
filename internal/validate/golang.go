package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// importSpecRE matches quoted import paths in both single-line and grouped
// import forms.
var importSpecRE = regexp.MustCompile(`(?m)^\s*(?:import\s+)?(?:[._\w]+\s+)?"([^"]+)"\s*$`)

// checkGo compiles the snippet with the yaegi interpreter, stdlib symbols
// only. Compile never runs snippet code.
//
// Imports outside the standard library cannot be resolved offline, so
// snippets referencing them are skipped rather than failed.
func checkGo(code string) (Status, []string) {
	if dep, ok := externalGoImport(code); ok {
		return StatusSkipped, []string{DiagUnresolvedDependency, fmt.Sprintf("import %q is not resolvable offline", dep)}
	}

	src := code
	if !strings.Contains(src, "package ") {
		// Doc snippets are frequently bare fragments; yaegi accepts
		// statement-level source once a package clause exists.
		src = "package main\n\n" + src
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return StatusFail, []string{err.Error()}
	}
	if _, err := i.Compile(src); err != nil {
		return StatusFail, []string{err.Error()}
	}
	return StatusPass, nil
}

// externalGoImport returns the first import path that looks like an external
// module (first path segment contains a dot, e.g. github.com/...).
func externalGoImport(code string) (string, bool) {
	inImport := false
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inImport = true
			continue
		case inImport && trimmed == ")":
			inImport = false
			continue
		case !inImport && !strings.HasPrefix(trimmed, "import"):
			continue
		}

		m := importSpecRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		path := m[1]
		if first, _, _ := strings.Cut(path, "/"); strings.Contains(first, ".") {
			return path, true
		}
	}
	return "", false
}
