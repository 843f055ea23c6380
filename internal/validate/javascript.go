package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja/parser"
)

var (
	jsImportRE  = regexp.MustCompile(`(?m)^\s*import\s+(?:[\w${},*\s]+\s+from\s+)?['"]([^'"]+)['"]`)
	jsRequireRE = regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`)
	jsExportRE  = regexp.MustCompile(`(?m)^(\s*)export\s+(default\s+)?`)
)

// checkJavaScript parses the snippet with goja's parser. Nothing is
// evaluated.
//
// Module syntax (import/export) references dependencies that cannot be
// resolved offline, so those snippets are skipped, mirroring the Go
// strategy.
func checkJavaScript(code string) (Status, []string) {
	if m := jsImportRE.FindStringSubmatch(code); m != nil {
		return StatusSkipped, []string{DiagUnresolvedDependency, fmt.Sprintf("module %q is not resolvable offline", m[1])}
	}
	if m := jsRequireRE.FindStringSubmatch(code); m != nil {
		return StatusSkipped, []string{DiagUnresolvedDependency, fmt.Sprintf("module %q is not resolvable offline", m[1])}
	}

	// Bare export markers are module plumbing, not syntax we need to judge;
	// strip them so the remainder parses as a script.
	src := jsExportRE.ReplaceAllString(code, "$1")

	if _, err := parser.ParseFile(nil, "snippet.js", src, 0); err != nil {
		return StatusFail, diagnosticsFromJS(err)
	}
	return StatusPass, nil
}

func diagnosticsFromJS(err error) []string {
	if list, ok := err.(parser.ErrorList); ok {
		out := make([]string, 0, len(list))
		for _, e := range list {
			out = append(out, e.Error())
		}
		if len(out) > 0 {
			return out
		}
	}
	msg := err.Error()
	// goja duplicates the filename in list errors; keep diagnostics terse.
	return []string{strings.TrimSpace(msg)}
}
