package validate

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// checkShell parses the snippet as bash. Parsing only; the command is never
// run.
func checkShell(code string) (Status, []string) {
	p := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := p.Parse(strings.NewReader(code), "snippet.sh"); err != nil {
		return StatusFail, []string{err.Error()}
	}
	return StatusPass, nil
}
