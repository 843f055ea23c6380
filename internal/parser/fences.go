package parser

import (
	"bytes"
	"strings"
)

// scanUnterminatedFence pre-scans the body for a fenced code block that is
// never closed. CommonMark silently closes such a fence at end of input;
// for documentation sources that is almost always an authoring mistake, so
// it is reported as a structural error instead.
//
// Returns the 1-based body line of the offending opener.
func scanUnterminatedFence(body []byte) (line int, open bool) {
	var (
		fenceChar byte
		fenceLen  int
		openLine  int
	)

	for i, raw := range bytes.Split(body, []byte("\n")) {
		stripped := stripPrefixMarkers(string(raw))

		ch, n := fenceMarker(stripped)
		if n < 3 {
			continue
		}

		if fenceChar == 0 {
			// Backtick openers may carry an info string; tilde fences too.
			fenceChar = ch
			fenceLen = n
			openLine = i + 1
			continue
		}

		// Inside a fence only a matching closer counts; anything else is
		// literal content.
		rest := strings.TrimSpace(stripped[n:])
		if ch == fenceChar && n >= fenceLen && rest == "" {
			fenceChar = 0
		}
	}

	if fenceChar != 0 {
		return openLine, true
	}
	return 0, false
}

// stripPrefixMarkers removes leading indentation and blockquote markers so
// fences inside quotes and list items are tracked too.
func stripPrefixMarkers(line string) string {
	for {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, ">") {
			line = trimmed[1:]
			continue
		}
		return trimmed
	}
}

// fenceMarker returns the fence character and run length when the line
// starts with a backtick or tilde run.
func fenceMarker(line string) (byte, int) {
	if line == "" {
		return 0, 0
	}
	ch := line[0]
	if ch != '`' && ch != '~' {
		return 0, 0
	}
	n := 0
	for n < len(line) && line[n] == ch {
		n++
	}
	return ch, n
}
