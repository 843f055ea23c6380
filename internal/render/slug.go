package render

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify maps a document path (relative, slash-separated, with extension)
// to its output page path. The mapping is deterministic; distinct inputs may
// collide (e.g. "Intro.md" and "intro.mdx"), which the renderer detects
// before writing anything.
func Slugify(docPath string) string {
	base := docPath
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}

	parts := strings.Split(base, "/")
	for i, part := range parts {
		parts[i] = slugifySegment(part)
	}
	return strings.Join(parts, "/") + ".html"
}

func slugifySegment(s string) string {
	if flat, _, err := transform.String(deaccent, s); err == nil {
		s = flat
	}
	s = strings.ToLower(s)

	var sb strings.Builder
	prevDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && sb.Len() > 0 {
				sb.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
