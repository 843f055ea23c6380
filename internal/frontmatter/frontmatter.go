// Package frontmatter splits and decodes the YAML header block of a document.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front-matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("front-matter start delimiter found but closing delimiter is missing")

// Meta holds the decoded front-matter fields snipdoc understands. Unknown
// keys are preserved in Extra so renders stay faithful to the source.
type Meta struct {
	Title       string
	Description string
	Tags        []string
	Draft       bool
	Extra       map[string]any
}

// Style captures the newline shape needed for stable line accounting.
type Style struct {
	Newline string
}

// Split separates YAML front-matter (`---` delimited) from the body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input. bodyLine is the 1-based line number of the first body line.
func Split(content []byte) (raw []byte, body []byte, had bool, bodyLine int, err error) {
	style := detectStyle(content)
	nl := style.Newline

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, 1, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		// Empty front-matter block.
		return []byte{}, content[start+len(open):], true, 3, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, 0, ErrMissingClosingDelimiter
	}

	raw = content[start : start+idx+len(nl)]
	body = content[start+idx+len(closeSeq):]
	bodyLine = 3 + bytes.Count(raw, []byte(nl))
	return raw, body, true, bodyLine, nil
}

// Decode parses raw YAML front-matter (without delimiters) into Meta.
func Decode(raw []byte) (Meta, error) {
	meta := Meta{Extra: map[string]any{}}
	if len(raw) == 0 {
		return meta, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return Meta{}, fmt.Errorf("decode front-matter: %w", err)
	}

	for key, value := range fields {
		switch key {
		case "title":
			if s, ok := value.(string); ok {
				meta.Title = s
			}
		case "description":
			if s, ok := value.(string); ok {
				meta.Description = s
			}
		case "draft":
			if b, ok := value.(bool); ok {
				meta.Draft = b
			}
		case "tags":
			if list, ok := value.([]any); ok {
				for _, item := range list {
					if s, ok := item.(string); ok {
						meta.Tags = append(meta.Tags, s)
					}
				}
			}
		default:
			meta.Extra[key] = value
		}
	}
	return meta, nil
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			newline = "\r\n"
			break
		}
		if content[i] == '\n' {
			break
		}
	}
	return Style{Newline: newline}
}
