// Package snippet extracts validation-eligible code blocks from documents.
package snippet

import "strings"

// Language is the closed set of recognized snippet languages. Free-form
// fence tags map onto it via Classify; anything else is LangOther and is
// never validated.
type Language int

const (
	LangOther Language = iota
	LangGo
	LangJavaScript
	LangTypeScript
	LangJSX
	LangTSX
	LangJSON
	LangYAML
	LangShell
)

var languageNames = map[Language]string{
	LangOther:      "other",
	LangGo:         "go",
	LangJavaScript: "javascript",
	LangTypeScript: "typescript",
	LangJSX:        "jsx",
	LangTSX:        "tsx",
	LangJSON:       "json",
	LangYAML:       "yaml",
	LangShell:      "shell",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "other"
}

// Recognized reports whether snippets tagged with this language are
// extracted for validation.
func (l Language) Recognized() bool {
	return l != LangOther
}

// Classify maps a verbatim fence tag to a Language. Matching is
// case-insensitive and covers the aliases seen in real-world docs.
func Classify(tag string) Language {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "go", "golang":
		return LangGo
	case "js", "javascript", "mjs", "cjs":
		return LangJavaScript
	case "ts", "typescript":
		return LangTypeScript
	case "jsx":
		return LangJSX
	case "tsx":
		return LangTSX
	case "json", "jsonc":
		return LangJSON
	case "yaml", "yml":
		return LangYAML
	case "sh", "bash", "shell", "zsh":
		return LangShell
	default:
		return LangOther
	}
}
