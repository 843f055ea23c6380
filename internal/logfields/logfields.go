package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyLanguage   = "language"
	KeyStatus     = "status"
	KeySnippets   = "snippets"
	KeyPages      = "pages"
	KeyWorker     = "worker"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Language(lang string) slog.Attr  { return slog.String(KeyLanguage, lang) }
func Status(s string) slog.Attr       { return slog.String(KeyStatus, s) }
func Snippets(n int) slog.Attr        { return slog.Int(KeySnippets, n) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Worker(id int) slog.Attr         { return slog.Int(KeyWorker, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
