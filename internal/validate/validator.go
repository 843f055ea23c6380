// Package validate syntax-checks extracted snippets without ever executing
// them. Snippets are untrusted third-party example code; every strategy in
// this package is parse/compile only.
package validate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/snipdoc/internal/logfields"
	"git.home.luguber.info/inful/snipdoc/internal/snippet"
)

// Status is the outcome of validating one snippet.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

// Diagnostics used for skip statuses. These strings are part of the report
// format consumed by CI tooling.
const (
	DiagUnresolvedDependency = "unresolved dependency"
	DiagCancelled            = "cancelled"
)

// Result maps one snippet identity to its validation outcome.
type Result struct {
	DocPath     string   `json:"path"`
	StartLine   int      `json:"start_line"`
	EndLine     int      `json:"end_line"`
	Language    string   `json:"language"`
	Status      Status   `json:"status"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// Key returns the snippet identity this result belongs to.
func (r Result) Key() string {
	return fmt.Sprintf("%s:%d-%d", r.DocPath, r.StartLine, r.EndLine)
}

// Validator dispatches snippets to per-language syntax checkers. Validation
// of one snippet is independent of all others; a failure never aborts
// siblings.
type Validator struct {
	cache *Cache
}

// Option configures a Validator.
type Option func(*Validator)

// WithCache enables persistent result caching keyed by content hash.
func WithCache(c *Cache) Option {
	return func(v *Validator) { v.cache = c }
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks a single snippet and returns its Result. A cancelled
// context yields a skipped result, never an error: cancellation is reported,
// not failed.
func (v *Validator) Validate(ctx context.Context, sn snippet.Snippet) Result {
	res := Result{
		DocPath:   sn.DocPath,
		StartLine: sn.StartLine,
		EndLine:   sn.EndLine,
		Language:  sn.Language.String(),
	}

	if ctx.Err() != nil {
		res.Status = StatusSkipped
		res.Diagnostics = []string{DiagCancelled}
		return res
	}

	hash := contentHash(sn.Code)
	if v.cache != nil {
		if cached, ok, err := v.cache.Get(ctx, hash, sn.Language.String()); err != nil {
			slog.Warn("validation cache read failed", logfields.Error(err))
		} else if ok {
			res.Status = cached.Status
			res.Diagnostics = cached.Diagnostics
			return res
		}
	}

	res.Status, res.Diagnostics = check(sn)

	if v.cache != nil && res.Status != StatusSkipped {
		if err := v.cache.Put(ctx, hash, sn.Language.String(), res.Status, res.Diagnostics); err != nil {
			slog.Warn("validation cache write failed", logfields.Error(err))
		}
	}
	return res
}

// check selects the syntax strategy for the snippet's language.
func check(sn snippet.Snippet) (Status, []string) {
	switch sn.Language {
	case snippet.LangGo:
		return checkGo(sn.Code)
	case snippet.LangJavaScript:
		return checkJavaScript(sn.Code)
	case snippet.LangJSON:
		return checkJSON(sn.Code)
	case snippet.LangYAML:
		return checkYAML(sn.Code)
	case snippet.LangShell:
		return checkShell(sn.Code)
	case snippet.LangTypeScript, snippet.LangJSX, snippet.LangTSX:
		// Recognized languages with no offline syntax checker available.
		return StatusSkipped, []string{fmt.Sprintf("no offline syntax checker for %s", sn.Language)}
	default:
		return StatusSkipped, []string{fmt.Sprintf("unrecognized language tag %q", sn.Tag)}
	}
}

func contentHash(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
