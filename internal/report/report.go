// Package report aggregates the outcomes of one build run into the
// machine-readable build report.
package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/snipdoc/internal/validate"
)

// DocumentStatus is the terminal state of one document's pipeline.
type DocumentStatus string

const (
	DocRendered  DocumentStatus = "rendered"
	DocFailed    DocumentStatus = "failed"
	DocCancelled DocumentStatus = "cancelled"
)

// DocumentReport records one document's outcome.
type DocumentReport struct {
	Status     DocumentStatus    `json:"status"`
	ParseError string            `json:"parse_error,omitempty"`
	Snippets   []validate.Result `json:"snippets,omitempty"`
	// SkippedBlocks counts code blocks whose tag was missing or not in the
	// recognized set; they never reach validation.
	SkippedBlocks int `json:"skipped_blocks,omitempty"`
}

// Counts summarizes snippet and document outcomes.
type Counts struct {
	Passed        int `json:"passed"`
	Failed        int `json:"failed"`
	Skipped       int `json:"skipped"`
	SkippedBlocks int `json:"skipped_blocks"`
	ParseErrors   int `json:"parse_errors"`
}

// Report is the terminal artifact of one orchestration run.
type Report struct {
	BuildID    string                    `json:"build_id"`
	Root       string                    `json:"root"`
	Documents  map[string]DocumentReport `json:"documents"`
	Pages      int                       `json:"pages"`
	Counts     Counts                    `json:"counts"`
	StartedAt  time.Time                 `json:"started_at"`
	FinishedAt time.Time                 `json:"finished_at"`
	DurationMS int64                     `json:"duration_ms"`
}

// New creates an empty report for one run over root.
func New(root string) *Report {
	return &Report{
		BuildID:   uuid.NewString(),
		Root:      root,
		Documents: map[string]DocumentReport{},
		StartedAt: time.Now().UTC(),
	}
}

// AddDocument records one document outcome. Callers must serialize access;
// the orchestrator funnels all writes through a single collector goroutine.
func (r *Report) AddDocument(path string, dr DocumentReport) {
	r.Documents[path] = dr

	if dr.Status == DocFailed {
		r.Counts.ParseErrors++
	}
	r.Counts.SkippedBlocks += dr.SkippedBlocks
	for _, sn := range dr.Snippets {
		switch sn.Status {
		case validate.StatusPass:
			r.Counts.Passed++
		case validate.StatusFail:
			r.Counts.Failed++
		case validate.StatusSkipped:
			r.Counts.Skipped++
		}
	}
}

// Finish stamps the end of the run.
func (r *Report) Finish(pages int) {
	r.Pages = pages
	r.FinishedAt = time.Now().UTC()
	r.DurationMS = r.FinishedAt.Sub(r.StartedAt).Milliseconds()
}

// HasParseErrors reports whether any document failed structurally.
func (r *Report) HasParseErrors() bool {
	return r.Counts.ParseErrors > 0
}

// HasValidationFailures reports whether any snippet failed validation.
func (r *Report) HasValidationFailures() bool {
	return r.Counts.Failed > 0
}

// Encode serializes the report as indented JSON. Map keys marshal sorted,
// so encoding is deterministic for a given report.
func (r *Report) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode build report: %w", err)
	}
	return append(out, '\n'), nil
}
