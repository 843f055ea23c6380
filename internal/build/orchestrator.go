// Package build coordinates the full pipeline: discover input files, run
// parse, extract and validate per document, then render once over the full
// set and publish atomically.
//
// Each document advances through Discovered, Parsed, Extracted, Validated
// and Rendered; a parse failure is the only early terminal state. Document
// pipelines are independent and fan out across workers; the report is the
// sole shared artifact and is aggregated by a single collector after the
// barrier.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/snipdoc/internal/docmodel"
	serrors "git.home.luguber.info/inful/snipdoc/internal/errors"
	"git.home.luguber.info/inful/snipdoc/internal/logfields"
	"git.home.luguber.info/inful/snipdoc/internal/metrics"
	"git.home.luguber.info/inful/snipdoc/internal/parser"
	"git.home.luguber.info/inful/snipdoc/internal/render"
	"git.home.luguber.info/inful/snipdoc/internal/report"
	"git.home.luguber.info/inful/snipdoc/internal/snippet"
	"git.home.luguber.info/inful/snipdoc/internal/validate"
)

// DocState names the stages of the per-document state machine. Used for
// stage logging and metrics labels.
type DocState string

const (
	StateDiscovered DocState = "discovered"
	StateParsed     DocState = "parsed"
	StateExtracted  DocState = "extracted"
	StateValidated  DocState = "validated"
	StateRendered   DocState = "rendered"
	StateFailed     DocState = "failed"
)

// DefaultGraceTimeout bounds how long in-flight validations may finish
// after a cancellation request.
const DefaultGraceTimeout = 5 * time.Second

// Options configures one Orchestrator.
type Options struct {
	Root         string
	OutDir       string
	Strict       bool
	GraceTimeout time.Duration
	Concurrency  int
	CachePath    string
	Recorder     metrics.Recorder
}

// Orchestrator drives the build pipeline.
type Orchestrator struct {
	opts      Options
	renderer  *render.Renderer
	validator *validate.Validator
	cache     *validate.Cache
	recorder  metrics.Recorder
}

// New creates an Orchestrator. Close must be called when a cache path was
// configured.
func New(opts Options) (*Orchestrator, error) {
	if opts.Root == "" {
		return nil, serrors.ConfigError("input root is required")
	}
	if opts.OutDir == "" {
		opts.OutDir = "./dist"
	}
	if opts.GraceTimeout <= 0 {
		opts.GraceTimeout = DefaultGraceTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	o := &Orchestrator{
		opts:     opts,
		renderer: render.New(),
		recorder: opts.Recorder,
	}

	var validatorOpts []validate.Option
	if opts.CachePath != "" {
		cache, err := validate.OpenCache(opts.CachePath)
		if err != nil {
			return nil, serrors.WrapFS(err, "open validation cache")
		}
		o.cache = cache
		validatorOpts = append(validatorOpts, validate.WithCache(cache))
	}
	o.validator = validate.New(validatorOpts...)
	return o, nil
}

// Close releases orchestrator resources.
func (o *Orchestrator) Close() error {
	if o.cache != nil {
		return o.cache.Close()
	}
	return nil
}

type docResult struct {
	path   string
	doc    *docmodel.Document // nil when parsing failed
	report report.DocumentReport
}

// Run executes one build. The returned report is always non-nil once
// discovery succeeds; the error carries the overall outcome (parse errors,
// strict validation failures, render errors).
func (o *Orchestrator) Run(ctx context.Context) (*report.Report, error) {
	buildStart := time.Now()

	lock := flock.New(lockPath(o.opts.OutDir))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, serrors.WrapFS(err, "acquire build lock")
	}
	if !locked {
		return nil, serrors.ConfigError("another build is already running for this output directory")
	}
	defer func() { _ = lock.Unlock() }()

	files, err := Discover(o.opts.Root)
	if err != nil {
		return nil, err
	}

	rep := report.New(o.opts.Root)
	slog.Info("starting build",
		logfields.BuildID(rep.BuildID),
		slog.String("root", o.opts.Root),
		slog.Int("documents", len(files)))

	o.recorder.SetDocumentConcurrency(o.opts.Concurrency)

	results := make(chan docResult, len(files))
	g := &errgroup.Group{}
	g.SetLimit(o.opts.Concurrency)

	for _, rel := range files {
		if ctx.Err() != nil {
			// Cancellation stops new work; documents never started are
			// reported as cancelled skips.
			results <- cancelledResult(rel)
			continue
		}
		g.Go(func() error {
			results <- o.processDocument(ctx, rel)
			return nil
		})
	}

	// Barrier: rendering needs every parse to have completed. The wait is
	// bounded once cancellation has been requested.
	if err := o.waitBounded(ctx, g); err != nil {
		return rep, err
	}
	close(results)

	var docs []*docmodel.Document
	for res := range results {
		rep.AddDocument(res.path, res.report)
		if res.doc != nil {
			docs = append(docs, res.doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })

	renderStart := time.Now()
	pages, err := o.renderer.RenderDocuments(docs)
	if err != nil {
		o.recorder.IncBuildOutcome("render_failed")
		return rep, err
	}
	o.recorder.ObserveStageDuration(string(StateRendered), time.Since(renderStart))

	rep.Finish(len(pages))
	encoded, err := rep.Encode()
	if err != nil {
		return rep, serrors.Wrap(err, serrors.CategoryInternal, serrors.SeverityFatal, "encode build report")
	}
	if err := render.WriteSite(pages, map[string][]byte{"build-report.json": encoded}, o.opts.OutDir); err != nil {
		o.recorder.IncBuildOutcome("render_failed")
		return rep, err
	}

	o.recorder.ObserveBuildDuration(time.Since(buildStart))
	slog.Info("build finished",
		logfields.BuildID(rep.BuildID),
		logfields.Pages(rep.Pages),
		slog.Int("snippets_failed", rep.Counts.Failed),
		slog.Int("parse_errors", rep.Counts.ParseErrors))

	return rep, o.outcome(ctx, rep)
}

func (o *Orchestrator) outcome(ctx context.Context, rep *report.Report) error {
	switch {
	case rep.HasParseErrors():
		o.recorder.IncBuildOutcome("parse_failed")
		return serrors.ParseError(fmt.Sprintf("%d document(s) failed to parse", rep.Counts.ParseErrors))
	case o.opts.Strict && rep.HasValidationFailures():
		o.recorder.IncBuildOutcome("strict_failed")
		return serrors.ValidationError(fmt.Sprintf("%d snippet(s) failed validation in strict mode", rep.Counts.Failed))
	case ctx.Err() != nil:
		o.recorder.IncBuildOutcome("cancelled")
		return serrors.CancelledError("build cancelled; pending validations recorded as skipped")
	default:
		o.recorder.IncBuildOutcome("success")
		return nil
	}
}

// processDocument runs the per-document pipeline: Parse, Extract, Validate.
func (o *Orchestrator) processDocument(ctx context.Context, rel string) docResult {
	slog.Debug("document state", logfields.Path(rel), logfields.Stage(string(StateDiscovered)))

	parseStart := time.Now()
	content, err := os.ReadFile(filepath.Join(o.opts.Root, filepath.FromSlash(rel)))
	if err != nil {
		return failedResult(rel, serrors.WrapFS(err, "read document"))
	}

	doc, err := parser.Parse(rel, content)
	o.recorder.ObserveStageDuration(string(StateParsed), time.Since(parseStart))
	if err != nil {
		slog.Warn("document failed to parse", logfields.Path(rel), logfields.Error(err))
		return failedResult(rel, err)
	}
	slog.Debug("document state", logfields.Path(rel), logfields.Stage(string(StateParsed)))

	validateStart := time.Now()
	var snippets []validate.Result
	for sn := range snippet.Extract(doc) {
		res := o.validator.Validate(ctx, sn)
		o.recorder.IncSnippetResult(res.Language, string(res.Status))
		snippets = append(snippets, res)
	}
	o.recorder.ObserveStageDuration(string(StateValidated), time.Since(validateStart))
	slog.Debug("document state", logfields.Path(rel), logfields.Stage(string(StateValidated)),
		logfields.Snippets(len(snippets)))

	return docResult{
		path: rel,
		doc:  doc,
		report: report.DocumentReport{
			Status:        report.DocRendered,
			Snippets:      snippets,
			SkippedBlocks: snippet.Skipped(doc),
		},
	}
}

// waitBounded waits for the worker group; once the parent context is done
// the wait is limited to the configured grace timeout.
func (o *Orchestrator) waitBounded(ctx context.Context, g *errgroup.Group) error {
	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
	}

	select {
	case <-done:
		return nil
	case <-time.After(o.opts.GraceTimeout):
		return serrors.CancelledError("in-flight validations did not finish within the grace timeout")
	}
}

func failedResult(rel string, err error) docResult {
	return docResult{
		path: rel,
		report: report.DocumentReport{
			Status:     report.DocFailed,
			ParseError: err.Error(),
		},
	}
}

func cancelledResult(rel string) docResult {
	return docResult{
		path: rel,
		report: report.DocumentReport{
			Status: report.DocCancelled,
		},
	}
}

func lockPath(outDir string) string {
	return filepath.Clean(outDir) + ".lock"
}
