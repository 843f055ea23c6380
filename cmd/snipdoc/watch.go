package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/snipdoc/internal/build"
	"git.home.luguber.info/inful/snipdoc/internal/logfields"
	"git.home.luguber.info/inful/snipdoc/internal/metrics"
	"git.home.luguber.info/inful/snipdoc/internal/watch"
)

// WatchCmd implements the 'watch' command: an initial build followed by
// debounced rebuilds on filesystem changes.
type WatchCmd struct {
	Root        string `arg:"" help:"Directory of documents to watch"`
	Out         string `short:"o" help:"Output directory for the rendered site" default:"./dist"`
	Timeout     int    `help:"Grace period in seconds for in-flight validations after cancellation" default:"5"`
	Concurrency int    `short:"j" help:"Parallel document pipelines (default: number of CPUs)"`
	Cache       string `help:"SQLite file caching validation results across runs"`
	MetricsAddr string `help:"Expose Prometheus metrics on this address (e.g. :9090)"`
}

func (w *WatchCmd) Run(ctx context.Context) error {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if w.MetricsAddr != "" {
		prom := metrics.NewPrometheusRecorder(nil)
		recorder = prom

		mux := http.NewServeMux()
		mux.Handle("/metrics", prom.Handler())
		server := &http.Server{Addr: w.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", logfields.Error(err))
			}
		}()
		defer server.Close()
		slog.Info("serving metrics", slog.String("addr", w.MetricsAddr))
	}

	rebuild := func(ctx context.Context) error {
		o, err := build.New(build.Options{
			Root:         w.Root,
			OutDir:       w.Out,
			GraceTimeout: time.Duration(w.Timeout) * time.Second,
			Concurrency:  w.Concurrency,
			CachePath:    w.Cache,
			Recorder:     recorder,
		})
		if err != nil {
			return err
		}
		defer o.Close()

		rep, err := o.Run(ctx)
		if rep != nil {
			printSummary(rep)
		}
		return err
	}

	// Watch mode keeps serving after a failing build; failures are visible
	// in the summary and the report.
	if err := rebuild(ctx); err != nil {
		slog.Warn("initial build failed", logfields.Error(err))
	}

	err := watch.New(w.Root, watch.DefaultConfig(), rebuild).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
