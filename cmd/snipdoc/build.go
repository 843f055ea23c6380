package main

import (
	"context"
	"time"

	"git.home.luguber.info/inful/snipdoc/internal/build"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Root        string `arg:"" help:"Directory of documents to build"`
	Strict      bool   `help:"Promote snippet validation failures to a build failure"`
	Out         string `short:"o" help:"Output directory for the rendered site" default:"./dist"`
	Timeout     int    `help:"Grace period in seconds for in-flight validations after cancellation" default:"5"`
	Concurrency int    `short:"j" help:"Parallel document pipelines (default: number of CPUs)"`
	Cache       string `help:"SQLite file caching validation results across runs"`
}

func (b *BuildCmd) Run(ctx context.Context) error {
	o, err := build.New(build.Options{
		Root:         b.Root,
		OutDir:       b.Out,
		Strict:       b.Strict,
		GraceTimeout: time.Duration(b.Timeout) * time.Second,
		Concurrency:  b.Concurrency,
		CachePath:    b.Cache,
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
