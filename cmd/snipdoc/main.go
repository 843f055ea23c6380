package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	serrors "git.home.luguber.info/inful/snipdoc/internal/errors"
	"git.home.luguber.info/inful/snipdoc/internal/version"
)

var cli struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Build BuildCmd `cmd:"" help:"Build the documentation site from a directory of documents"`
	Watch WatchCmd `cmd:"" help:"Build once, then rebuild whenever input documents change"`
}

func main() {
	parser, err := kong.New(&cli,
		kong.Name("snipdoc"),
		kong.Description("Static documentation-site generator with embedded snippet validation."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	if err != nil {
		panic(err)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "snipdoc: %v\n", err)
		os.Exit(serrors.ExitInvalidArguments)
	}

	logLevel := slog.LevelInfo
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	kctx.BindTo(ctx, (*context.Context)(nil))

	adapter := serrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
	if err := kctx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}
