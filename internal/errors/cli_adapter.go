package errors

import (
	"errors"
	"fmt"
	"log/slog"
)

// Exit codes form part of the CLI contract and are asserted by integration
// tests; change them only with a matching docs update.
const (
	ExitOK               = 0
	ExitParseOrRender    = 1
	ExitStrictValidation = 2
	ExitInvalidArguments = 3
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the snipdoc CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}

	var se *SnipdocError
	if errors.As(err, &se) {
		return a.exitCodeFromSnipdoc(se)
	}

	return ExitParseOrRender
}

func (a *CLIErrorAdapter) exitCodeFromSnipdoc(err *SnipdocError) int {
	switch err.Category {
	case CategoryParse, CategoryRender:
		return ExitParseOrRender
	case CategoryValidation:
		return ExitStrictValidation
	case CategoryConfig:
		return ExitInvalidArguments
	case CategoryCancelled:
		// Cancellation is reported, not treated as failure.
		return ExitOK
	default:
		return ExitParseOrRender
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var se *SnipdocError
	if errors.As(err, &se) {
		if a.verbose {
			return se.Error()
		}
		return fmt.Sprintf("%s error: %s", se.Category, se.Message)
	}

	return fmt.Sprintf("Error: %v", err)
}

// LogError emits the error through the adapter's logger with category context.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}
	a.logger.Error("command failed",
		slog.String("category", string(GetCategory(err))),
		slog.String("error", err.Error()))
}
