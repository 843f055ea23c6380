package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"git.home.luguber.info/inful/snipdoc/internal/report"
	"git.home.luguber.info/inful/snipdoc/internal/validate"
)

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// printSummary writes the human-readable build outcome to stdout; machine
// consumers read build-report.json instead.
func printSummary(rep *report.Report) {
	fmt.Printf("Build %s: %d page(s) rendered in %dms\n", rep.BuildID, rep.Pages, rep.DurationMS)

	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	skip := color.New(color.FgYellow).SprintFunc()

	fmt.Printf("  snippets: %s, %s, %s (%d unrecognized block(s) not validated)\n",
		pass(fmt.Sprintf("%d passed", rep.Counts.Passed)),
		fail(fmt.Sprintf("%d failed", rep.Counts.Failed)),
		skip(fmt.Sprintf("%d skipped", rep.Counts.Skipped)),
		rep.Counts.SkippedBlocks)

	paths := make([]string, 0, len(rep.Documents))
	for path := range rep.Documents {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	if rep.Counts.ParseErrors > 0 {
		fmt.Printf("  %s\n", fail(fmt.Sprintf("%d document(s) failed to parse", rep.Counts.ParseErrors)))
		for _, path := range paths {
			if dr := rep.Documents[path]; dr.Status == report.DocFailed {
				fmt.Printf("    %s: %s\n", path, dr.ParseError)
			}
		}
	}

	for _, path := range paths {
		for _, sn := range rep.Documents[path].Snippets {
			if sn.Status != validate.StatusFail {
				continue
			}
			for _, diag := range sn.Diagnostics {
				fmt.Printf("  %s %s:%d-%d %s\n", fail("FAIL"), path, sn.StartLine, sn.EndLine, diag)
			}
		}
	}
}
