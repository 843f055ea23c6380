package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/snipdoc/internal/validate"
)

func TestReport_Counts(t *testing.T) {
	r := New("./docs")
	require.NotEmpty(t, r.BuildID)

	r.AddDocument("a.md", DocumentReport{
		Status: DocRendered,
		Snippets: []validate.Result{
			{Status: validate.StatusPass},
			{Status: validate.StatusFail, Diagnostics: []string{"unbalanced braces"}},
			{Status: validate.StatusSkipped, Diagnostics: []string{validate.DiagUnresolvedDependency}},
		},
		SkippedBlocks: 2,
	})
	r.AddDocument("b.md", DocumentReport{Status: DocFailed, ParseError: "unterminated code fence"})

	require.Equal(t, 1, r.Counts.Passed)
	require.Equal(t, 1, r.Counts.Failed)
	require.Equal(t, 1, r.Counts.Skipped)
	require.Equal(t, 2, r.Counts.SkippedBlocks)
	require.Equal(t, 1, r.Counts.ParseErrors)
	require.True(t, r.HasParseErrors())
	require.True(t, r.HasValidationFailures())
}

func TestReport_EncodeRoundTrip(t *testing.T) {
	r := New("./docs")
	r.AddDocument("a.md", DocumentReport{Status: DocRendered})
	r.Finish(1)

	raw, err := r.Encode()
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, r.BuildID, decoded.BuildID)
	require.Equal(t, 1, decoded.Pages)
	require.Contains(t, decoded.Documents, "a.md")
}

func TestReport_EmptyRun(t *testing.T) {
	r := New("./docs")
	r.Finish(0)
	require.False(t, r.HasParseErrors())
	require.False(t, r.HasValidationFailures())
	require.Zero(t, r.Counts.Passed)
}
