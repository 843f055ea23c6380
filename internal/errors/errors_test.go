package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnipdocError_ErrorString(t *testing.T) {
	err := New(CategoryParse, SeverityError, "unterminated code fence")
	require.Equal(t, "parse (error): unterminated code fence", err.Error())

	wrapped := Wrap(fmt.Errorf("yaml: line 2: mapping values"), CategoryParse, SeverityError, "malformed front-matter")
	require.Contains(t, wrapped.Error(), "malformed front-matter")
	require.Contains(t, wrapped.Error(), "mapping values")
}

func TestSnipdocError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, CategoryFileSystem, SeverityError, "write page")
	require.ErrorIs(t, err, cause)
}

func TestSnipdocError_WithContext(t *testing.T) {
	err := RenderError("duplicate output path").
		WithContext("path", "guides/hooks.html")
	require.Equal(t, "guides/hooks.html", err.Context["path"])
}

func TestIsCategory(t *testing.T) {
	require.True(t, IsCategory(ParseError("x"), CategoryParse))
	require.False(t, IsCategory(ParseError("x"), CategoryRender))
	require.False(t, IsCategory(errors.New("plain"), CategoryParse))
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, ExitOK},
		{"parse", ParseError("bad fence"), ExitParseOrRender},
		{"render", RenderError("collision"), ExitParseOrRender},
		{"validation", ValidationError("strict failures"), ExitStrictValidation},
		{"config", ConfigError("unknown flag"), ExitInvalidArguments},
		{"cancelled", CancelledError("operator abort"), ExitOK},
		{"plain", errors.New("anything"), ExitParseOrRender},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.code, adapter.ExitCodeFor(tc.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	terse := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)

	err := Wrap(errors.New("underlying"), CategoryRender, SeverityFatal, "stage rename failed")
	require.Equal(t, "render error: stage rename failed", terse.FormatError(err))
	require.Contains(t, verbose.FormatError(err), "underlying")
}
