package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	raw, body, had, bodyLine, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, raw)
	require.Equal(t, input, body)
	require.Equal(t, 1, bodyLine)
}

func TestSplit_YAMLFrontmatter_SplitsRawAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hooks\n---\n# Title\n")

	raw, body, had, bodyLine, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hooks\n"), raw)
	require.Equal(t, []byte("# Title\n"), body)
	require.Equal(t, 4, bodyLine)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\ntitle: Hooks\n# Title\n")

	_, _, had, _, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF(t *testing.T) {
	input := []byte("---\r\ntitle: Hooks\r\n---\r\n# Title\r\n")

	raw, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Hooks\r\n"), raw)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	raw, body, had, bodyLine, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, raw)
	require.Equal(t, []byte("# Title\n"), body)
	require.Equal(t, 3, bodyLine)
}

func TestDecode_KnownAndExtraFields(t *testing.T) {
	meta, err := Decode([]byte("title: Custom Hooks\ndescription: Reusable logic\ntags:\n  - react\n  - hooks\ndraft: true\nauthor: sergio\n"))
	require.NoError(t, err)
	require.Equal(t, "Custom Hooks", meta.Title)
	require.Equal(t, "Reusable logic", meta.Description)
	require.Equal(t, []string{"react", "hooks"}, meta.Tags)
	require.True(t, meta.Draft)
	require.Equal(t, "sergio", meta.Extra["author"])
}

func TestDecode_MalformedYAML_ReturnsError(t *testing.T) {
	_, err := Decode([]byte("title: [unclosed\n"))
	require.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	meta, err := Decode(nil)
	require.NoError(t, err)
	require.Empty(t, meta.Title)
}
