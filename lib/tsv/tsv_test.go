package tsv

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []string{"URL", "補足"}, [][]string{{"u", "a"}})
	require.NoError(t, err)

	// little endian BOM, then "URL" in UTF-16LE
	require.Equal(t, []byte{0xFF, 0xFE, 'U', 0, 'R', 0, 'L', 0, '\t', 0}, buf.Bytes()[:10])
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.csv")
	header := []string{"URL", "目的・ねらい", "補足"}
	rows := [][]string{
		{"https://example.com/1.html", "複数行\nの本文", ""},
		{"https://example.com/2.html", "tab\tand \"quotes\"", "補足"},
	}

	require.NoError(t, WriteFile(path, header, rows))

	gotHeader, gotRows, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, header, gotHeader)
	require.Equal(t, rows, gotRows)
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.csv")
	header := []string{"URL"}

	require.NoError(t, WriteFile(path, header, [][]string{{"a"}, {"b"}, {"c"}}))
	require.NoError(t, WriteFile(path, header, [][]string{{"d"}}))

	_, rows, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"d"}}, rows)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFileMissingDir(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"), nil, nil)
	require.Error(t, err)
}
