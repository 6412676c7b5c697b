package devenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	path, err := ResolvePath("out/prompts.tsv")
	require.NoError(t, err)
	require.Equal(t, "out/prompts.tsv", path)

	root, err := GetWorkspaceRoot()
	require.NoError(t, err)

	path, err = ResolvePath(filepath.Join("<dev_state>", "results.db"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "dev", ".state", "results.db"), path)

	info, err := os.Stat(filepath.Join(root, "dev", ".state"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
