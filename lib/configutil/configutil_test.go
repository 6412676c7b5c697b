package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testDatabase struct {
	File string `json:"file" env:"FILE"`
}

type testConfig struct {
	Name     string       `json:"name" env:"NAME"`
	Start    int          `json:"start" env:"START"`
	End      int          `json:"end" env:"END"`
	Database testDatabase `json:"database" envPrefix:"DATABASE_"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0644)
	require.NoError(t, err)
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		name: "base",
		start: 100,
		end: 700,
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ end: 120 }`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "base", Start: 100, End: 120}, config)

	_, err = ReadConfig[testConfig](filepath.Join(dir, "missing.json5"))
	require.True(t, os.IsNotExist(err))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ start: 200 }`)

	t.Setenv("TEST_END", "250")
	t.Setenv("TEST_DATABASE_FILE", "results.db")

	defaults := testConfig{Name: "default", Start: 100, End: 700}
	config, err := Load(filepath.Join(dir, "app.json5"), "TEST_", defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{
		Name:     "default",
		Start:    200,
		End:      250,
		Database: testDatabase{File: "results.db"},
	}, config)

	// missing files fall back to the defaults
	config, err = Load(filepath.Join(dir, "none.json5"), "UNSET_", defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, config)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ start: `)
	_, err := Load(filepath.Join(dir, "app.json5"), "TEST_", testConfig{})
	require.Error(t, err)
}

func TestDatabase(t *testing.T) {
	require.False(t, Database{}.Enabled())
	require.True(t, Database{File: ":memory:"}.Enabled())

	db, err := Database{File: ":memory:"}.OpenDB()
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())

	_, err = Database{}.OpenDB()
	require.Error(t, err)
}
