package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/dokuref/internal/locate"
)

func TestLoadMissingIsZero(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
	assert.Equal(t, "python3", cfg.PythonBin())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	body := `title: SconePy Reference Manual
reservedPrefix: _
python: /usr/bin/python3.9
searchDirs:
  - /extra/lib
replaceSearchDirs: true
logLevel: debug
jobs: 4
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dokuref.yaml"), []byte(body), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "SconePy Reference Manual", cfg.Title)
	assert.Equal(t, "_", cfg.ReservedPrefix)
	assert.Equal(t, "/usr/bin/python3.9", cfg.PythonBin())
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, locate.Config{Dirs: []string{"/extra/lib"}, Replace: true}, cfg.Locate())
}

func TestLoadPrefersYml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dokuref.yml"), []byte("title: a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dokuref.yaml"), []byte("title: b\n"), 0o644))
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.Title)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dokuref.yml"), []byte("jobs: [1\n"), 0o644))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DOKUREF_PYTHON":    "py",
		"DOKUREF_LOG_LEVEL": "warn",
		"DOKUREF_TITLE":     "T",
		"DOKUREF_JOBS":      "2",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := &Config{Python: "file", Title: "file"}
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, &Config{Python: "py", LogLevel: "warn", Title: "T", Jobs: 2}, cfg)

	env["DOKUREF_JOBS"] = "many"
	assert.Error(t, cfg.ApplyEnv(lookup))
}
