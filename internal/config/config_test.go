package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MEIBOOKS_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Contains(t, cfg.Database.Path, "meibooks.db")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database]\npath = \"/tmp/custom.db\"\n"), 0o644))
	t.Setenv("MEIBOOKS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.db", cfg.Database.Path)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("MEIBOOKS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.Database.Path = "/tmp/saved.db"
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/saved.db", got.Database.Path)
}
