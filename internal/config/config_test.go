package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/codex-reversi/internal/domain"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig
	require.NoError(t, cfg.Validate())
	m, err := cfg.Match()
	require.NoError(t, err)
	require.Equal(t, domain.Hexagon, m.Shape)
	require.Equal(t, 6, m.Size)
	require.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `{"board":{"shape":"square","size":8},"white":"human"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "square", cfg.Board.Shape)
	require.Equal(t, 8, cfg.Board.Size)
	require.Equal(t, "human", cfg.White)
	require.Equal(t, DefaultConfig.Black, cfg.Black)

	m, err := cfg.Match()
	require.NoError(t, err)
	require.Equal(t, domain.Square, m.Shape)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"shape":     func(c *Config) { c.Board.Shape = "triangle" },
		"hex size":  func(c *Config) { c.Board.Size = 2 },
		"seat":      func(c *Config) { c.Black = "wizard" },
		"workers":   func(c *Config) { c.Workers = -1 },
		"log level": func(c *Config) { c.LogLevel = "loud" },
		"odd square": func(c *Config) {
			c.Board.Shape = "square"
			c.Board.Size = 7
		},
	}
	for name, mutate := range cases {
		cfg := DefaultConfig
		mutate(&cfg)
		err := cfg.Validate()
		var invalid *InvalidConfig
		require.ErrorAs(t, err, &invalid, name)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := Load(writeFile(t, `{"board":`))
	var invalid *InvalidConfig
	require.ErrorAs(t, err, &invalid)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveThenInitConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	cfg, err := InitConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig, *cfg)

	cfg.White = "easy"
	cfg.LogLevel = "debug"
	require.NoError(t, cfg.Save())

	again, err := InitConfig()
	require.NoError(t, err)
	require.Equal(t, "easy", again.White)
	require.Equal(t, zerolog.DebugLevel, again.Level())
}
