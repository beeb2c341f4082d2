package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	"github.com/jaminalder/codex-reversi/internal/app"
	"github.com/jaminalder/codex-reversi/internal/domain"
	"github.com/jaminalder/codex-reversi/internal/strategy"
)

var (
	cfgFile = "reversi/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type BoardConfig struct {
	// Shape is "hex" or "square".
	Shape string `json:"shape"`
	// Size is the hexagon side length or the square width.
	Size int `json:"size"`
}

type Config struct {
	Board    BoardConfig `json:"board"`
	Black    string      `json:"black"`
	White    string      `json:"white"`
	Workers  int         `json:"workers"`
	LogLevel string      `json:"log_level"`
}

// InitConfig returns the defaults overlaid with the user's config file, if
// one exists in the XDG config directories.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads an explicit config file on top of the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	shape, err := parseShape(c.Board.Shape)
	if err != nil {
		return err
	}
	if _, err := domain.NewGeometry(shape, c.Board.Size); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Workers < 0 {
		return &InvalidConfig{"workers must not be negative"}
	}
	for _, seat := range []string{c.Black, c.White} {
		if seat == app.Human {
			continue
		}
		if _, err := strategy.ByName(seat, c.Workers); err != nil {
			return &InvalidConfig{fmt.Sprintf("seat %q must be %s or one of %s", seat, app.Human, strings.Join(strategy.Names(), ", "))}
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	return nil
}

// Match converts the config into a match request.
func (c *Config) Match() (app.MatchConfig, error) {
	shape, err := parseShape(c.Board.Shape)
	if err != nil {
		return app.MatchConfig{}, err
	}
	return app.MatchConfig{
		Shape:   shape,
		Size:    c.Board.Size,
		Black:   c.Black,
		White:   c.White,
		Workers: c.Workers,
	}, nil
}

// Level returns the configured zerolog level.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func parseShape(s string) (domain.Shape, error) {
	switch strings.ToLower(s) {
	case "hex", "hexagon":
		return domain.Hexagon, nil
	case "square":
		return domain.Square, nil
	default:
		return 0, &InvalidConfig{fmt.Sprintf("unknown board shape %q", s)}
	}
}

func saveCfgFile(filePath string, a interface{}, perm os.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
