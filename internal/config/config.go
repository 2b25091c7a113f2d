// Package config resolves runtime settings from defaults, an optional
// YAML file and GHOSTPROTOCOL_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/ghostprotocol/internal/progress"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GHOSTPROTOCOL_"

// MaxSlots bounds the configurable slot count.
const MaxSlots = 10

// Config holds all runtime settings.
type Config struct {
	// DataDir holds save slots and the journal. Empty means the XDG default.
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`

	Slots       int    `yaml:"slots" env:"SLOTS"`
	DefaultSlot int    `yaml:"default_slot" env:"SLOT"`
	PlayerName  string `yaml:"player_name" env:"PLAYER_NAME"`

	// AutoSave writes the slot after completions, skips, failures and
	// game over.
	AutoSave bool `yaml:"auto_save" env:"AUTO_SAVE"`

	// Journal records events in a SQLite database next to the saves.
	Journal bool `yaml:"journal" env:"JOURNAL"`

	// DifficultyScaling: "adaptive", "static" or "custom". Applied to new
	// games only; a loaded save keeps its own preference.
	DifficultyScaling string `yaml:"difficulty_scaling" env:"DIFFICULTY_SCALING"`

	MaxAttempts int    `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Slots:             3,
		DefaultSlot:       1,
		PlayerName:        progress.DefaultPlayerName,
		AutoSave:          true,
		Journal:           true,
		DifficultyScaling: string(progress.ScalingAdaptive),
		MaxAttempts:       progress.DefaultMaxAttempts,
		LogLevel:          "warn",
	}
}

// Load builds the effective configuration. An empty path means the default
// config file, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.mergeYAML(data); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overlays set GHOSTPROTOCOL_* variables. Unset variables leave
// the current value alone.
func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []string

	if c.Slots < 1 || c.Slots > MaxSlots {
		errs = append(errs, fmt.Sprintf("slots must be in [1, %d], got %d", MaxSlots, c.Slots))
	}
	if c.DefaultSlot < 1 || c.DefaultSlot > max(c.Slots, 1) {
		errs = append(errs, fmt.Sprintf("default_slot must be in [1, %d], got %d", max(c.Slots, 1), c.DefaultSlot))
	}
	if strings.TrimSpace(c.PlayerName) == "" {
		errs = append(errs, "player_name must not be empty")
	}
	if _, ok := progress.ParseScaling(c.DifficultyScaling); !ok {
		errs = append(errs, fmt.Sprintf("unknown difficulty_scaling %q (want adaptive, static or custom)", c.DifficultyScaling))
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Sprintf("max_attempts must be >= 1, got %d", c.MaxAttempts))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Scaling returns the parsed difficulty preference. Call after Validate.
func (c Config) Scaling() progress.Scaling {
	s, _ := progress.ParseScaling(c.DifficultyScaling)
	return s
}

// DefaultConfigPath resolves the config file location:
// 1. $XDG_CONFIG_HOME/ghostprotocol/config.yaml
// 2. ~/.config/ghostprotocol/config.yaml
func DefaultConfigPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "ghostprotocol", "config.yaml"), nil
}

// DefaultDataDir resolves the data directory:
// 1. $XDG_DATA_HOME/ghostprotocol
// 2. ~/.local/share/ghostprotocol
//
// GHOSTPROTOCOL_DATA_DIR and --data-dir take precedence over both.
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "ghostprotocol"), nil
}
