package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"github.com/lilydev/bg3mm/internal/storage"
)

// Environment variables that override file settings.
const (
	EnvConfigPath   = "BG3MM_CONFIG"
	EnvInstancesDir = "BG3MM_INSTANCES_DIR"
)

// appID names the per-user data folder.
const appID = "com.lilydev.bg3mm"

// Config holds the bg3mm configuration
type Config struct {
	GameDir      string `toml:"game_dir,omitempty" json:"game_dir,omitempty"` // optional game install directory
	InstancesDir string `toml:"instances_dir" json:"instances_dir"`           // where instance directories and the index live
}

// Default returns the default configuration.
// InstancesDir is left empty if the user config dir cannot be determined.
func Default() Config {
	cfg := Config{}
	if base, err := os.UserConfigDir(); err == nil {
		cfg.InstancesDir = filepath.Join(base, appID, "instances")
	}
	return cfg
}

// Path returns the config file location: $BG3MM_CONFIG if set,
// otherwise <user config dir>/bg3mm/config.toml
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return expandPath(p)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "bg3mm", "config.toml"), nil
}

// ValidatePath checks that the path is absolute, "~" or starts with "~/".
// Returns error if path is relative (like "." or "..") or names another
// user's home ("~user"), which is not expanded.
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// normalize validates and expands both directory settings.
func (c *Config) normalize() error {
	if err := ValidatePath(c.InstancesDir, "instances_dir"); err != nil {
		return err
	}
	if err := ValidatePath(c.GameDir, "game_dir"); err != nil {
		return err
	}

	var err error
	if c.InstancesDir, err = expandPath(c.InstancesDir); err != nil {
		return fmt.Errorf("expand instances_dir: %w", err)
	}
	if c.GameDir, err = expandPath(c.GameDir); err != nil {
		return fmt.Errorf("expand game_dir: %w", err)
	}
	return nil
}

// Load reads config from path.
// Returns Default() if the file doesn't exist (no error).
// Returns error only if the file exists but is invalid.
// Empty settings fall back to their defaults.
func Load(fs afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return Default(), err
	}

	if cfg.InstancesDir == "" {
		cfg.InstancesDir = Default().InstancesDir
	}

	return cfg, nil
}

// ApplyEnv overrides file settings with environment variables.
func ApplyEnv(cfg Config) (Config, error) {
	dir := os.Getenv(EnvInstancesDir)
	if dir == "" {
		return cfg, nil
	}

	if err := ValidatePath(dir, EnvInstancesDir); err != nil {
		return cfg, err
	}
	expanded, err := expandPath(dir)
	if err != nil {
		return cfg, fmt.Errorf("expand %s: %w", EnvInstancesDir, err)
	}
	cfg.InstancesDir = expanded
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes cfg to path atomically.
func Save(fs afero.Fs, path string, cfg Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := storage.WriteAtomic(fs, path, data); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Template returns a commented config file for cfg, used by "config init".
func Template(cfg Config) string {
	gameDir := "# game_dir = \"~/.steam/steam/steamapps/common/Baldurs Gate 3\""
	if cfg.GameDir != "" {
		gameDir = fmt.Sprintf("game_dir = %q", cfg.GameDir)
	}

	return fmt.Sprintf(`# bg3mm configuration

# Directory holding one folder per instance and instances.index.json.
# Must be absolute or start with ~. Overridden by $%s.
instances_dir = %q

# Game install directory (optional)
%s
`, EnvInstancesDir, cfg.InstancesDir, gameDir)
}
