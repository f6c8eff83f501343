// Package config loads the terminal tools' TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings the terminal tools read from their config
// file. The library itself takes no configuration.
type Config struct {
	BaseURL      string
	SnapshotPath string
	WindowHours  int
}

const (
	defaultConfigPath   = "~/.config/floodnet/config.toml"
	defaultSnapshotPath = "~/.local/share/floodnet/snapshot.db"
	defaultWindowHours  = 24
)

// Load locates and parses the config file, falling back to defaults when it
// is missing. An empty path means the default location.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		SnapshotPath: mustExpand(defaultSnapshotPath),
		WindowHours:  defaultWindowHours,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL      string `toml:"base_url"`
		SnapshotPath string `toml:"snapshot_path"`
		WindowHours  int    `toml:"window_hours"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(raw.BaseURL)

	if path := strings.TrimSpace(raw.SnapshotPath); path != "" {
		cfg.SnapshotPath = mustExpand(path)
	}
	if raw.WindowHours > 0 {
		cfg.WindowHours = raw.WindowHours
	}

	return cfg, nil
}

// Window returns the depth-query window as a duration.
func (c Config) Window() time.Duration {
	return time.Duration(c.WindowHours) * time.Hour
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
