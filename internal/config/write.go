package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default_config.toml
var defaultConfig string

// WriteDefault writes the example config, with ${TMDB_API_KEY} left for
// substitution, creating parent directories as needed.
func WriteDefault(path string) error {
	return writeFile(path, func(f *os.File) error {
		_, err := f.WriteString(defaultConfig)
		return err
	})
}

// Write encodes the config as TOML. Resolved values, including the API key,
// are written as is, so the file is created owner-readable only.
func (c *Config) Write(path string) error {
	return writeFile(path, func(f *os.File) error {
		return toml.NewEncoder(f).Encode(c)
	})
}

// writeFile replaces path via a temporary file in the same directory.
func writeFile(path string, fill func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
