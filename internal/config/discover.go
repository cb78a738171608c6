package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that overrides discovery. It may
// point at a file or at a directory holding config.toml.
const EnvConfig = "MARQUEE_CONFIG"

// DefaultPath returns $XDG_CONFIG_HOME/marquee/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "marquee", "config.toml")
}

// SearchPaths lists the candidates Discover checks, in order.
func SearchPaths() []string {
	return []string{
		"./marquee.toml",
		"./config.toml",
		DefaultPath(),
		"/etc/marquee/config.toml",
	}
}

// Discover returns the config file to use: MARQUEE_CONFIG when set, else the
// first of SearchPaths that exists.
func Discover() (string, error) {
	if env := os.Getenv(EnvConfig); env != "" {
		info, err := os.Stat(env)
		if err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, env, err)
		}
		if !info.IsDir() {
			return env, nil
		}
		p := filepath.Join(env, "config.toml")
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, env, err)
		}
		return p, nil
	}

	paths := SearchPaths()
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("config not found, checked: %s", strings.Join(paths, ", "))
}
