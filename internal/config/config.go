// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/marquee/internal/playback"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig     `toml:"server"`
	Log      LogConfig        `toml:"log"`
	Database DatabaseConfig   `toml:"database"`
	TMDB     TMDBConfig       `toml:"tmdb"`
	Browse   BrowseConfig     `toml:"browse"`
	Mirrors  playback.Mirrors `toml:"mirrors"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// LogConfig enables a rotating log file in addition to stdout.
type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type TMDBConfig struct {
	APIKey       string        `toml:"api_key"`
	BaseURL      string        `toml:"base_url"`
	Language     string        `toml:"language"`
	ReferenceTTL time.Duration `toml:"reference_ttl"` // genre and country lists
	Timeout      time.Duration `toml:"timeout"`
}

type BrowseConfig struct {
	Debounce time.Duration `toml:"debounce"` // keyword input quiescence
	ViewTTL  time.Duration `toml:"view_ttl"` // idle daemon views expire
}

// Defaults.
const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 8585
	DefaultLogLevel     = "info"
	DefaultDatabasePath = "./data/marquee.db"
	DefaultTMDBBaseURL  = "https://api.themoviedb.org"
	DefaultLanguage     = "en-US"
	DefaultReferenceTTL = 24 * time.Hour
	DefaultTimeout      = 10 * time.Second
	DefaultDebounce     = 500 * time.Millisecond
	DefaultViewTTL      = 30 * time.Minute
)

// Load reads, parses and validates the configuration file. Unresolved
// environment variables and validation failures are returned together as a
// *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation and missing-variable checks.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	if c.Log.File != "" {
		if c.Log.MaxSizeMB == 0 {
			c.Log.MaxSizeMB = 50
		}
		if c.Log.MaxBackups == 0 {
			c.Log.MaxBackups = 3
		}
		if c.Log.MaxAgeDays == 0 {
			c.Log.MaxAgeDays = 28
		}
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = DefaultTMDBBaseURL
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = DefaultLanguage
	}
	if c.TMDB.ReferenceTTL == 0 {
		c.TMDB.ReferenceTTL = DefaultReferenceTTL
	}
	if c.TMDB.Timeout == 0 {
		c.TMDB.Timeout = DefaultTimeout
	}
	if c.Browse.Debounce == 0 {
		c.Browse.Debounce = DefaultDebounce
	}
	if c.Browse.ViewTTL == 0 {
		c.Browse.ViewTTL = DefaultViewTTL
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references. Unset variables without
// a default are left in place and reported in missing. An empty value counts
// as unset for the :- and :? forms.
func substituteEnvVars(content string) (string, []string) {
	var missing []string

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})

	return out, missing
}
