package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Log file rotation
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, "log: max_size_mb, max_backups and max_age_days must not be negative")
	}

	// TMDB validation
	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required")
	}
	if c.TMDB.BaseURL != "" {
		if u, err := url.Parse(c.TMDB.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("tmdb.base_url: must be an absolute URL, got %q", c.TMDB.BaseURL))
		}
	}
	if c.TMDB.ReferenceTTL < 0 {
		errs = append(errs, "tmdb.reference_ttl: must not be negative")
	}
	if c.TMDB.Timeout < 0 {
		errs = append(errs, "tmdb.timeout: must not be negative")
	}

	// Browse validation
	if c.Browse.Debounce < 0 {
		errs = append(errs, "browse.debounce: must not be negative")
	}
	if c.Browse.ViewTTL < 0 {
		errs = append(errs, "browse.view_ttl: must not be negative")
	}

	// Mirrors validation
	if len(c.Mirrors) == 0 {
		errs = append(errs, "mirrors: at least one mirror must be configured")
	}
	for _, msg := range c.Mirrors.Validate() {
		errs = append(errs, "mirrors: "+msg)
	}

	return errs
}
