package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/marquee/internal/playback"
)

func validConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{APIKey: "test-key"},
		Mirrors: playback.Mirrors{
			{Name: "one", Movie: "https://one.example/{id}", Series: "https://one.example/{id}/{season}/{episode}"},
		},
	}
}

func TestValidate_MinimalValid(t *testing.T) {
	errs := validConfig().Validate()
	assert.Empty(t, errs, "expected no errors for minimal valid config")
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.TMDB.APIKey = ""
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "tmdb.api_key"), "expected api_key error, got %v", errs)
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "server.port"), "expected port error, got %v", errs)
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Server.LogLevel = "verbose"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "log_level"), "expected log_level error, got %v", errs)
}

func TestValidate_BadBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.TMDB.BaseURL = "api.themoviedb.org"
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "tmdb.base_url"), "expected base_url error, got %v", errs)
}

func TestValidate_NegativeDurations(t *testing.T) {
	cfg := validConfig()
	cfg.Browse.Debounce = -time.Second
	cfg.Browse.ViewTTL = -time.Second
	cfg.TMDB.Timeout = -time.Second
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "browse.debounce"))
	assert.True(t, containsError(errs, "browse.view_ttl"))
	assert.True(t, containsError(errs, "tmdb.timeout"))
}

func TestValidate_NoMirrors(t *testing.T) {
	cfg := validConfig()
	cfg.Mirrors = nil
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "at least one mirror"), "expected mirrors error, got %v", errs)
}

func TestValidate_BadMirrorTemplate(t *testing.T) {
	cfg := validConfig()
	cfg.Mirrors = append(cfg.Mirrors, playback.Mirror{Name: "broken", Series: "https://broken.example/{id}"})
	errs := cfg.Validate()
	assert.True(t, containsError(errs, "{season}"), "expected template error, got %v", errs)
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
