package v1

import (
	"errors"
	"log/slog"

	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/detail"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/playback"
	"github.com/vmunix/marquee/internal/tmdb"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Metadata is everything the API reads from TMDB. *tmdb.Client implements it.
type Metadata interface {
	catalog.Source
	detail.Source
	playback.SeasonSource
}

var _ Metadata = (*tmdb.Client)(nil)

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Metadata Metadata
	Mirrors  playback.Mirrors

	// Optional dependencies (nil if not configured)
	Store  playback.Store // resume positions; nil disables resume
	Bus    *events.Bus    // view events for /events streams
	Logger *slog.Logger
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Metadata == nil {
		return errors.New("metadata source is required")
	}
	if len(d.Mirrors) == 0 {
		return errors.New("at least one mirror is required")
	}
	return nil
}
