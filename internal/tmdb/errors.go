package tmdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for remote 4xx responses (unknown id, bad parameters).
	ErrNotFound = errors.New("not found")

	// ErrNetwork is returned for transport failures and remote 5xx responses.
	ErrNetwork = errors.New("network error")

	// ErrNoTrailer is returned when a title has no YouTube trailer.
	ErrNoTrailer = errors.New("trailer not available")
)

// APIError is a non-2xx response from TMDB.
type APIError struct {
	StatusCode int
	Message    string // TMDB status_message, if any
	Path       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("TMDB %s: %d %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("TMDB %s: status %d", e.Path, e.StatusCode)
}

// Unwrap maps the status onto the package taxonomy.
func (e *APIError) Unwrap() error {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return ErrNotFound
	}
	return ErrNetwork
}
