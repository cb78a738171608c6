// Package playback resolves viewing URLs and tracks series episode navigation.
package playback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownServer is returned for a server index outside the mirror table.
	ErrUnknownServer = errors.New("unknown server")
	// ErrNoTemplate is returned when a mirror does not serve the requested kind.
	ErrNoTemplate = errors.New("mirror has no template for this kind")
)

// Template placeholders.
const (
	PlaceholderID      = "{id}"
	PlaceholderSeason  = "{season}"
	PlaceholderEpisode = "{episode}"
)

// Mirror is one third-party video host. Movie and Series are URL templates
// using the {id}, {season} and {episode} placeholders.
type Mirror struct {
	Name   string `json:"name" toml:"name"`
	Movie  string `json:"movie,omitempty" toml:"movie,omitempty"`
	Series string `json:"series,omitempty" toml:"series,omitempty"`
}

// MovieURL expands the movie template.
func (m Mirror) MovieURL(id int64) (string, error) {
	if m.Movie == "" {
		return "", fmt.Errorf("%w: %s movie", ErrNoTemplate, m.Name)
	}
	return expand(m.Movie, id, 0, 0), nil
}

// SeriesURL expands the series template.
func (m Mirror) SeriesURL(id int64, season, episode int) (string, error) {
	if m.Series == "" {
		return "", fmt.Errorf("%w: %s series", ErrNoTemplate, m.Name)
	}
	return expand(m.Series, id, season, episode), nil
}

func expand(tmpl string, id int64, season, episode int) string {
	return strings.NewReplacer(
		PlaceholderID, strconv.FormatInt(id, 10),
		PlaceholderSeason, strconv.Itoa(season),
		PlaceholderEpisode, strconv.Itoa(episode),
	).Replace(tmpl)
}

// Mirrors is the ordered server table. Index i is server i for movies and
// series alike.
type Mirrors []Mirror

// Get returns mirror i.
func (ms Mirrors) Get(i int) (Mirror, error) {
	if i < 0 || i >= len(ms) {
		return Mirror{}, fmt.Errorf("%w: %d of %d", ErrUnknownServer, i, len(ms))
	}
	return ms[i], nil
}

// MovieURL resolves the movie URL on server i.
func (ms Mirrors) MovieURL(i int, id int64) (string, error) {
	m, err := ms.Get(i)
	if err != nil {
		return "", err
	}
	return m.MovieURL(id)
}

// SeriesURL resolves the episode URL on server i.
func (ms Mirrors) SeriesURL(i int, id int64, season, episode int) (string, error) {
	m, err := ms.Get(i)
	if err != nil {
		return "", err
	}
	return m.SeriesURL(id, season, episode)
}

// Names returns the display names in server order.
func (ms Mirrors) Names() []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}

// Validate reports template problems, one message per issue.
func (ms Mirrors) Validate() []string {
	var errs []string
	for i, m := range ms {
		label := m.Name
		if label == "" {
			label = "#" + strconv.Itoa(i+1)
			errs = append(errs, fmt.Sprintf("mirror %s: name is required", label))
		}
		if m.Movie == "" && m.Series == "" {
			errs = append(errs, fmt.Sprintf("mirror %s: needs a movie or series template", label))
		}
		if m.Movie != "" && !strings.Contains(m.Movie, PlaceholderID) {
			errs = append(errs, fmt.Sprintf("mirror %s: movie template must contain %s", label, PlaceholderID))
		}
		if m.Series != "" {
			for _, ph := range []string{PlaceholderID, PlaceholderSeason, PlaceholderEpisode} {
				if !strings.Contains(m.Series, ph) {
					errs = append(errs, fmt.Sprintf("mirror %s: series template must contain %s", label, ph))
				}
			}
		}
	}
	return errs
}
