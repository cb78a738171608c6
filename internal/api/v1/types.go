package v1

import (
	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/playback"
	"github.com/vmunix/marquee/internal/tmdb"
)

// createViewRequest is the request for POST /views.
type createViewRequest struct {
	Address string `json:"address"`
}

// viewResponse is a view id with its current state.
type viewResponse struct {
	ID    string        `json:"id"`
	State catalog.State `json:"state"`
}

// updateViewRequest is the request for PATCH /views/{id}. Absent fields are
// left unchanged; genre 0 and country "" clear the selection.
type updateViewRequest struct {
	Category *string `json:"category,omitempty"`
	Type     *string `json:"type,omitempty"`
	Genre    *int    `json:"genre,omitempty"`
	Country  *string `json:"country,omitempty"`
	Keyword  *string `json:"keyword,omitempty"`
	// Immediate applies a keyword without waiting for the debounce delay.
	Immediate bool `json:"immediate,omitempty"`
}

// loadMoreResponse is the response for POST /views/{id}/more.
type loadMoreResponse struct {
	Appended bool          `json:"appended"`
	State    catalog.State `json:"state"`
}

// listGenresResponse is the response for GET /{category}/genres.
type listGenresResponse struct {
	Category tmdb.Category `json:"category"`
	Genres   []tmdb.Genre  `json:"genres"`
}

// listCountriesResponse is the response for GET /countries.
type listCountriesResponse struct {
	Countries []tmdb.Country `json:"countries"`
}

// trailerResponse is the response for GET /{category}/{id}/trailer.
type trailerResponse struct {
	URL string `json:"url"`
}

// createPlayerRequest is the request for POST /players.
type createPlayerRequest struct {
	Category string `json:"category"`
	ID       int64  `json:"id"`
}

// playerResponse is a player id with its current state.
type playerResponse struct {
	ID    string         `json:"id"`
	State playback.State `json:"state"`
}

// selectRequest carries the season, episode or server index to select.
type selectRequest struct {
	Value *int `json:"value"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version,omitempty"`
	Views   int      `json:"views"`
	Players int      `json:"players"`
	Servers []string `json:"servers"`
}
