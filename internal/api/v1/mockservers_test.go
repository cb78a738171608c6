package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/vmunix/marquee/internal/tmdb"
)

// TMDBMock is a fake TMDB v3 server. Listing endpoints return TotalPages
// pages of two displayable items each; details, seasons and videos come from
// the configured fixtures.
type TMDBMock struct {
	t *testing.T

	// Configuration
	APIKey     string
	TotalPages int
	Genres     map[tmdb.Category][]tmdb.Genre
	Countries  []tmdb.Country
	Details    map[string]tmdb.Detail  // "movie/550"
	Seasons    map[string]tmdb.Season  // "1399/1"
	Videos     map[string][]tmdb.Video // "movie/550"

	// Tracking
	mu       sync.Mutex
	requests []string
}

// NewTMDBMock creates a mock with a small movie and series fixture set.
func NewTMDBMock(t *testing.T) *TMDBMock {
	t.Helper()
	return &TMDBMock{
		t:          t,
		APIKey:     "test-api-key",
		TotalPages: 3,
		Genres: map[tmdb.Category][]tmdb.Genre{
			tmdb.Movie: {{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}},
			tmdb.TV:    {{ID: 10759, Name: "Action & Adventure"}, {ID: 18, Name: "Drama"}},
		},
		Countries: []tmdb.Country{
			{Code: "JP", Name: "Japan"},
			{Code: "US", Name: "United States of America"},
		},
		Details: map[string]tmdb.Detail{
			"movie/550": {ID: 550, Title: "Fight Club", PosterPath: "/fc.jpg", Genres: []tmdb.Genre{{ID: 18, Name: "Drama"}}},
			"movie/551": {ID: 551, Title: "No Trailer", PosterPath: "/nt.jpg"},
			"tv/1399": {ID: 1399, Name: "Game of Thrones", Seasons: []tmdb.SeasonSummary{
				{SeasonNumber: 0, EpisodeCount: 5},
				{SeasonNumber: 1, EpisodeCount: 3},
				{SeasonNumber: 2, EpisodeCount: 2},
			}},
		},
		Seasons: map[string]tmdb.Season{
			"1399/1": {SeasonNumber: 1, Episodes: episodes(1, 3)},
			"1399/2": {SeasonNumber: 2, Episodes: episodes(2, 2)},
		},
		Videos: map[string][]tmdb.Video{
			"movie/550": {
				{Key: "teaser", Site: "YouTube", Type: "Teaser"},
				{Key: "abc123", Site: "YouTube", Type: "Trailer"},
			},
			"movie/551": {{Key: "clip", Site: "YouTube", Type: "Clip"}},
		},
	}
}

func episodes(season, count int) []tmdb.Episode {
	out := make([]tmdb.Episode, count)
	for i := range out {
		out[i] = tmdb.Episode{SeasonNumber: season, EpisodeNumber: i + 1, Name: "Episode " + strconv.Itoa(i+1)}
	}
	return out
}

// Requests returns the request paths received so far, with the query
// parameters that select content.
func (m *TMDBMock) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requests...)
}

// Build creates the httptest.Server.
func (m *TMDBMock) Build() *httptest.Server {
	m.t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		m.record(r)

		if r.Method != http.MethodGet {
			m.fail(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if m.APIKey != "" && q.Get("api_key") != m.APIKey {
			m.fail(w, http.StatusUnauthorized, "Invalid API key: You must be granted a valid key.")
			return
		}

		page, _ := strconv.Atoi(q.Get("page"))
		parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/3"), "/"), "/")

		switch {
		case len(parts) == 3 && parts[0] == "genre":
			m.writeJSON(w, map[string]any{"genres": m.Genres[tmdb.Category(parts[1])]})
		case len(parts) == 2 && parts[0] == "configuration" && parts[1] == "countries":
			m.writeJSON(w, m.Countries)
		case len(parts) == 2 && (parts[0] == "discover" || parts[0] == "search"):
			m.writePage(w, page)
		case len(parts) == 2 && !isNumeric(parts[1]):
			m.writePage(w, page)
		case len(parts) == 2:
			d, ok := m.Details[parts[0]+"/"+parts[1]]
			if !ok {
				m.fail(w, http.StatusNotFound, "The resource you requested could not be found.")
				return
			}
			m.writeJSON(w, d)
		case len(parts) == 3 && parts[2] == "credits":
			m.writeJSON(w, tmdb.Credits{Cast: []tmdb.CastMember{{ID: 1, Name: "Edward Norton"}}})
		case len(parts) == 3 && parts[2] == "similar":
			m.writePage(w, 1)
		case len(parts) == 3 && parts[2] == "videos":
			m.writeJSON(w, map[string]any{"results": m.Videos[parts[0]+"/"+parts[1]]})
		case len(parts) == 4 && parts[0] == "tv" && parts[2] == "season":
			s, ok := m.Seasons[parts[1]+"/"+parts[3]]
			if !ok {
				m.fail(w, http.StatusNotFound, "The resource you requested could not be found.")
				return
			}
			m.writeJSON(w, s)
		default:
			m.fail(w, http.StatusNotFound, "The resource you requested could not be found.")
		}
	}))
}

func (m *TMDBMock) record(r *http.Request) {
	q := r.URL.Query()
	entry := r.URL.Path
	var params []string
	for _, key := range []string{"page", "query", "with_genres", "with_origin_country"} {
		if v := q.Get(key); v != "" {
			params = append(params, key+"="+v)
		}
	}
	if len(params) > 0 {
		entry += "?" + strings.Join(params, "&")
	}

	m.mu.Lock()
	m.requests = append(m.requests, entry)
	m.mu.Unlock()
}

func (m *TMDBMock) writePage(w http.ResponseWriter, page int) {
	if page < 1 {
		page = 1
	}
	base := int64(page * 10)
	m.writeJSON(w, tmdb.Page{
		Page:         page,
		TotalPages:   m.TotalPages,
		TotalResults: m.TotalPages * 2,
		Results: []tmdb.Item{
			{ID: base + 1, Title: "Item " + strconv.FormatInt(base+1, 10), PosterPath: "/p.jpg"},
			{ID: base + 2, Title: "Item " + strconv.FormatInt(base+2, 10), BackdropPath: "/b.jpg"},
		},
	})
}

func (m *TMDBMock) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (m *TMDBMock) fail(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":        false,
		"status_code":    34,
		"status_message": message,
	})
}

func isNumeric(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
