package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vmunix/marquee/internal/config"
	"github.com/vmunix/marquee/internal/playback"
	"github.com/vmunix/marquee/internal/tmdb"
)

var testMirrors = playback.Mirrors{
	{Name: "Alpha", Movie: "https://alpha.example/movie/{id}", Series: "https://alpha.example/tv/{id}/{season}/{episode}"},
	{Name: "Beta", Movie: "https://beta.example/embed/{id}", Series: "https://beta.example/embed/{id}-{season}-{episode}"},
}

// fakeTMDB serves just enough of TMDB v3 for the commands. Listings have
// three pages of two items each.
type fakeTMDB struct {
	t *testing.T

	mu      sync.Mutex
	queries []url.Values
	paths   []string
}

func newFakeTMDB(t *testing.T) (*fakeTMDB, *httptest.Server) {
	t.Helper()
	f := &fakeTMDB{t: t}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv
}

// lastQuery returns the query of the most recent request to path.
func (f *fakeTMDB) lastQuery(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.paths) - 1; i >= 0; i-- {
		if f.paths[i] == path {
			return f.queries[i]
		}
	}
	return nil
}

// count returns how many requests were made to path.
func (f *fakeTMDB) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.paths {
		if p == path {
			n++
		}
	}
	return n
}

func (f *fakeTMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.queries = append(f.queries, r.URL.Query())
	f.mu.Unlock()

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/3/"), "/")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	switch {
	case len(parts) == 3 && parts[0] == "genre":
		if parts[1] == "movie" {
			f.json(w, map[string]any{"genres": []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}, {ID: 53, Name: "Thriller"}}})
			return
		}
		f.json(w, map[string]any{"genres": []tmdb.Genre{{ID: 18, Name: "Drama"}, {ID: 10765, Name: "Sci-Fi & Fantasy"}}})
	case r.URL.Path == "/3/configuration/countries":
		f.json(w, []tmdb.Country{{Code: "JP", Name: "Japan"}, {Code: "KR", Name: "South Korea"}, {Code: "US", Name: "United States of America"}})
	case parts[0] == "search" && parts[1] == "multi":
		f.json(w, tmdb.Page{Page: 1, TotalPages: 1, TotalResults: 3, Results: []tmdb.Item{
			{ID: 550, Title: "Fight Club", PosterPath: "/fc.jpg", MediaType: "movie"},
			{ID: 1399, Name: "Game of Thrones", PosterPath: "/got.jpg", MediaType: "tv"},
			{ID: 7, Name: "Some Person", MediaType: "person"},
		}})
	case parts[0] == "search" || parts[0] == "discover" || (len(parts) == 2 && !isNumber(parts[1])):
		f.json(w, listing(page))
	case len(parts) == 2 && parts[0] == "movie" && parts[1] == "550":
		f.json(w, tmdb.Detail{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", Runtime: 139, VoteAverage: 8.4,
			PosterPath: "/fc.jpg", Overview: "An insomniac office worker.", Genres: []tmdb.Genre{{ID: 18, Name: "Drama"}}})
	case len(parts) == 2 && parts[0] == "tv" && parts[1] == "1399":
		f.json(w, tmdb.Detail{ID: 1399, Name: "Game of Thrones", FirstAirDate: "2011-04-17", Seasons: []tmdb.SeasonSummary{
			{SeasonNumber: 0, EpisodeCount: 4, Name: "Specials"},
			{SeasonNumber: 1, EpisodeCount: 3, Name: "Season 1"},
			{SeasonNumber: 2, EpisodeCount: 2, Name: "Season 2"},
		}})
	case len(parts) == 3 && parts[2] == "credits":
		f.json(w, tmdb.Credits{Cast: []tmdb.CastMember{{Name: "Edward Norton", Character: "The Narrator"}, {Name: "Brad Pitt", Character: "Tyler Durden"}}})
	case len(parts) == 3 && parts[2] == "similar":
		f.json(w, tmdb.Page{Page: 1, TotalPages: 1, Results: []tmdb.Item{{ID: 680, Title: "Pulp Fiction", PosterPath: "/pf.jpg"}}})
	case len(parts) == 3 && parts[2] == "videos" && parts[1] == "550":
		f.json(w, map[string]any{"results": []tmdb.Video{{Key: "abc123", Site: "YouTube", Type: "Trailer"}}})
	case len(parts) == 3 && parts[2] == "videos" && parts[1] == "551":
		f.json(w, map[string]any{"results": []tmdb.Video{}})
	case len(parts) == 4 && parts[0] == "tv" && parts[1] == "1399" && parts[2] == "season":
		n, _ := strconv.Atoi(parts[3])
		count := map[int]int{1: 3, 2: 2}[n]
		eps := make([]tmdb.Episode, count)
		for i := range eps {
			eps[i] = tmdb.Episode{SeasonNumber: n, EpisodeNumber: i + 1, Name: fmt.Sprintf("Episode %d", i+1)}
		}
		f.json(w, tmdb.Season{SeasonNumber: n, Episodes: eps})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_message":"The resource you requested could not be found."}`))
	}
}

func (f *fakeTMDB) json(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		f.t.Errorf("encode response: %v", err)
	}
}

func listing(page int) tmdb.Page {
	return tmdb.Page{
		Page:         page,
		TotalPages:   3,
		TotalResults: 6,
		Results: []tmdb.Item{
			{ID: int64(page*10 + 1), Title: fmt.Sprintf("Title %d", page*10+1), PosterPath: "/a.jpg", ReleaseDate: "2020-01-01", VoteAverage: 7.5},
			{ID: int64(page*10 + 2), Title: fmt.Sprintf("Title %d", page*10+2), PosterPath: "/b.jpg"},
		},
	}
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// newTestApp returns an app talking to a fake TMDB, with output captured.
func newTestApp(t *testing.T) (*app, *bytes.Buffer, *fakeTMDB) {
	t.Helper()
	fake, srv := newFakeTMDB(t)

	cfg := &config.Config{
		TMDB: config.TMDBConfig{
			APIKey:       "test-key",
			BaseURL:      srv.URL,
			Language:     "en-US",
			ReferenceTTL: time.Hour,
			Timeout:      5 * time.Second,
		},
		Mirrors: testMirrors,
	}
	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return newApp(cfg, log, &out), &out, fake
}
