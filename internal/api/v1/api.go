// Package v1 implements the daemon's JSON API: catalog views, players and
// detail lookups held per client session.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vmunix/marquee/internal/detail"
	"github.com/vmunix/marquee/internal/tmdb"
)

// Config holds API server configuration.
type Config struct {
	Debounce time.Duration // keyword input quiescence
	ViewTTL  time.Duration // idle views and players expire
	Version  string
}

// DefaultViewTTL is used when Config.ViewTTL is not positive.
const DefaultViewTTL = 30 * time.Minute

// Server is the v1 API server.
type Server struct {
	deps     ServerDeps
	cfg      Config
	log      *slog.Logger
	sessions *sessions
}

// New creates a v1 API server.
func New(deps ServerDeps, cfg Config) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDependency, err)
	}
	if cfg.ViewTTL <= 0 {
		cfg.ViewTTL = DefaultViewTTL
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Server{
		deps:     deps,
		cfg:      cfg,
		log:      log.With("component", "api"),
		sessions: newSessions(cfg.ViewTTL),
	}, nil
}

// Close drops all views and players.
func (s *Server) Close() {
	s.sessions.close()
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Views
	mux.HandleFunc("POST /api/v1/views", s.createView)
	mux.HandleFunc("GET /api/v1/views/{id}", s.withView(s.getView))
	mux.HandleFunc("PATCH /api/v1/views/{id}", s.withView(s.updateView))
	mux.HandleFunc("DELETE /api/v1/views/{id}", s.deleteView)
	mux.HandleFunc("POST /api/v1/views/{id}/more", s.withView(s.loadMore))
	mux.HandleFunc("POST /api/v1/views/{id}/reload", s.withView(s.reloadView))
	mux.HandleFunc("GET /api/v1/views/{id}/events", s.requireBus(s.withView(s.viewEvents)))

	// Players
	mux.HandleFunc("POST /api/v1/players", s.createPlayer)
	mux.HandleFunc("GET /api/v1/players/{id}", s.withPlayer(s.getPlayer))
	mux.HandleFunc("DELETE /api/v1/players/{id}", s.deletePlayer)
	mux.HandleFunc("POST /api/v1/players/{id}/season", s.withPlayer(s.selectSeason))
	mux.HandleFunc("POST /api/v1/players/{id}/episode", s.withPlayer(s.selectEpisode))
	mux.HandleFunc("POST /api/v1/players/{id}/server", s.withPlayer(s.selectServer))
	mux.HandleFunc("POST /api/v1/players/{id}/play", s.withPlayer(s.play))
	mux.HandleFunc("POST /api/v1/players/{id}/next", s.withPlayer(s.next))
	mux.HandleFunc("POST /api/v1/players/{id}/previous", s.withPlayer(s.previous))
	mux.HandleFunc("GET /api/v1/players/{id}/events", s.requireBus(s.withPlayer(s.playerEvents)))

	// Reference data and details. Categories are literal segments so they
	// do not overlap the views and players routes.
	mux.HandleFunc("GET /api/v1/countries", s.listCountries)
	for _, cat := range []tmdb.Category{tmdb.Movie, tmdb.TV} {
		prefix := "GET /api/v1/" + string(cat)
		mux.HandleFunc(prefix+"/genres", s.listGenres(cat))
		mux.HandleFunc(prefix+"/{id}", s.getDetail(cat))
		mux.HandleFunc(prefix+"/{id}/trailer", s.getTrailer(cat))
	}

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeFetchError maps a TMDB failure onto a response.
func writeFetchError(w http.ResponseWriter, err error) {
	if errors.Is(err, tmdb.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
}

func (s *Server) listCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := s.deps.Metadata.Countries(r.Context())
	if err != nil {
		s.log.Warn("list countries failed", "error", err)
		writeFetchError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listCountriesResponse{Countries: countries})
}

func (s *Server) listGenres(cat tmdb.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genres, err := s.deps.Metadata.Genres(r.Context(), cat)
		if err != nil {
			s.log.Warn("list genres failed", "category", cat, "error", err)
			writeFetchError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, listGenresResponse{Category: cat, Genres: genres})
	}
}

// detailView returns a detail view whose redirects are published to the
// view named by the optional ?view= parameter.
func (s *Server) detailView(r *http.Request) *detail.View {
	opts := []detail.Option{detail.WithLogger(s.log)}
	if viewID := r.URL.Query().Get("view"); viewID != "" && s.deps.Bus != nil {
		opts = append(opts, detail.WithPublisher(s.deps.Bus, viewID))
	}
	return detail.NewView(s.deps.Metadata, opts...)
}

// getDetail answers with the item, or with a redirect to the parent catalog
// when the id is malformed or the item cannot be loaded.
func (s *Server) getDetail(cat tmdb.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.detailView(r).Load(r.Context(), cat, r.PathValue("id"))
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Server) getTrailer(cat tmdb.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := s.detailView(r).Trailer(r.Context(), cat, r.PathValue("id"))
		switch {
		case errors.Is(err, tmdb.ErrNoTrailer):
			writeError(w, http.StatusNotFound, "NO_TRAILER", "Trailer not available")
		case err != nil:
			writeFetchError(w, err)
		default:
			writeJSON(w, http.StatusOK, trailerResponse{URL: url})
		}
	}
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	views, players := s.sessions.counts()
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Version: s.cfg.Version,
		Views:   views,
		Players: players,
		Servers: s.deps.Mirrors.Names(),
	})
}
