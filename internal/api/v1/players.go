package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/vmunix/marquee/internal/playback"
	"github.com/vmunix/marquee/internal/tmdb"
)

func (s *Server) playerOptions(id string) []playback.Option {
	opts := []playback.Option{playback.WithLogger(s.log.With("player_id", id))}
	if s.deps.Bus != nil {
		opts = append(opts, playback.WithPublisher(s.deps.Bus, id))
	}
	return opts
}

// createPlayer creates a navigator. Series start at the stored resume
// position or their first regular season.
func (s *Server) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	cat, err := tmdb.ParseCategory(req.Category)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_CATEGORY", err.Error())
		return
	}
	if req.ID <= 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		return
	}

	ctx := r.Context()
	id := uuid.NewString()
	opts := s.playerOptions(id)

	var nav *playback.Navigator
	switch cat {
	case tmdb.Movie:
		nav = playback.NewMovieNavigator(req.ID, s.deps.Mirrors, opts...)
	case tmdb.TV:
		series, err := s.deps.Metadata.Detail(ctx, tmdb.TV, req.ID)
		if err != nil {
			s.log.Warn("load series failed", "id", req.ID, "error", err)
			writeFetchError(w, err)
			return
		}
		nav, err = playback.NewSeriesNavigator(series, s.deps.Metadata, s.deps.Store, s.deps.Mirrors, opts...)
		if err != nil {
			writeNavError(w, err)
			return
		}
		if err := nav.Start(ctx); err != nil {
			writeNavError(w, err)
			return
		}
	}

	p := &player{id: id, nav: nav}
	s.sessions.addPlayer(p)
	s.log.Debug("player created", "player_id", id, "category", cat, "id", req.ID)

	writeJSON(w, http.StatusCreated, playerResponse{ID: id, State: nav.State()})
}

func (s *Server) getPlayer(w http.ResponseWriter, r *http.Request, p *player) {
	writeJSON(w, http.StatusOK, playerResponse{ID: p.id, State: p.nav.State()})
}

func (s *Server) deletePlayer(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.removePlayer(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) selectSeason(w http.ResponseWriter, r *http.Request, p *player) {
	s.applySelection(w, r, p, p.nav.SelectSeason)
}

func (s *Server) selectEpisode(w http.ResponseWriter, r *http.Request, p *player) {
	s.applySelection(w, r, p, p.nav.SelectEpisode)
}

func (s *Server) selectServer(w http.ResponseWriter, r *http.Request, p *player) {
	s.applySelection(w, r, p, p.nav.SelectServer)
}

func (s *Server) play(w http.ResponseWriter, r *http.Request, p *player) {
	s.applyStep(w, r, p, p.nav.Play)
}

func (s *Server) next(w http.ResponseWriter, r *http.Request, p *player) {
	s.applyStep(w, r, p, p.nav.Next)
}

func (s *Server) previous(w http.ResponseWriter, r *http.Request, p *player) {
	s.applyStep(w, r, p, p.nav.Previous)
}

func (s *Server) applySelection(w http.ResponseWriter, r *http.Request, p *player, fn func(context.Context, int) error) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "MISSING_VALUE", "value is required")
		return
	}

	if err := fn(r.Context(), *req.Value); err != nil {
		writeNavError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playerResponse{ID: p.id, State: p.nav.State()})
}

func (s *Server) applyStep(w http.ResponseWriter, r *http.Request, p *player, fn func(context.Context) error) {
	if err := fn(r.Context()); err != nil {
		writeNavError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playerResponse{ID: p.id, State: p.nav.State()})
}

// writeNavError maps navigator failures onto responses.
func writeNavError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, playback.ErrUnknownSeason):
		writeError(w, http.StatusBadRequest, "UNKNOWN_SEASON", err.Error())
	case errors.Is(err, playback.ErrNoEpisode):
		writeError(w, http.StatusBadRequest, "NO_EPISODE", err.Error())
	case errors.Is(err, playback.ErrUnknownServer):
		writeError(w, http.StatusBadRequest, "UNKNOWN_SERVER", err.Error())
	case errors.Is(err, playback.ErrNoTemplate):
		writeError(w, http.StatusUnprocessableEntity, "NO_TEMPLATE", err.Error())
	case errors.Is(err, playback.ErrNoSeasons):
		writeError(w, http.StatusUnprocessableEntity, "NO_SEASONS", err.Error())
	case errors.Is(err, playback.ErrStale):
		writeError(w, http.StatusConflict, "STALE", err.Error())
	default:
		writeFetchError(w, err)
	}
}
