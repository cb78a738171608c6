package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/route"
	"github.com/vmunix/marquee/internal/tmdb"
)

func (s *Server) newView(id string) *view {
	opts := []catalog.Option{catalog.WithLogger(s.log.With("view_id", id))}
	if s.deps.Bus != nil {
		opts = append(opts, catalog.WithPublisher(s.deps.Bus, id))
	}
	b := catalog.NewBrowser(s.deps.Metadata, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	return &view{
		id:      id,
		browser: b,
		keyword: catalog.NewKeywordInput(ctx, b, s.cfg.Debounce),
		cancel:  cancel,
	}
}

func (s *Server) createView(w http.ResponseWriter, r *http.Request) {
	var req createViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	addr, err := route.Parse(req.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ADDRESS", err.Error())
		return
	}

	v := s.newView(uuid.NewString())
	if err := v.browser.Open(r.Context(), addr); err != nil {
		v.close()
		writeError(w, http.StatusBadRequest, "INVALID_ADDRESS", err.Error())
		return
	}
	s.sessions.addView(v)
	s.log.Debug("view created", "view_id", v.id, "address", addr.String())

	writeJSON(w, http.StatusCreated, viewResponse{ID: v.id, State: v.browser.State()})
}

func (s *Server) getView(w http.ResponseWriter, r *http.Request, v *view) {
	writeJSON(w, http.StatusOK, viewResponse{ID: v.id, State: v.browser.State()})
}

// updateView applies selection changes in order: category, type, genre,
// country, keyword. A keyword is debounced unless immediate is set.
func (s *Server) updateView(w http.ResponseWriter, r *http.Request, v *view) {
	var req updateViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	ctx := r.Context()

	if req.Category != nil {
		cat, err := tmdb.ParseCategory(*req.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_CATEGORY", err.Error())
			return
		}
		if err := v.browser.SetCategory(ctx, cat); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_CATEGORY", err.Error())
			return
		}
	}

	if req.Type != nil {
		err := v.browser.SetType(ctx, tmdb.ContentType(*req.Type))
		if errors.Is(err, catalog.ErrInvalidType) {
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", err.Error())
			return
		}
	}

	if req.Genre != nil {
		if err := v.browser.SelectGenre(ctx, *req.Genre); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_GENRE", err.Error())
			return
		}
	}

	if req.Country != nil {
		_ = v.browser.SelectCountry(ctx, *req.Country)
	}

	if req.Keyword != nil {
		v.keyword.Input(*req.Keyword)
		if req.Immediate {
			v.keyword.Flush()
		}
	}

	writeJSON(w, http.StatusOK, viewResponse{ID: v.id, State: v.browser.State()})
}

func (s *Server) deleteView(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.removeView(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "View not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) loadMore(w http.ResponseWriter, r *http.Request, v *view) {
	appended := v.browser.LoadMore(r.Context())
	writeJSON(w, http.StatusOK, loadMoreResponse{Appended: appended, State: v.browser.State()})
}

// reloadView retries failed reference lists and page 1 of the current query.
func (s *Server) reloadView(w http.ResponseWriter, r *http.Request, v *view) {
	v.browser.Reload(r.Context())
	writeJSON(w, http.StatusOK, viewResponse{ID: v.id, State: v.browser.State()})
}
