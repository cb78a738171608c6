package v1

import "net/http"

// requireBus wraps a handler and returns 503 if the event bus is not configured.
func (s *Server) requireBus(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.deps.Bus == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Event bus not configured")
			return
		}
		next(w, r)
	}
}

// withView resolves the {id} path value to a live view or answers 404.
func (s *Server) withView(next func(http.ResponseWriter, *http.Request, *view)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := s.sessions.view(r.PathValue("id"))
		if !ok {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "View not found")
			return
		}
		next(w, r, v)
	}
}

// withPlayer resolves the {id} path value to a live player or answers 404.
func (s *Server) withPlayer(next func(http.ResponseWriter, *http.Request, *player)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.sessions.player(r.PathValue("id"))
		if !ok {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
			return
		}
		next(w, r, p)
	}
}
