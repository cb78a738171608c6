package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// heartbeatInterval keeps idle event streams open through proxies.
const heartbeatInterval = 30 * time.Second

func (s *Server) viewEvents(w http.ResponseWriter, r *http.Request, v *view) {
	s.streamEvents(w, r, v.id)
}

func (s *Server) playerEvents(w http.ResponseWriter, r *http.Request, p *player) {
	s.streamEvents(w, r, p.id)
}

// streamEvents writes events tagged with viewID as server-sent events until
// the client disconnects.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request, viewID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "STREAMING_UNSUPPORTED", "Streaming not supported")
		return
	}

	ch, cancel := s.deps.Bus.SubscribeView(viewID, 16)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case e, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				s.log.Warn("encode event failed", "type", e.EventType(), "error", err)
				continue
			}
			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.EventType(), data)
			flusher.Flush()
		}
	}
}
