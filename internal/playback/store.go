package playback

import (
	"context"
	"encoding/json"
	"sync"
)

// Position is the resume marker of one series.
type Position struct {
	SeriesID string `json:"series_id"`
	Season   int    `json:"season"`
	Episode  int    `json:"episode"` // 0 = season chosen, no episode yet
}

// Store persists one Position per series. Get reports absent rather than
// failing when the stored record is unreadable or belongs to another series.
type Store interface {
	Get(ctx context.Context, seriesID string) (Position, bool, error)
	Set(ctx context.Context, pos Position) error
	Delete(ctx context.Context, seriesID string) error
}

// decodePosition parses a stored record for seriesID.
func decodePosition(seriesID string, raw []byte) (Position, bool) {
	var pos Position
	if err := json.Unmarshal(raw, &pos); err != nil {
		return Position{}, false
	}
	if pos.SeriesID != seriesID || pos.Season < 0 || pos.Episode < 0 {
		return Position{}, false
	}
	return pos, true
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, seriesID string) (Position, bool, error) {
	s.mu.RLock()
	raw, ok := s.data[seriesID]
	s.mu.RUnlock()
	if !ok {
		return Position{}, false, nil
	}
	pos, ok := decodePosition(seriesID, raw)
	return pos, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, pos Position) error {
	raw, err := json.Marshal(pos)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[pos.SeriesID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, seriesID string) error {
	s.mu.Lock()
	delete(s.data, seriesID)
	s.mu.Unlock()
	return nil
}

