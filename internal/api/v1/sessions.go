package v1

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/playback"
)

// view is one client's catalog view.
type view struct {
	id      string
	browser *catalog.Browser
	keyword *catalog.KeywordInput
	cancel  context.CancelFunc // ends debounced keyword searches
}

func (v *view) close() {
	v.keyword.Close()
	v.cancel()
}

// player is one client's playback navigator.
type player struct {
	id  string
	nav *playback.Navigator
}

// sessions holds views and players by id. Entries expire after ttl without
// access; expired views stop their pending keyword searches.
type sessions struct {
	views   *cache.Cache
	players *cache.Cache
}

func newSessions(ttl time.Duration) *sessions {
	s := &sessions{
		views:   cache.New(ttl, ttl/2),
		players: cache.New(ttl, ttl/2),
	}
	s.views.OnEvicted(func(_ string, v any) {
		v.(*view).close()
	})
	return s
}

func (s *sessions) addView(v *view) {
	s.views.SetDefault(v.id, v)
}

// view returns a view and extends its lifetime.
func (s *sessions) view(id string) (*view, bool) {
	x, ok := s.views.Get(id)
	if !ok {
		return nil, false
	}
	s.views.SetDefault(id, x)
	return x.(*view), true
}

func (s *sessions) removeView(id string) bool {
	if _, ok := s.views.Get(id); !ok {
		return false
	}
	s.views.Delete(id)
	return true
}

func (s *sessions) addPlayer(p *player) {
	s.players.SetDefault(p.id, p)
}

// player returns a player and extends its lifetime.
func (s *sessions) player(id string) (*player, bool) {
	x, ok := s.players.Get(id)
	if !ok {
		return nil, false
	}
	s.players.SetDefault(id, x)
	return x.(*player), true
}

func (s *sessions) removePlayer(id string) bool {
	if _, ok := s.players.Get(id); !ok {
		return false
	}
	s.players.Delete(id)
	return true
}

func (s *sessions) counts() (views, players int) {
	return s.views.ItemCount(), s.players.ItemCount()
}

// close evicts every view so pending work stops.
func (s *sessions) close() {
	for id := range s.views.Items() {
		s.views.Delete(id)
	}
	s.players.Flush()
}
