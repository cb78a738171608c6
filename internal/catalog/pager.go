package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vmunix/marquee/internal/tmdb"
)

// ErrStale is returned when a response arrives after the pager moved on to a
// newer query. The response is discarded.
var ErrStale = errors.New("stale page response")

// Snapshot is a copy of the pager state.
type Snapshot struct {
	Query        Query
	Items        []tmdb.Item // accumulated raw results, not display filtered
	Page         int
	TotalPages   int
	TotalResults int
	Loading      bool
}

// Pager accumulates the pages of one query. Every fetch is tagged with the
// generation active when it was issued and applied only if that generation is
// still current.
type Pager struct {
	src Source

	mu           sync.Mutex
	gen          uint64
	started      bool
	query        Query
	items        []tmdb.Item
	page         int
	totalPages   int
	totalResults int
	resetting    bool
	loadingMore  bool
}

// NewPager creates a pager reading from src.
func NewPager(src Source) *Pager {
	return &Pager{src: src}
}

// Reset replaces the accumulated list with page 1 of q. On failure the pager
// is left empty and the error is returned.
func (p *Pager) Reset(ctx context.Context, q Query) error {
	return p.Fill(ctx, p.Begin(q))
}

// Begin clears the list and makes q the current query without fetching. The
// returned generation is passed to Fill; any later Begin supersedes it.
func (p *Pager) Begin(q Query) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.started = true
	p.query = q
	p.items = nil
	p.page = 0
	p.totalPages = 0
	p.totalResults = 0
	p.resetting = true
	p.loadingMore = false
	return p.gen
}

// Fill fetches page 1 for the query started by Begin. It returns ErrStale
// when gen is no longer current, before or after the fetch.
func (p *Pager) Fill(ctx context.Context, gen uint64) error {
	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return ErrStale
	}
	q := p.query
	p.mu.Unlock()

	page, err := q.Fetch(ctx, p.src, 1)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return ErrStale
	}
	p.resetting = false
	if err != nil {
		return fmt.Errorf("fetch %s page 1: %w", q.Mode, err)
	}

	p.items = append([]tmdb.Item(nil), page.Results...)
	p.page = 1
	p.totalPages = page.TotalPages
	p.totalResults = page.TotalResults
	return nil
}

// LoadMore appends the next page of the current query. It reports whether a
// page was appended; it issues no request when there is no next page or a
// fetch is already in flight.
func (p *Pager) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if !p.started || p.resetting || p.loadingMore || p.page >= p.totalPages {
		p.mu.Unlock()
		return false, nil
	}
	gen := p.gen
	q := p.query
	next := p.page + 1
	p.loadingMore = true
	p.mu.Unlock()

	page, err := q.Fetch(ctx, p.src, next)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		return false, ErrStale
	}
	p.loadingMore = false
	if err != nil {
		return false, fmt.Errorf("fetch %s page %d: %w", q.Mode, next, err)
	}

	p.items = append(p.items, page.Results...)
	p.page = next
	return true, nil
}

// HasMore reports whether a next page exists.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started && p.page < p.totalPages
}

// Snapshot returns a copy of the current state.
func (p *Pager) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Query:        p.query,
		Items:        append([]tmdb.Item(nil), p.items...),
		Page:         p.page,
		TotalPages:   p.totalPages,
		TotalResults: p.totalResults,
		Loading:      p.resetting || p.loadingMore,
	}
}
