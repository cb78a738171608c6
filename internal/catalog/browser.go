package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/route"
	"github.com/vmunix/marquee/internal/tmdb"
)

// State is what a catalog view renders.
type State struct {
	Address      string         `json:"address"`
	Title        string         `json:"title"`
	Category     tmdb.Category  `json:"category,omitempty"`
	Type         string         `json:"type,omitempty"`
	Keyword      string         `json:"keyword,omitempty"`
	GenreID      int            `json:"genre_id,omitempty"`
	Country      string         `json:"country,omitempty"`
	Mode         string         `json:"mode"`
	Items        []tmdb.Item    `json:"items"`
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
	HasMore      bool           `json:"has_more"`
	Loading      bool           `json:"loading"`
	Genres       []tmdb.Genre   `json:"genres,omitempty"`
	Countries    []tmdb.Country `json:"countries,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// Option configures a Browser.
type Option func(*Browser)

// WithPublisher publishes view events tagged with viewID.
func WithPublisher(pub events.Publisher, viewID string) Option {
	return func(b *Browser) {
		b.pub = pub
		b.viewID = viewID
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(b *Browser) {
		b.log = log
	}
}

// WithCountry preselects an origin country for the view loaded by Open, so
// the first list request already filters by it.
func WithCountry(code string) Option {
	return func(b *Browser) {
		b.openCountry = strings.ToUpper(strings.TrimSpace(code))
	}
}

// Browser is the state machine behind one catalog or search view. Fetch
// failures are logged and leave the view with an empty or prior list.
type Browser struct {
	src    Source
	pager  *Pager
	pub    events.Publisher
	viewID string
	log    *slog.Logger

	openCountry string

	mu        sync.Mutex
	addr      route.Address
	filter    Filter
	genres    []tmdb.Genre // nil until loaded
	countries []tmdb.Country
	resolved  bool
	last      Query
	lastErr   error
}

// NewBrowser creates a browser reading from src.
func NewBrowser(src Source, opts ...Option) *Browser {
	b := &Browser{
		src:   src,
		pager: NewPager(src),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With("component", "catalog")
	return b
}

// Open loads the view for a catalog or search address.
func (b *Browser) Open(ctx context.Context, addr route.Address) error {
	switch addr.Kind() {
	case route.KindCatalog, route.KindMultiSearch:
	default:
		return fmt.Errorf("%w: %s is not a catalog address", route.ErrInvalidAddress, addr)
	}

	b.mu.Lock()
	b.addr = addr
	b.filter = Filter{
		Category: addr.Category,
		Type:     addr.Type,
		GenreID:  addr.GenreID,
		Keyword:  addr.Keyword,
		Country:  b.openCountry,
	}
	b.genres = nil
	b.countries = nil
	b.resolved = false
	b.mu.Unlock()

	b.loadReference(ctx, addr.Category, true)
	b.refresh(ctx, true)
	return nil
}

// SetCategory switches the category. Genre and country selections are kept
// and the genre is re-validated against the new category's genres.
func (b *Browser) SetCategory(ctx context.Context, cat tmdb.Category) error {
	if _, err := tmdb.ParseCategory(string(cat)); err != nil {
		return err
	}

	b.mu.Lock()
	b.filter.Category = cat
	b.filter.Type = ""
	b.filter.Keyword = ""
	b.addr = route.Catalog(cat).WithGenre(b.filter.GenreID)
	b.genres = nil
	b.mu.Unlock()

	b.loadReference(ctx, cat, false)
	b.refresh(ctx, false)
	return nil
}

// SetType switches to an explicit listing slice. An empty type returns to
// genre/country browsing.
func (b *Browser) SetType(ctx context.Context, typ tmdb.ContentType) error {
	b.mu.Lock()
	cat := b.filter.Category
	if typ != "" && !typ.ValidFor(cat) {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s/%s", ErrInvalidType, cat, typ)
	}
	b.filter.Type = typ
	b.filter.Keyword = ""
	b.addr = route.Address{Category: cat, Type: typ, GenreID: b.filter.GenreID}
	b.mu.Unlock()

	b.refresh(ctx, false)
	return nil
}

// SetKeyword applies a search keyword. A non-blank keyword moves to the
// search address; a blank keyword leaves search for the catalog address and
// does nothing anywhere else.
func (b *Browser) SetKeyword(ctx context.Context, keyword string) error {
	b.mu.Lock()
	target, ok := KeywordTarget(b.addr, keyword)
	if !ok {
		b.mu.Unlock()
		return nil
	}
	b.addr = target.WithGenre(b.filter.GenreID)
	b.filter.Keyword = target.Keyword
	b.filter.Type = ""
	b.mu.Unlock()

	b.refresh(ctx, false)
	return nil
}

// SelectGenre selects a genre id; 0 clears the selection.
func (b *Browser) SelectGenre(ctx context.Context, id int) error {
	if id < 0 {
		return fmt.Errorf("invalid genre id %d", id)
	}

	b.mu.Lock()
	b.filter.GenreID = id
	b.addr = b.addr.WithGenre(id)
	b.mu.Unlock()

	b.refresh(ctx, false)
	return nil
}

// SelectCountry selects an origin country code; "" clears the selection.
func (b *Browser) SelectCountry(ctx context.Context, code string) error {
	b.mu.Lock()
	b.filter.Country = strings.ToUpper(strings.TrimSpace(code))
	b.mu.Unlock()

	b.refresh(ctx, false)
	return nil
}

// Refresh re-resolves the filter. The list is only reloaded when the
// resolved query changed.
func (b *Browser) Refresh(ctx context.Context) {
	b.refresh(ctx, false)
}

// Reload refetches reference lists that failed to load and page 1 of the
// current query.
func (b *Browser) Reload(ctx context.Context) {
	b.mu.Lock()
	cat := b.filter.Category
	missing := b.genres == nil || b.countries == nil
	b.mu.Unlock()

	if missing {
		b.loadReference(ctx, cat, true)
	}
	b.refresh(ctx, true)
}

// LoadMore appends the next page. It reports whether a page was appended.
func (b *Browser) LoadMore(ctx context.Context) bool {
	ok, err := b.pager.LoadMore(ctx)
	switch {
	case errors.Is(err, ErrStale):
		return false
	case err != nil:
		b.log.Warn("load more failed", "error", err)
		b.setErr(err)
		return false
	case !ok:
		return false
	}

	b.setErr(nil)
	snap := b.pager.Snapshot()
	b.publish(ctx, &events.PageAppended{
		BaseEvent:  events.NewBaseEvent(events.TypePageAppended, b.viewID),
		Page:       snap.Page,
		TotalPages: snap.TotalPages,
		Count:      len(snap.Items),
	})
	return true
}

// Address returns the current navigable address.
func (b *Browser) Address() route.Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addr
}

// Filter returns the current filter.
func (b *Browser) Filter() Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// State returns what the view renders. Items are display filtered.
func (b *Browser) State() State {
	snap := b.pager.Snapshot()

	b.mu.Lock()
	defer b.mu.Unlock()

	st := State{
		Address:      b.addr.String(),
		Title:        b.addr.Title(),
		Category:     b.filter.Category,
		Type:         string(b.filter.Type),
		Keyword:      b.filter.Keyword,
		GenreID:      b.filter.GenreID,
		Country:      b.filter.Country,
		Mode:         snap.Query.Mode.String(),
		Items:        Displayable(snap.Items),
		Page:         snap.Page,
		TotalPages:   snap.TotalPages,
		TotalResults: snap.TotalResults,
		HasMore:      snap.Page < snap.TotalPages,
		Loading:      snap.Loading,
		Genres:       append([]tmdb.Genre(nil), b.genres...),
		Countries:    append([]tmdb.Country(nil), b.countries...),
	}
	if b.lastErr != nil {
		st.Error = b.lastErr.Error()
	}
	return st
}

func (b *Browser) loadReference(ctx context.Context, cat tmdb.Category, withCountries bool) {
	var genres []tmdb.Genre
	var countries []tmdb.Country

	g, gctx := errgroup.WithContext(ctx)
	if cat != "" {
		g.Go(func() error {
			list, err := b.src.Genres(gctx, cat)
			if err != nil {
				b.log.Warn("load genres failed", "category", cat, "error", err)
				return nil
			}
			genres = list
			if genres == nil {
				genres = []tmdb.Genre{}
			}
			return nil
		})
	}
	if withCountries {
		g.Go(func() error {
			list, err := b.src.Countries(gctx)
			if err != nil {
				b.log.Warn("load countries failed", "error", err)
				return nil
			}
			countries = list
			return nil
		})
	}
	_ = g.Wait() // failures are logged per list

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.filter.Category != cat {
		return
	}
	if genres != nil {
		b.genres = genres
	}
	if countries != nil {
		b.countries = countries
	}
}

func (b *Browser) refresh(ctx context.Context, force bool) {
	b.mu.Lock()
	res := Resolve(b.filter, b.genres)
	clearedID := 0
	if res.GenreCleared {
		clearedID = b.filter.GenreID
		b.filter.GenreID = 0
		b.addr = b.addr.WithoutGenre()
	}
	q := res.Query
	unchanged := b.resolved && q == b.last
	b.last = q
	b.resolved = true
	addr := b.addr
	load := force || !unchanged
	var gen uint64
	if load {
		// the pager generation must follow resolution order
		gen = b.pager.Begin(q)
	}
	b.mu.Unlock()

	if clearedID != 0 {
		b.log.Info("genre not valid for category, cleared", "category", q.Category, "genre_id", clearedID)
		b.publish(ctx, &events.GenreCleared{
			BaseEvent: events.NewBaseEvent(events.TypeGenreCleared, b.viewID),
			Category:  string(q.Category),
			GenreID:   clearedID,
			Address:   addr.String(),
		})
	}

	if !load {
		return
	}

	err := b.pager.Fill(ctx, gen)
	switch {
	case errors.Is(err, ErrStale):
		return
	case err != nil:
		b.log.Warn("load list failed", "category", q.Category, "mode", q.Mode.String(), "error", err)
		b.setErr(err)
		return
	}

	b.setErr(nil)
	snap := b.pager.Snapshot()
	b.log.Debug("list loaded", "category", q.Category, "mode", q.Mode.String(), "total_pages", snap.TotalPages)
	b.publish(ctx, &events.ListReplaced{
		BaseEvent:  events.NewBaseEvent(events.TypeListReplaced, b.viewID),
		Category:   string(q.Category),
		Mode:       q.Mode.String(),
		TotalPages: snap.TotalPages,
		Count:      len(snap.Items),
	})
}

func (b *Browser) setErr(err error) {
	b.mu.Lock()
	b.lastErr = err
	b.mu.Unlock()
}

func (b *Browser) publish(ctx context.Context, e events.Event) {
	if b.pub == nil {
		return
	}
	if err := b.pub.Publish(ctx, e); err != nil {
		b.log.Warn("publish event failed", "type", e.EventType(), "error", err)
	}
}
