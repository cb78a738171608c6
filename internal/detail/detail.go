// Package detail loads the detail view of a single movie or series.
package detail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/marquee/internal/catalog"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/route"
	"github.com/vmunix/marquee/internal/tmdb"
)

// Display limits.
const (
	MaxGenres = 5
	MaxCast   = 5
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks github.com/vmunix/marquee/internal/detail Source

// Source is the subset of the TMDB client the detail view reads from.
type Source interface {
	Detail(ctx context.Context, cat tmdb.Category, id int64) (*tmdb.Detail, error)
	Similar(ctx context.Context, cat tmdb.Category, id int64, page int) (*tmdb.Page, error)
	Credits(ctx context.Context, cat tmdb.Category, id int64) (*tmdb.Credits, error)
	Trailer(ctx context.Context, cat tmdb.Category, id int64) (string, error)
}

var _ Source = (*tmdb.Client)(nil)

// Result is either a loaded item or a redirect.
type Result struct {
	Category tmdb.Category     `json:"category"`
	Item     *tmdb.Detail      `json:"item,omitempty"`
	Cast     []tmdb.CastMember `json:"cast,omitempty"`
	Similar  []tmdb.Item       `json:"similar,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
	Reason   string            `json:"reason,omitempty"`
}

// Redirected reports whether the caller must navigate to Redirect.
func (r *Result) Redirected() bool {
	return r.Redirect != ""
}

// Option configures a View.
type Option func(*View)

// WithPublisher publishes redirects tagged with viewID.
func WithPublisher(pub events.Publisher, viewID string) Option {
	return func(v *View) {
		v.pub = pub
		v.viewID = viewID
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(v *View) {
		v.log = log
	}
}

// View loads detail pages. A malformed id or a failed fetch redirects to the
// parent catalog instead of failing.
type View struct {
	src    Source
	pub    events.Publisher
	viewID string
	log    *slog.Logger
}

// NewView creates a detail view on src.
func NewView(src Source, opts ...Option) *View {
	v := &View{src: src, log: slog.Default()}
	for _, opt := range opts {
		opt(v)
	}
	v.log = v.log.With("component", "detail")
	return v
}

// ParseID parses a raw detail id. Only positive integers are valid.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", tmdb.ErrNotFound, raw)
	}
	return id, nil
}

// Load loads the item at cat/rawID with its top cast and similar titles.
// Cast and similar titles are optional; their failures are only logged.
func (v *View) Load(ctx context.Context, cat tmdb.Category, rawID string) *Result {
	from := route.Address{Category: cat, ID: rawID}

	id, err := ParseID(rawID)
	if err != nil {
		return v.redirect(ctx, from, "invalid id")
	}

	item, err := v.src.Detail(ctx, cat, id)
	if err != nil {
		v.log.Warn("load detail failed", "category", cat, "id", id, "error", err)
		reason := "unavailable"
		if errors.Is(err, tmdb.ErrNotFound) {
			reason = "not found"
		}
		return v.redirect(ctx, from, reason)
	}
	if len(item.Genres) > MaxGenres {
		item.Genres = item.Genres[:MaxGenres]
	}

	res := &Result{Category: cat, Item: item}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		credits, err := v.src.Credits(gctx, cat, id)
		if err != nil {
			v.log.Warn("load credits failed", "category", cat, "id", id, "error", err)
			return nil
		}
		cast := credits.Cast
		if len(cast) > MaxCast {
			cast = cast[:MaxCast]
		}
		res.Cast = cast
		return nil
	})
	g.Go(func() error {
		page, err := v.src.Similar(gctx, cat, id, 1)
		if err != nil {
			v.log.Warn("load similar failed", "category", cat, "id", id, "error", err)
			return nil
		}
		res.Similar = catalog.Displayable(page.Results)
		return nil
	})
	_ = g.Wait() // optional sections log their own failures

	return res
}

// Trailer returns the embed URL of the item's YouTube trailer, or
// tmdb.ErrNoTrailer when it has none. Transport failures are returned as is
// so callers can tell the two apart.
func (v *View) Trailer(ctx context.Context, cat tmdb.Category, rawID string) (string, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return "", err
	}

	url, err := v.src.Trailer(ctx, cat, id)
	switch {
	case errors.Is(err, tmdb.ErrNoTrailer):
		return "", err
	case err != nil:
		v.log.Warn("load trailer failed", "category", cat, "id", id, "error", err)
		return "", fmt.Errorf("trailer %s/%d: %w", cat, id, err)
	}
	return url, nil
}

func (v *View) redirect(ctx context.Context, from route.Address, reason string) *Result {
	to := from.Parent()
	v.log.Info("redirecting to catalog", "from", from.String(), "to", to.String(), "reason", reason)

	if v.pub != nil {
		e := &events.Redirected{
			BaseEvent: events.NewBaseEvent(events.TypeRedirected, v.viewID),
			From:      from.String(),
			To:        to.String(),
			Reason:    reason,
		}
		if err := v.pub.Publish(ctx, e); err != nil {
			v.log.Warn("publish event failed", "type", e.EventType(), "error", err)
		}
	}

	return &Result{Category: from.Category, Redirect: to.String(), Reason: reason}
}
