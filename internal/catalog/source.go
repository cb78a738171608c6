package catalog

import (
	"context"
	"fmt"

	"github.com/vmunix/marquee/internal/tmdb"
)

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks github.com/vmunix/marquee/internal/catalog Source

// Source is the subset of the TMDB client the catalog reads from.
// *tmdb.Client implements it.
type Source interface {
	List(ctx context.Context, cat tmdb.Category, typ tmdb.ContentType, page int) (*tmdb.Page, error)
	Discover(ctx context.Context, cat tmdb.Category, params tmdb.DiscoverParams, page int) (*tmdb.Page, error)
	Search(ctx context.Context, cat tmdb.Category, query string, page int) (*tmdb.Page, error)
	SearchMulti(ctx context.Context, query string, page int) (*tmdb.Page, error)
	Genres(ctx context.Context, cat tmdb.Category) ([]tmdb.Genre, error)
	Countries(ctx context.Context) ([]tmdb.Country, error)
}

var _ Source = (*tmdb.Client)(nil)

// Fetch requests one page of q from src.
func (q Query) Fetch(ctx context.Context, src Source, page int) (*tmdb.Page, error) {
	switch q.Mode {
	case ModeSearch:
		if q.Category == "" {
			return src.SearchMulti(ctx, q.Keyword, page)
		}
		return src.Search(ctx, q.Category, q.Keyword, page)
	case ModeType, ModeDefault:
		return src.List(ctx, q.Category, q.Type, page)
	case ModeDiscover:
		return src.Discover(ctx, q.Category, tmdb.DiscoverParams{GenreID: q.GenreID, Country: q.Country}, page)
	default:
		return nil, fmt.Errorf("unknown query mode %d", q.Mode)
	}
}
