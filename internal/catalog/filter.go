// Package catalog resolves browse filters into queries and paginates their results.
package catalog

import (
	"errors"
	"strings"

	"github.com/vmunix/marquee/internal/tmdb"
)

// ErrInvalidType is returned when a content type is not offered for a category.
var ErrInvalidType = errors.New("content type not valid for category")

// Mode is the query mode a filter resolves to.
type Mode int

// Modes, ordered by precedence lowest first.
const (
	ModeDefault Mode = iota
	ModeDiscover
	ModeType
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeDiscover:
		return "discover"
	case ModeType:
		return "type"
	case ModeSearch:
		return "search"
	default:
		return "default"
	}
}

// Filter is the user-selected browse state of one view.
type Filter struct {
	Category tmdb.Category    // empty only for multi search
	Type     tmdb.ContentType // explicit listing slice
	GenreID  int              // 0 = none
	Country  string           // ISO 3166-1 code, "" = none
	Keyword  string
}

// Query is the resolved request. Two queries are equal exactly when they
// fetch the same pages.
type Query struct {
	Mode     Mode
	Category tmdb.Category
	Type     tmdb.ContentType
	Keyword  string
	GenreID  int
	Country  string
}

// Resolution is the result of Resolve.
type Resolution struct {
	Query Query
	// GenreCleared is set when the filter's genre is not in the category's
	// genre list. The caller must drop the genre from its filter and address.
	GenreCleared bool
}

// Resolve picks the single query mode for f. Precedence: a non-blank keyword
// searches; an explicit type valid for the category lists that type; a genre
// or country discovers; anything else lists popular titles.
//
// genres is the category's genre list. A nil slice means the list is not
// known yet: the genre is neither applied nor cleared.
func Resolve(f Filter, genres []tmdb.Genre) Resolution {
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		return Resolution{Query: Query{Mode: ModeSearch, Category: f.Category, Keyword: kw}}
	}

	if f.Type != "" && f.Type.ValidFor(f.Category) {
		return Resolution{Query: Query{Mode: ModeType, Category: f.Category, Type: f.Type}}
	}

	var res Resolution
	genreID := f.GenreID
	if genreID != 0 {
		switch {
		case genres == nil:
			genreID = 0
		case !hasGenre(genres, genreID):
			genreID = 0
			res.GenreCleared = true
		}
	}

	if genreID != 0 || f.Country != "" {
		res.Query = Query{Mode: ModeDiscover, Category: f.Category, GenreID: genreID, Country: f.Country}
		return res
	}

	res.Query = DefaultQuery(f.Category)
	return res
}

// DefaultQuery lists the category's popular titles.
func DefaultQuery(cat tmdb.Category) Query {
	return Query{Mode: ModeDefault, Category: cat, Type: tmdb.Popular}
}

func hasGenre(genres []tmdb.Genre, id int) bool {
	for _, g := range genres {
		if g.ID == id {
			return true
		}
	}
	return false
}
