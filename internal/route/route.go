// Package route parses and formats the browser's navigable addresses.
//
// Supported shapes:
//
//	/                               home
//	/search/{keyword}               search across movies and series
//	/{category}                     catalog, optional ?genre={id}
//	/{category}/type/{type}         catalog listing slice
//	/{category}/search/{keyword}    catalog search
//	/{category}/{id}                detail
package route

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vmunix/marquee/internal/tmdb"
)

// ErrInvalidAddress is returned for paths that match no route.
var ErrInvalidAddress = errors.New("invalid address")

// Kind identifies which view an address opens.
type Kind int

const (
	KindHome Kind = iota
	KindMultiSearch
	KindCatalog
	KindDetail
)

func (k Kind) String() string {
	switch k {
	case KindMultiSearch:
		return "multi_search"
	case KindCatalog:
		return "catalog"
	case KindDetail:
		return "detail"
	default:
		return "home"
	}
}

// Address is a parsed navigable address.
type Address struct {
	Category tmdb.Category    // empty for home and multi search
	Type     tmdb.ContentType // catalog listing slice
	Keyword  string           // search keyword
	ID       string           // raw detail id; validated by the detail view
	GenreID  int              // ?genre= on catalog addresses
}

// Catalog returns the plain catalog address for a category.
func Catalog(cat tmdb.Category) Address {
	return Address{Category: cat}
}

// Search returns the catalog search address. An empty category means multi search.
func Search(cat tmdb.Category, keyword string) Address {
	return Address{Category: cat, Keyword: keyword}
}

// Kind reports which view the address opens.
func (a Address) Kind() Kind {
	switch {
	case a.Category == "" && a.Keyword != "":
		return KindMultiSearch
	case a.Category == "":
		return KindHome
	case a.ID != "":
		return KindDetail
	default:
		return KindCatalog
	}
}

// IsSearch reports whether the address is a search page.
func (a Address) IsSearch() bool {
	return a.Keyword != ""
}

// WithGenre returns a copy carrying the genre indicator.
func (a Address) WithGenre(id int) Address {
	a.GenreID = id
	return a
}

// WithoutGenre returns a copy with the genre indicator dropped.
func (a Address) WithoutGenre() Address {
	a.GenreID = 0
	return a
}

// Parent returns the catalog address a detail page belongs to.
func (a Address) Parent() Address {
	if a.Category == "" {
		return Address{}
	}
	return Catalog(a.Category)
}

// Title returns the page heading for catalog addresses.
func (a Address) Title() string {
	switch a.Kind() {
	case KindCatalog:
		if a.Type != "" {
			return a.Type.Label() + " " + a.Category.Label()
		}
		return a.Category.Label()
	case KindMultiSearch:
		return fmt.Sprintf("Results for %q", a.Keyword)
	default:
		return ""
	}
}

// String formats the address as a path with optional query.
func (a Address) String() string {
	var path string
	switch a.Kind() {
	case KindHome:
		return "/"
	case KindMultiSearch:
		return "/search/" + url.PathEscape(a.Keyword)
	case KindDetail:
		return "/" + string(a.Category) + "/" + url.PathEscape(a.ID)
	}

	switch {
	case a.Keyword != "":
		path = "/" + string(a.Category) + "/search/" + url.PathEscape(a.Keyword)
	case a.Type != "":
		path = "/" + string(a.Category) + "/type/" + string(a.Type)
	default:
		path = "/" + string(a.Category)
	}

	if a.GenreID != 0 {
		path += "?genre=" + strconv.Itoa(a.GenreID)
	}
	return path
}

// Parse parses a navigable address. A genre parameter that is not a positive
// integer is dropped; whether the genre exists is decided by the catalog.
func Parse(raw string) (Address, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	segments := splitPath(u.EscapedPath())
	for i, s := range segments {
		if segments[i], err = url.PathUnescape(s); err != nil {
			return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
	}

	if len(segments) == 0 {
		return Address{}, nil
	}

	if segments[0] == "search" {
		if len(segments) != 2 || strings.TrimSpace(segments[1]) == "" {
			return Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
		}
		return Address{Keyword: segments[1]}, nil
	}

	cat, err := tmdb.ParseCategory(segments[0])
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	addr := Address{Category: cat}

	switch len(segments) {
	case 1:
		// Plain catalog
	case 2:
		addr.ID = segments[1]
		return addr, nil
	case 3:
		switch segments[1] {
		case "type":
			typ := tmdb.ContentType(segments[2])
			if !typ.ValidFor(cat) {
				return Address{}, fmt.Errorf("%w: %s has no %q listing", ErrInvalidAddress, cat, typ)
			}
			addr.Type = typ
		case "search":
			if strings.TrimSpace(segments[2]) == "" {
				return Address{}, fmt.Errorf("%w: empty keyword", ErrInvalidAddress)
			}
			addr.Keyword = segments[2]
		default:
			return Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
		}
	default:
		return Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, raw)
	}

	if g := u.Query().Get("genre"); g != "" {
		if id, err := strconv.Atoi(g); err == nil && id > 0 {
			addr.GenreID = id
		}
	}
	return addr, nil
}

func splitPath(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
