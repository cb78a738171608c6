// Package tmdb provides a client for The Movie Database API.
package tmdb

import (
	"fmt"
	"strconv"
)

// Category partitions content into movies and TV series.
type Category string

const (
	Movie Category = "movie"
	TV    Category = "tv"
)

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Movie, TV:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// Label returns the human-readable plural name.
func (c Category) Label() string {
	if c == Movie {
		return "Movies"
	}
	return "TV Series"
}

// ContentType is a TMDB listing slice (popular, top rated, ...).
type ContentType string

const (
	Popular    ContentType = "popular"
	TopRated   ContentType = "top_rated"
	NowPlaying ContentType = "now_playing"
	Upcoming   ContentType = "upcoming"
	OnTheAir   ContentType = "on_the_air"
)

var typesByCategory = map[Category][]ContentType{
	Movie: {Popular, TopRated, NowPlaying, Upcoming},
	TV:    {Popular, TopRated, OnTheAir},
}

// TypesFor returns the content types TMDB serves for a category.
func TypesFor(c Category) []ContentType {
	return append([]ContentType(nil), typesByCategory[c]...)
}

// ValidFor reports whether the type can be listed for the category.
func (t ContentType) ValidFor(c Category) bool {
	for _, v := range typesByCategory[c] {
		if v == t {
			return true
		}
	}
	return false
}

// Label returns the human-readable name used in page titles.
func (t ContentType) Label() string {
	switch t {
	case TopRated:
		return "Top Rated"
	case NowPlaying:
		return "Now Playing"
	case Upcoming:
		return "Upcoming"
	case OnTheAir:
		return "On The Air"
	default:
		return "Popular"
	}
}

// Genre is a category-scoped genre. IDs are not shared between movie and tv.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Country is an origin country (ISO 3166-1).
type Country struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"english_name"`
}

// Item is a single result in a listing page.
type Item struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title,omitempty"` // movies
	Name         string  `json:"name,omitempty"`  // tv
	Overview     string  `json:"overview,omitempty"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`   // "2024-03-01"
	FirstAirDate string  `json:"first_air_date,omitempty"` // "2011-04-17"
	MediaType    string  `json:"media_type,omitempty"`     // multi search only
}

// DisplayTitle returns the movie title or series name.
func (i Item) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// Date returns the release or first air date.
func (i Item) Date() string {
	if i.ReleaseDate != "" {
		return i.ReleaseDate
	}
	return i.FirstAirDate
}

// Year extracts the year from Date, or 0 if unknown.
func (i Item) Year() int {
	return yearOf(i.Date())
}

// HasArtwork reports whether the item has a poster or a backdrop.
func (i Item) HasArtwork() bool {
	return i.PosterPath != "" || i.BackdropPath != ""
}

// Page is one page of listing results.
type Page struct {
	Results      []Item `json:"results"`
	Page         int    `json:"page"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// Detail is the full record for a movie or series.
type Detail struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title,omitempty"`
	Name         string          `json:"name,omitempty"`
	Overview     string          `json:"overview"`
	Tagline      string          `json:"tagline,omitempty"`
	PosterPath   string          `json:"poster_path"`
	BackdropPath string          `json:"backdrop_path"`
	VoteAverage  float64         `json:"vote_average"`
	ReleaseDate  string          `json:"release_date,omitempty"`
	FirstAirDate string          `json:"first_air_date,omitempty"`
	Runtime      int             `json:"runtime,omitempty"` // minutes, movies only
	Genres       []Genre         `json:"genres"`
	Seasons      []SeasonSummary `json:"seasons,omitempty"` // tv only
}

// DisplayTitle returns the movie title or series name.
func (d *Detail) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Year extracts the year from the release or first air date.
func (d *Detail) Year() int {
	if d.ReleaseDate != "" {
		return yearOf(d.ReleaseDate)
	}
	return yearOf(d.FirstAirDate)
}

// SeasonSummary is a season entry embedded in a series detail.
type SeasonSummary struct {
	ID           int64  `json:"id"`
	SeasonNumber int    `json:"season_number"` // 0 = specials
	EpisodeCount int    `json:"episode_count"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path,omitempty"`
	AirDate      string `json:"air_date,omitempty"`
}

// Season is a season with its episode list.
type Season struct {
	ID           int64     `json:"id"`
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	PosterPath   string    `json:"poster_path,omitempty"`
	AirDate      string    `json:"air_date,omitempty"`
	Episodes     []Episode `json:"episodes"`
}

// Episode is a single series episode.
type Episode struct {
	ID            int64  `json:"id"`
	EpisodeNumber int    `json:"episode_number"`
	SeasonNumber  int    `json:"season_number"`
	Name          string `json:"name"`
	Overview      string `json:"overview,omitempty"`
	StillPath     string `json:"still_path,omitempty"`
	AirDate       string `json:"air_date,omitempty"`
	Runtime       int    `json:"runtime,omitempty"` // minutes, 0 if unknown
}

// Video is a trailer, teaser or clip attached to a title.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"` // "YouTube", "Vimeo"
	Type     string `json:"type"` // "Trailer", "Teaser", "Clip"
	Official bool   `json:"official"`
}

// CastMember is one credited actor.
type CastMember struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

// Credits holds the cast of a title.
type Credits struct {
	Cast []CastMember `json:"cast"`
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
