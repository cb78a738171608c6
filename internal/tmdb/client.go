package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org"
	defaultLanguage     = "en-US"
	defaultReferenceTTL = 24 * time.Hour
)

// Client is a TMDB v3 API client. All operations are read-only.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	reference  *cache
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguage sets the response language (default en-US).
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// WithReferenceTTL sets how long genre and country lists are kept.
// Zero disables the cache.
func WithReferenceTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.reference = newCache(ttl)
	}
}

// WithLogger sets a logger for debug output. A nil logger disables it.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log == nil {
			c.log = nil
			return
		}
		c.log = log.With("component", "tmdb")
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		language: defaultLanguage,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		reference: newCache(defaultReferenceTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DiscoverParams selects content by genre and/or origin country.
type DiscoverParams struct {
	GenreID int    // 0 = any
	Country string // ISO 3166-1, "" = any
}

// List fetches a listing slice such as popular or top_rated.
func (c *Client) List(ctx context.Context, cat Category, typ ContentType, page int) (*Page, error) {
	var p Page
	path := fmt.Sprintf("/%s/%s", cat, typ)
	if err := c.get(ctx, path, pageParams(page), &p); err != nil {
		return nil, fmt.Errorf("list %s %s: %w", cat, typ, err)
	}
	return &p, nil
}

// Discover fetches content filtered by genre and/or origin country,
// sorted by popularity.
func (c *Client) Discover(ctx context.Context, cat Category, dp DiscoverParams, page int) (*Page, error) {
	params := pageParams(page)
	params.Set("include_adult", "false")
	params.Set("include_video", "false")
	params.Set("sort_by", "popularity.desc")
	if dp.GenreID != 0 {
		params.Set("with_genres", strconv.Itoa(dp.GenreID))
	}
	if dp.Country != "" {
		params.Set("with_origin_country", dp.Country)
	}

	var p Page
	if err := c.get(ctx, "/discover/"+string(cat), params, &p); err != nil {
		return nil, fmt.Errorf("discover %s: %w", cat, err)
	}
	return &p, nil
}

// Search runs a free-text search within one category.
func (c *Client) Search(ctx context.Context, cat Category, query string, page int) (*Page, error) {
	params := pageParams(page)
	params.Set("query", query)

	var p Page
	if err := c.get(ctx, "/search/"+string(cat), params, &p); err != nil {
		return nil, fmt.Errorf("search %s: %w", cat, err)
	}
	return &p, nil
}

// SearchMulti searches movies and series together. Person results are dropped.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*Page, error) {
	params := pageParams(page)
	params.Set("query", query)

	var p Page
	if err := c.get(ctx, "/search/multi", params, &p); err != nil {
		return nil, fmt.Errorf("search multi: %w", err)
	}

	kept := p.Results[:0]
	for _, item := range p.Results {
		if item.MediaType == string(Movie) || item.MediaType == string(TV) {
			kept = append(kept, item)
		}
	}
	p.Results = kept
	return &p, nil
}

// Genres returns the genre list for a category (cached).
func (c *Client) Genres(ctx context.Context, cat Category) ([]Genre, error) {
	key := "genres:" + string(cat)
	if v, ok := c.reference.get(key); ok {
		return append([]Genre(nil), v.([]Genre)...), nil
	}

	var resp struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.get(ctx, fmt.Sprintf("/genre/%s/list", cat), nil, &resp); err != nil {
		return nil, fmt.Errorf("genres %s: %w", cat, err)
	}

	c.reference.set(key, resp.Genres)
	return append([]Genre(nil), resp.Genres...), nil
}

// Countries returns the origin-country list (cached).
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	const key = "countries"
	if v, ok := c.reference.get(key); ok {
		return append([]Country(nil), v.([]Country)...), nil
	}

	var countries []Country
	if err := c.get(ctx, "/configuration/countries", nil, &countries); err != nil {
		return nil, fmt.Errorf("countries: %w", err)
	}

	c.reference.set(key, countries)
	return append([]Country(nil), countries...), nil
}

// Detail fetches the full record for a movie or series.
func (c *Client) Detail(ctx context.Context, cat Category, id int64) (*Detail, error) {
	var d Detail
	if err := c.get(ctx, fmt.Sprintf("/%s/%d", cat, id), nil, &d); err != nil {
		return nil, fmt.Errorf("detail %s %d: %w", cat, id, err)
	}
	return &d, nil
}

// Videos lists trailers, teasers and clips for a title.
func (c *Client) Videos(ctx context.Context, cat Category, id int64) ([]Video, error) {
	var resp struct {
		Results []Video `json:"results"`
	}
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/videos", cat, id), nil, &resp); err != nil {
		return nil, fmt.Errorf("videos %s %d: %w", cat, id, err)
	}
	return resp.Results, nil
}

// Season fetches one season of a series with its episodes.
func (c *Client) Season(ctx context.Context, seriesID int64, number int) (*Season, error) {
	var s Season
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", seriesID, number), nil, &s); err != nil {
		return nil, fmt.Errorf("season %d of %d: %w", number, seriesID, err)
	}
	return &s, nil
}

// Similar lists titles similar to the given one.
func (c *Client) Similar(ctx context.Context, cat Category, id int64, page int) (*Page, error) {
	var p Page
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/similar", cat, id), pageParams(page), &p); err != nil {
		return nil, fmt.Errorf("similar %s %d: %w", cat, id, err)
	}
	return &p, nil
}

// Credits fetches the cast of a title.
func (c *Client) Credits(ctx context.Context, cat Category, id int64) (*Credits, error) {
	var cr Credits
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/credits", cat, id), nil, &cr); err != nil {
		return nil, fmt.Errorf("credits %s %d: %w", cat, id, err)
	}
	return &cr, nil
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	return params
}

// get performs a GET against /3{path} and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	endpoint := c.baseURL + "/3" + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if c.log != nil {
		c.log.Debug("tmdb request", "path", path, "page", params.Get("page"))
	}

	// Execute
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Handle errors
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Path: path}
		var body struct {
			StatusMessage string `json:"status_message"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.StatusMessage
		}
		return apiErr
	}

	// Decode
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrNetwork, err)
	}
	return nil
}
