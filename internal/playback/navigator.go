package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/tmdb"
)

var (
	// ErrNoSeasons is returned for a series without regular seasons.
	ErrNoSeasons = errors.New("series has no seasons")
	// ErrUnknownSeason is returned when selecting a season the series lacks.
	ErrUnknownSeason = errors.New("unknown season")
	// ErrNoEpisode is returned when an episode cannot be selected or reached.
	ErrNoEpisode = errors.New("no such episode")
	// ErrStale is returned when a season fetch was superseded by a newer one.
	ErrStale = errors.New("stale season response")
)

//go:generate mockgen -destination=mocks/mock_season_source.go -package=mocks github.com/vmunix/marquee/internal/playback SeasonSource

// SeasonSource fetches a season's episode list. *tmdb.Client implements it.
type SeasonSource interface {
	Season(ctx context.Context, seriesID int64, number int) (*tmdb.Season, error)
}

var _ SeasonSource = (*tmdb.Client)(nil)

// Phase is the selection state of a navigator.
type Phase int

const (
	NoSelection Phase = iota
	SeasonSelected
	EpisodeSelected
)

func (p Phase) String() string {
	switch p {
	case SeasonSelected:
		return "season_selected"
	case EpisodeSelected:
		return "episode_selected"
	default:
		return "no_selection"
	}
}

// State is what a player renders.
type State struct {
	Kind            tmdb.Category  `json:"kind"`
	ID              int64          `json:"id"`
	Phase           string         `json:"phase"`
	Seasons         []int          `json:"seasons,omitempty"`
	Season          int            `json:"season,omitempty"`
	Episode         int            `json:"episode,omitempty"`
	Episodes        []tmdb.Episode `json:"episodes,omitempty"`
	LoadingEpisodes bool           `json:"loading_episodes"`
	Server          int            `json:"server"`
	Servers         []string       `json:"servers"`
	URL             string         `json:"url,omitempty"`
	HasNext         bool           `json:"has_next"`
	HasPrevious     bool           `json:"has_previous"`
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithPublisher publishes player events tagged with viewID.
func WithPublisher(pub events.Publisher, viewID string) Option {
	return func(n *Navigator) {
		n.pub = pub
		n.viewID = viewID
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(n *Navigator) {
		n.log = log
	}
}

// Navigator is the player state machine for one title. Movies have a single
// implicit episode and no season navigation.
type Navigator struct {
	kind    tmdb.Category
	id      int64
	key     string
	seasons []tmdb.SeasonSummary // regular seasons, ascending
	mirrors Mirrors
	src     SeasonSource
	store   Store
	pub     events.Publisher
	viewID  string
	log     *slog.Logger

	mu       sync.Mutex
	gen      uint64
	phase    Phase
	season   int
	episode  int
	episodes []tmdb.Episode
	loading  bool
	server   int
	url      string
}

// NewSeriesNavigator creates a navigator for a series. Season 0 (specials)
// is not selectable. store may be nil to disable resume.
func NewSeriesNavigator(series *tmdb.Detail, src SeasonSource, store Store, mirrors Mirrors, opts ...Option) (*Navigator, error) {
	var seasons []tmdb.SeasonSummary
	for _, s := range series.Seasons {
		if s.SeasonNumber > 0 {
			seasons = append(seasons, s)
		}
	}
	if len(seasons) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoSeasons, series.ID)
	}
	sort.Slice(seasons, func(i, j int) bool { return seasons[i].SeasonNumber < seasons[j].SeasonNumber })

	n := newNavigator(tmdb.TV, series.ID, mirrors, opts)
	n.seasons = seasons
	n.src = src
	n.store = store
	return n, nil
}

// NewMovieNavigator creates a navigator for a movie.
func NewMovieNavigator(id int64, mirrors Mirrors, opts ...Option) *Navigator {
	return newNavigator(tmdb.Movie, id, mirrors, opts)
}

func newNavigator(kind tmdb.Category, id int64, mirrors Mirrors, opts []Option) *Navigator {
	n := &Navigator{
		kind:    kind,
		id:      id,
		key:     strconv.FormatInt(id, 10),
		mirrors: mirrors,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = n.log.With("component", "playback", "kind", kind, "id", id)
	return n
}

// Start initializes a series: the stored position when one exists for this
// series, else the first regular season with no episode selected. Movies
// start with nothing selected. A failed episode fetch is not an error; the
// season is left selected with an empty episode list.
func (n *Navigator) Start(ctx context.Context) error {
	if n.kind != tmdb.TV {
		return nil
	}

	var pos Position
	var ok bool
	if n.store != nil {
		var err error
		pos, ok, err = n.store.Get(ctx, n.key)
		if err != nil {
			n.log.Warn("read resume position failed", "error", err)
			ok = false
		}
	}

	if !ok || !n.hasSeason(pos.Season) {
		season := n.seasons[0].SeasonNumber
		if err := n.loadSeason(ctx, season); err != nil {
			// season stays selected with no episodes until SelectSeason retries
			return nil
		}
		n.persist(ctx, Position{SeriesID: n.key, Season: season})
		return nil
	}

	if err := n.loadSeason(ctx, pos.Season); err != nil {
		return nil
	}
	if pos.Episode == 0 {
		return nil
	}

	n.mu.Lock()
	if !hasEpisode(n.episodes, pos.Episode) {
		n.mu.Unlock()
		n.log.Debug("stored episode no longer listed", "season", pos.Season, "episode", pos.Episode)
		return nil
	}
	url, err := n.selectLocked(pos.Episode)
	n.mu.Unlock()
	if err != nil {
		return err
	}
	n.publishSource(ctx, pos.Season, pos.Episode, url)
	return nil
}

// Play starts playback on server 0. A series plays the first episode of the
// selected season unless an episode is already selected.
func (n *Navigator) Play(ctx context.Context) error {
	if n.kind != tmdb.TV {
		return n.SelectServer(ctx, 0)
	}

	n.mu.Lock()
	if n.phase == EpisodeSelected {
		n.mu.Unlock()
		return nil
	}
	if n.loading || len(n.episodes) == 0 {
		n.mu.Unlock()
		return fmt.Errorf("%w: season %d has no loaded episodes", ErrNoEpisode, n.season)
	}
	n.server = 0
	first := n.episodes[0].EpisodeNumber
	n.mu.Unlock()

	return n.SelectEpisode(ctx, first)
}

// SelectSeason switches season. The episode selection is cleared until the
// season's episodes are loaded and one is picked.
func (n *Navigator) SelectSeason(ctx context.Context, season int) error {
	if n.kind != tmdb.TV {
		return fmt.Errorf("%w: movies have no seasons", ErrUnknownSeason)
	}
	if !n.hasSeason(season) {
		return fmt.Errorf("%w: %d", ErrUnknownSeason, season)
	}
	if err := n.loadSeason(ctx, season); err != nil {
		return err
	}
	n.persist(ctx, Position{SeriesID: n.key, Season: season})
	return nil
}

// SelectEpisode selects an episode of the loaded season and resolves its URL.
func (n *Navigator) SelectEpisode(ctx context.Context, episode int) error {
	if n.kind != tmdb.TV {
		return fmt.Errorf("%w: movies have no episodes", ErrNoEpisode)
	}

	n.mu.Lock()
	if n.phase == NoSelection || n.loading || !hasEpisode(n.episodes, episode) {
		season := n.season
		n.mu.Unlock()
		return fmt.Errorf("%w: S%02dE%02d", ErrNoEpisode, season, episode)
	}
	url, err := n.selectLocked(episode)
	season := n.season
	n.mu.Unlock()
	if err != nil {
		return err
	}

	n.persist(ctx, Position{SeriesID: n.key, Season: season, Episode: episode})
	n.publishSource(ctx, season, episode, url)
	return nil
}

// SelectServer switches mirror. Season and episode are unchanged; the URL is
// re-resolved when something is playing. For movies it starts playback.
func (n *Navigator) SelectServer(ctx context.Context, server int) error {
	if _, err := n.mirrors.Get(server); err != nil {
		return err
	}

	n.mu.Lock()
	if n.kind != tmdb.TV {
		url, err := n.mirrors.MovieURL(server, n.id)
		if err != nil {
			n.mu.Unlock()
			return err
		}
		n.server = server
		n.url = url
		n.phase = EpisodeSelected
		n.mu.Unlock()
		n.publishSource(ctx, 0, 0, url)
		return nil
	}

	prev := n.server
	n.server = server
	if n.phase != EpisodeSelected {
		n.mu.Unlock()
		return nil
	}
	url, err := n.mirrors.SeriesURL(server, n.id, n.season, n.episode)
	if err != nil {
		n.server = prev
		n.mu.Unlock()
		return err
	}
	n.url = url
	season, episode := n.season, n.episode
	n.mu.Unlock()

	n.publishSource(ctx, season, episode, url)
	return nil
}

// Next moves to the following episode, crossing into the next season with
// episodes when the current one is exhausted.
func (n *Navigator) Next(ctx context.Context) error {
	return n.step(ctx, +1)
}

// Previous moves to the preceding episode, crossing into the last episode of
// the prior season when at the first.
func (n *Navigator) Previous(ctx context.Context) error {
	return n.step(ctx, -1)
}

func (n *Navigator) step(ctx context.Context, dir int) error {
	if n.kind != tmdb.TV {
		return fmt.Errorf("%w: movies have no episodes", ErrNoEpisode)
	}

	n.mu.Lock()
	if n.phase != EpisodeSelected || n.loading {
		n.mu.Unlock()
		return fmt.Errorf("%w: nothing playing", ErrNoEpisode)
	}
	if i := episodeIndex(n.episodes, n.episode) + dir; i >= 0 && i < len(n.episodes) {
		ep := n.episodes[i].EpisodeNumber
		url, err := n.selectLocked(ep)
		season := n.season
		n.mu.Unlock()
		if err != nil {
			return err
		}
		n.persist(ctx, Position{SeriesID: n.key, Season: season, Episode: ep})
		n.publishSource(ctx, season, ep, url)
		return nil
	}
	season, ok := n.adjacentSeason(n.season, dir)
	n.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: no further episodes", ErrNoEpisode)
	}
	return n.jump(ctx, season, dir < 0)
}

// jump loads season and selects its first or last episode. The current
// selection stays in place until the fetch succeeds.
func (n *Navigator) jump(ctx context.Context, season int, last bool) error {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.loading = true
	n.mu.Unlock()

	s, err := n.src.Season(ctx, n.id, season)

	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return ErrStale
	}
	n.loading = false
	if err != nil {
		n.mu.Unlock()
		n.log.Warn("load season failed", "season", season, "error", err)
		return fmt.Errorf("load season %d: %w", season, err)
	}
	if len(s.Episodes) == 0 {
		n.mu.Unlock()
		return fmt.Errorf("%w: season %d is empty", ErrNoEpisode, season)
	}

	n.season = season
	n.episodes = s.Episodes
	ep := s.Episodes[0].EpisodeNumber
	if last {
		ep = s.Episodes[len(s.Episodes)-1].EpisodeNumber
	}
	url, err := n.selectLocked(ep)
	n.mu.Unlock()
	if err != nil {
		return err
	}

	n.persist(ctx, Position{SeriesID: n.key, Season: season, Episode: ep})
	n.publishSource(ctx, season, ep, url)
	return nil
}

// HasNext reports whether Next has somewhere to go.
func (n *Navigator) HasNext() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.hasStepLocked(+1)
}

// HasPrevious reports whether Previous has somewhere to go.
func (n *Navigator) HasPrevious() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.hasStepLocked(-1)
}

func (n *Navigator) hasStepLocked(dir int) bool {
	if n.kind != tmdb.TV || n.phase != EpisodeSelected {
		return false
	}
	if i := episodeIndex(n.episodes, n.episode) + dir; i >= 0 && i < len(n.episodes) {
		return true
	}
	_, ok := n.adjacentSeason(n.season, dir)
	return ok
}

// URL returns the current viewing URL, "" when nothing is playing.
func (n *Navigator) URL() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.url
}

// State returns a copy of the player state.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()

	st := State{
		Kind:            n.kind,
		ID:              n.id,
		Phase:           n.phase.String(),
		Season:          n.season,
		Episode:         n.episode,
		Episodes:        append([]tmdb.Episode(nil), n.episodes...),
		LoadingEpisodes: n.loading,
		Server:          n.server,
		Servers:         n.mirrors.Names(),
		URL:             n.url,
		HasNext:         n.hasStepLocked(+1),
		HasPrevious:     n.hasStepLocked(-1),
	}
	for _, s := range n.seasons {
		st.Seasons = append(st.Seasons, s.SeasonNumber)
	}
	return st
}

// Phase returns the current selection phase.
func (n *Navigator) Phase() Phase {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.phase
}

// loadSeason selects season and fetches its episodes. While the fetch is
// pending no episode is selectable.
func (n *Navigator) loadSeason(ctx context.Context, season int) error {
	n.mu.Lock()
	n.gen++
	gen := n.gen
	n.phase = SeasonSelected
	n.season = season
	n.episode = 0
	n.episodes = nil
	n.url = ""
	n.loading = true
	n.mu.Unlock()

	s, err := n.src.Season(ctx, n.id, season)

	n.mu.Lock()
	defer n.mu.Unlock()
	if gen != n.gen {
		return ErrStale
	}
	n.loading = false
	if err != nil {
		n.log.Warn("load season failed", "season", season, "error", err)
		return fmt.Errorf("load season %d: %w", season, err)
	}
	n.episodes = s.Episodes
	return nil
}

// selectLocked selects episode of the loaded season. Caller holds mu.
func (n *Navigator) selectLocked(episode int) (string, error) {
	url, err := n.mirrors.SeriesURL(n.server, n.id, n.season, episode)
	if err != nil {
		return "", err
	}
	n.episode = episode
	n.phase = EpisodeSelected
	n.url = url
	return url, nil
}

// adjacentSeason returns the nearest season after (dir > 0) or before
// (dir < 0) from that has episodes.
func (n *Navigator) adjacentSeason(from, dir int) (int, bool) {
	idx := -1
	for i, s := range n.seasons {
		if s.SeasonNumber == from {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, false
	}
	for i := idx + dir; i >= 0 && i < len(n.seasons); i += dir {
		if n.seasons[i].EpisodeCount > 0 {
			return n.seasons[i].SeasonNumber, true
		}
	}
	return 0, false
}

func (n *Navigator) hasSeason(season int) bool {
	for _, s := range n.seasons {
		if s.SeasonNumber == season {
			return true
		}
	}
	return false
}

func (n *Navigator) persist(ctx context.Context, pos Position) {
	if n.store == nil {
		return
	}
	if err := n.store.Set(ctx, pos); err != nil {
		n.log.Warn("save resume position failed", "season", pos.Season, "episode", pos.Episode, "error", err)
		return
	}
	n.publish(ctx, &events.PositionSaved{
		BaseEvent: events.NewBaseEvent(events.TypePositionSaved, n.viewID),
		SeriesID:  n.id,
		Season:    pos.Season,
		Episode:   pos.Episode,
	})
}

func (n *Navigator) publishSource(ctx context.Context, season, episode int, url string) {
	n.mu.Lock()
	server := n.server
	n.mu.Unlock()

	n.publish(ctx, &events.SourceResolved{
		BaseEvent: events.NewBaseEvent(events.TypeSourceResolved, n.viewID),
		Server:    server,
		URL:       url,
		Season:    season,
		Episode:   episode,
	})
}

func (n *Navigator) publish(ctx context.Context, e events.Event) {
	if n.pub == nil {
		return
	}
	if err := n.pub.Publish(ctx, e); err != nil {
		n.log.Warn("publish event failed", "type", e.EventType(), "error", err)
	}
}

func episodeIndex(episodes []tmdb.Episode, number int) int {
	for i, e := range episodes {
		if e.EpisodeNumber == number {
			return i
		}
	}
	return -1
}

func hasEpisode(episodes []tmdb.Episode, number int) bool {
	return episodeIndex(episodes, number) >= 0
}
