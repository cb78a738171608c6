package detail_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/marquee/internal/detail"
	"github.com/vmunix/marquee/internal/detail/mocks"
	"github.com/vmunix/marquee/internal/events"
	"github.com/vmunix/marquee/internal/tmdb"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestView_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	src.EXPECT().Detail(gomock.Any(), tmdb.Movie, int64(550)).Return(&tmdb.Detail{
		ID:    550,
		Title: "Fight Club",
		Genres: []tmdb.Genre{
			{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6},
		},
	}, nil)
	src.EXPECT().Credits(gomock.Any(), tmdb.Movie, int64(550)).Return(&tmdb.Credits{Cast: []tmdb.CastMember{
		{Name: "Edward Norton"}, {Name: "Brad Pitt"}, {Name: "Helena Bonham Carter"},
		{Name: "Meat Loaf"}, {Name: "Jared Leto"}, {Name: "Zach Grenier"},
	}}, nil)
	src.EXPECT().Similar(gomock.Any(), tmdb.Movie, int64(550), 1).Return(&tmdb.Page{Results: []tmdb.Item{
		{ID: 1, PosterPath: "/a.jpg"}, {ID: 2},
	}}, nil)

	v := detail.NewView(src, detail.WithLogger(testLogger()))
	res := v.Load(context.Background(), tmdb.Movie, "550")

	require.False(t, res.Redirected())
	assert.Equal(t, "Fight Club", res.Item.DisplayTitle())
	assert.Len(t, res.Item.Genres, detail.MaxGenres)
	assert.Len(t, res.Cast, detail.MaxCast)
	require.Len(t, res.Similar, 1, "similar titles without artwork are hidden")
	assert.Equal(t, int64(1), res.Similar[0].ID)
}

func TestView_Load_NonNumericIDRedirects(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := &recorder{}
	v := detail.NewView(mocks.NewMockSource(ctrl), detail.WithPublisher(rec, "d1"), detail.WithLogger(testLogger()))

	for _, raw := range []string{"abc", "12x", "-5", "0", ""} {
		res := v.Load(context.Background(), tmdb.TV, raw)
		assert.True(t, res.Redirected(), raw)
		assert.Equal(t, "/tv", res.Redirect, raw)
		assert.Nil(t, res.Item)
	}

	require.NotEmpty(t, rec.events)
	e, ok := rec.events[0].(*events.Redirected)
	require.True(t, ok)
	assert.Equal(t, "/tv/abc", e.From)
	assert.Equal(t, "/tv", e.To)
	assert.Equal(t, "d1", e.ViewID())
}

func TestView_Load_FetchFailureRedirects(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{"not found", &tmdb.APIError{StatusCode: 404, Message: "The resource you requested could not be found."}, "not found"},
		{"network", tmdb.ErrNetwork, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			src := mocks.NewMockSource(ctrl)
			src.EXPECT().Detail(gomock.Any(), tmdb.Movie, int64(999999999)).Return(nil, tt.err)

			res := detail.NewView(src, detail.WithLogger(testLogger())).Load(context.Background(), tmdb.Movie, "999999999")
			assert.Equal(t, "/movie", res.Redirect)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestView_Load_OptionalSectionsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)

	src.EXPECT().Detail(gomock.Any(), tmdb.TV, int64(1399)).Return(&tmdb.Detail{ID: 1399, Name: "Game of Thrones"}, nil)
	src.EXPECT().Credits(gomock.Any(), tmdb.TV, int64(1399)).Return(nil, tmdb.ErrNetwork)
	src.EXPECT().Similar(gomock.Any(), tmdb.TV, int64(1399), 1).Return(nil, errors.New("boom"))

	res := detail.NewView(src, detail.WithLogger(testLogger())).Load(context.Background(), tmdb.TV, "1399")
	require.False(t, res.Redirected())
	assert.Equal(t, "Game of Thrones", res.Item.DisplayTitle())
	assert.Empty(t, res.Cast)
	assert.Empty(t, res.Similar)
}

func TestView_Trailer(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockSource(ctrl)
	v := detail.NewView(src, detail.WithLogger(testLogger()))
	ctx := context.Background()

	src.EXPECT().Trailer(gomock.Any(), tmdb.Movie, int64(550)).Return("https://www.youtube.com/embed/SUXWAEX2jlg", nil)
	src.EXPECT().Trailer(gomock.Any(), tmdb.Movie, int64(551)).Return("", tmdb.ErrNoTrailer)
	src.EXPECT().Trailer(gomock.Any(), tmdb.Movie, int64(552)).Return("", tmdb.ErrNetwork)

	url, err := v.Trailer(ctx, tmdb.Movie, "550")
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/embed/SUXWAEX2jlg", url)

	_, err = v.Trailer(ctx, tmdb.Movie, "551")
	assert.ErrorIs(t, err, tmdb.ErrNoTrailer)
	assert.NotErrorIs(t, err, tmdb.ErrNetwork)

	_, err = v.Trailer(ctx, tmdb.Movie, "552")
	assert.ErrorIs(t, err, tmdb.ErrNetwork)
	assert.NotErrorIs(t, err, tmdb.ErrNoTrailer)

	_, err = v.Trailer(ctx, tmdb.Movie, "nope")
	assert.ErrorIs(t, err, tmdb.ErrNotFound)
}

func TestParseID(t *testing.T) {
	id, err := detail.ParseID("1399")
	require.NoError(t, err)
	assert.Equal(t, int64(1399), id)

	_, err = detail.ParseID("1e3")
	assert.ErrorIs(t, err, tmdb.ErrNotFound)
}

type recorder struct {
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.events = append(r.events, e)
	return nil
}
