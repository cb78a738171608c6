package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		configPath, jsonOutput, verbose = "", false, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRoot_GenresThroughConfig(t *testing.T) {
	_, srv := newFakeTMDB(t)
	path := writeTempConfig(t, fmt.Sprintf(`
[tmdb]
api_key = "test-key"
base_url = %q

[[mirrors]]
name = "Alpha"
movie = "https://alpha.example/movie/{id}"
`, srv.URL))

	out, err := execute(t, "genres", "tv", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Sci-Fi & Fantasy")
}

func TestRoot_InvalidCategory(t *testing.T) {
	_, err := execute(t, "genres", "books")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use movie or tv")
}

func TestRoot_WatchNextPrevExclusive(t *testing.T) {
	_, err := execute(t, "watch", "tv", "1399", "--next", "--prev")
	require.Error(t, err)
}

func TestRoot_Version(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "marquee dev\n", out)
}

func TestCompleteCategory(t *testing.T) {
	got, _ := completeCategory(nil, nil, "")
	assert.Equal(t, []string{"movie", "tv"}, got)

	got, _ = completeType(nil, []string{"tv"}, "")
	assert.Equal(t, []string{"popular", "top_rated", "on_the_air"}, got)
}
