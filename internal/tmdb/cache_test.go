package tmdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c := newCache(time.Hour)

	// Miss
	_, ok := c.get("genres:movie")
	assert.False(t, ok, "empty cache should miss")

	// Set and hit
	c.set("genres:movie", []Genre{{ID: 28, Name: "Action"}})

	got, ok := c.get("genres:movie")
	require.True(t, ok, "should hit after set")
	assert.Equal(t, []Genre{{ID: 28, Name: "Action"}}, got)

	// Different key should miss
	_, ok = c.get("genres:tv")
	assert.False(t, ok, "different key should miss")
}

func TestCache_Expiry(t *testing.T) {
	c := newCache(10 * time.Millisecond)

	c.set("countries", []Country{{Code: "US", Name: "United States of America"}})

	// Should hit immediately
	_, ok := c.get("countries")
	require.True(t, ok)

	// Wait for expiry
	time.Sleep(20 * time.Millisecond)

	// Should miss after expiry
	_, ok = c.get("countries")
	assert.False(t, ok, "should miss after TTL")
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c := newCache(0)
	c.set("countries", []Country{{Code: "FR"}})

	_, ok := c.get("countries")
	assert.False(t, ok)
}
