package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_ExpireIdleViews(t *testing.T) {
	env := newTestEnv(t)
	s := newSessions(40 * time.Millisecond)
	defer s.close()

	v := env.srv.newView("short-lived")
	s.addView(v)
	_, ok := s.view("short-lived")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		views, _ := s.counts()
		return views == 0
	}, 2*time.Second, 10*time.Millisecond, "janitor evicts expired views")

	_, ok = s.view("short-lived")
	assert.False(t, ok)
}

func TestSessions_AccessExtendsLifetime(t *testing.T) {
	env := newTestEnv(t)
	s := newSessions(200 * time.Millisecond)
	defer s.close()

	s.addView(env.srv.newView("busy"))
	for range 5 {
		time.Sleep(60 * time.Millisecond)
		_, ok := s.view("busy")
		require.True(t, ok, "touched views stay alive")
	}
}

func TestSessions_Remove(t *testing.T) {
	env := newTestEnv(t)
	s := newSessions(time.Minute)
	defer s.close()

	s.addView(env.srv.newView("a"))
	s.addPlayer(&player{id: "b"})

	assert.True(t, s.removeView("a"))
	assert.False(t, s.removeView("a"))
	assert.True(t, s.removePlayer("b"))
	assert.False(t, s.removePlayer("b"))

	views, players := s.counts()
	assert.Zero(t, views)
	assert.Zero(t, players)
}
