package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alight_calculator/pkg/core/calculator"
)

func newSession(t *testing.T) *calculator.Session {
	t.Helper()
	s, err := calculator.NewEngine(nil).NewFutureValueSession(
		calculator.FutureValueInput{CurrentValue: 1000, GrowthRate: 10, Years: 5}, "real-estate", "US")
	require.NoError(t, err)
	return s
}

func TestSessionStore_ExpiredIsNotFound(t *testing.T) {
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	st := NewSessionStore()
	st.now = func() time.Time { return clock }

	id := st.Put(newSession(t))

	clock = clock.Add(SessionTTL - time.Minute)
	found, err := st.With(id, func(*calculator.Session) error { return nil })
	require.NoError(t, err)
	assert.True(t, found)

	// the access above refreshed the session
	clock = clock.Add(SessionTTL - time.Minute)
	found, _ = st.With(id, func(*calculator.Session) error { return nil })
	assert.True(t, found)

	clock = clock.Add(SessionTTL + time.Second)
	called := false
	found, err = st.With(id, func(*calculator.Session) error { called = true; return nil })
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, called)
	assert.Equal(t, 0, st.Len())
}

func TestSessionStore_EvictsOldestOverCap(t *testing.T) {
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	st := NewSessionStore()
	st.now = func() time.Time { clock = clock.Add(time.Millisecond); return clock }

	s := newSession(t)
	first := st.Put(s)
	for i := 1; i < MaxSessions; i++ {
		st.Put(s)
	}
	require.Equal(t, MaxSessions, st.Len())

	st.Put(s)
	assert.Equal(t, MaxSessions, st.Len())
	found, _ := st.With(first, func(*calculator.Session) error { return nil })
	assert.False(t, found)
}

func TestSessionStore_Delete(t *testing.T) {
	st := NewSessionStore()
	id := st.Put(newSession(t))

	assert.True(t, st.Delete(id))
	assert.False(t, st.Delete(id))
}
