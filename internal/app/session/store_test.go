package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"transcribe-ui/internal/app/testutil"
)

func TestGetCreatesAndLoads(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Once()
	store := NewStore(mb, time.Hour, nil)

	v, id, created := store.Get(context.Background(), "")
	require.True(t, created)
	assert.NotEmpty(t, id)
	assert.Equal(t, testutil.Transcriptions(), v.Snapshot().Transcriptions)

	again, sameID, created := store.Get(context.Background(), id)
	assert.False(t, created)
	assert.Equal(t, id, sameID)
	assert.Same(t, v, again)
	assert.Equal(t, 1, store.Len())
}

func TestGetUnknownIDStartsNewSession(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Twice()
	store := NewStore(mb, time.Hour, nil)

	_, first, _ := store.Get(context.Background(), "")
	_, second, created := store.Get(context.Background(), "not-a-session")
	assert.True(t, created)
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, "not-a-session", second)
	assert.Equal(t, 2, store.Len())
}

func TestIdleSessionsExpire(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Twice()
	store := NewStore(mb, time.Minute, nil)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, id, _ := store.Get(context.Background(), "")
	now = now.Add(30 * time.Second)
	_, _, created := store.Get(context.Background(), id)
	assert.False(t, created)

	now = now.Add(2 * time.Minute)
	_, newID, created := store.Get(context.Background(), id)
	assert.True(t, created)
	assert.NotEqual(t, id, newID)
	assert.Equal(t, 1, store.Len())
}

func TestLookupNeverCreates(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Once()
	store := NewStore(mb, time.Hour, nil)

	_, ok := store.Lookup("")
	assert.False(t, ok)
	_, ok = store.Lookup("unknown")
	assert.False(t, ok)
	assert.Zero(t, store.Len())

	v, id, _ := store.Get(context.Background(), "")
	found, ok := store.Lookup(id)
	require.True(t, ok)
	assert.Same(t, v, found)
}

func TestExpiredSessionIsNotServedBetweenSweeps(t *testing.T) {
	mb := testutil.NewMockBackend(t)
	mb.On("List", mock.Anything).Return(testutil.Transcriptions(), nil).Times(3)
	store := NewStore(mb, 10*time.Second, nil)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_, id, _ := store.Get(context.Background(), "")
	_, other, _ := store.Get(context.Background(), "")

	// inside the sweep interval only the touched session is dropped
	now = now.Add(20 * time.Second)
	_, ok := store.Lookup(id)
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())

	now = now.Add(sweepInterval)
	_, _, created := store.Get(context.Background(), other)
	assert.True(t, created)
	assert.Equal(t, 1, store.Len())
}
