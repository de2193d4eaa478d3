package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps the in-memory store to count writes and inject
// failures.
type countingStore struct {
	*MemoryStore
	mu    sync.Mutex
	saves int
	fail  bool
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: NewMemoryStore()}
}

func (s *countingStore) Save(ctx context.Context, sessionKey string, fields Fields) error {
	s.mu.Lock()
	s.saves++
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return errors.New("store unavailable")
	}
	return s.MemoryStore.Save(ctx, sessionKey, fields)
}

func (s *countingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *countingStore) setFail(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = v
}

// blockingStore holds each Save open until released so a test can land
// edits while a write is in flight.
type blockingStore struct {
	*MemoryStore
	entered chan struct{}
	release chan struct{}
}

func newBlockingStore() *blockingStore {
	return &blockingStore{
		MemoryStore: NewMemoryStore(),
		entered:     make(chan struct{}, 4),
		release:     make(chan struct{}),
	}
}

func (s *blockingStore) Save(ctx context.Context, sessionKey string, fields Fields) error {
	s.entered <- struct{}{}
	<-s.release
	return s.MemoryStore.Save(ctx, sessionKey, fields)
}

const testDelay = 20 * time.Millisecond

// waitSettle gives a debounce timer comfortably enough time to fire.
func waitSettle() { time.Sleep(5 * testDelay) }

func TestAutosaveCoalescesBurst(t *testing.T) {
	store := newCountingStore()
	co := NewCoordinator(store, testDelay)

	// Three rapid edits, as if the visitor were typing.
	co.Record("sess", Fields{"venue_id": "1"})
	co.Record("sess", Fields{"date": "2026-07-01"})
	co.Record("sess", Fields{"time": "20:00"})
	waitSettle()

	assert.Equal(t, 1, store.saveCount(), "a burst collapses into one write")
	got, err := store.Load(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, Fields{"venue_id": "1", "date": "2026-07-01", "time": "20:00"}, got)
	assert.Equal(t, StateSaved, co.State("sess"))
}

func TestAutosaveLoadSeesPendingBeforeFlush(t *testing.T) {
	store := newCountingStore()
	co := NewCoordinator(store, time.Hour) // never fires during the test

	require.NoError(t, store.Save(context.Background(), "sess", Fields{"venue_id": "1"}))
	co.Record("sess", Fields{"date": "2026-07-01"})

	got, err := co.Load(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, "1", got["venue_id"], "stored fields present")
	assert.Equal(t, "2026-07-01", got["date"], "pending fields overlaid")

	// The store itself has not been touched yet.
	raw, err := store.Load(context.Background(), "sess")
	require.NoError(t, err)
	assert.NotContains(t, raw, "date")
}

func TestAutosaveFlushWritesImmediately(t *testing.T) {
	store := newCountingStore()
	co := NewCoordinator(store, time.Hour)

	co.Record("sess", Fields{"status": "on-sale"})
	require.NoError(t, co.Flush(context.Background(), "sess"))

	got, err := store.Load(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, "on-sale", got["status"])

	// The cancelled timer must not produce a second write later.
	waitSettle()
	assert.Equal(t, 1, store.saveCount())
}

func TestAutosaveFlushKeepsEditRecordedDuringWrite(t *testing.T) {
	store := newBlockingStore()
	co := NewCoordinator(store, testDelay)

	co.Record("sess", Fields{"venue_id": "1"})

	done := make(chan error, 1)
	go func() { done <- co.Flush(context.Background(), "sess") }()
	<-store.entered

	// The visitor keeps typing while the flush write is still open.
	co.Record("sess", Fields{"date": "2026-07-01"})
	close(store.release)
	require.NoError(t, <-done)

	// The mid-write edit is still pending and the next cycle persists it.
	got, err := co.Load(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", got["date"])

	waitSettle()
	raw, err := store.MemoryStore.Load(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, "1", raw["venue_id"])
	assert.Equal(t, "2026-07-01", raw["date"], "edit recorded during the flush write reached the store")
}

func TestAutosaveFlushWithoutPendingIsNoop(t *testing.T) {
	store := newCountingStore()
	co := NewCoordinator(store, testDelay)
	require.NoError(t, co.Flush(context.Background(), "sess"))
	assert.Equal(t, 0, store.saveCount())
}

func TestAutosaveSaveOrdersAfterPending(t *testing.T) {
	store := newCountingStore()
	co := NewCoordinator(store, time.Hour)

	co.Record("sess", Fields{"date": "2026-07-01"})
	require.NoError(t, co.Save(context.Background(), "sess", Fields{
		"date":           "2026-07-02",
		FieldCurrentStep: "2",
	}))

	got, err := store.Load(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-02", got["date"], "explicit save wins over the flushed pending value")
	assert.Equal(t, "2", got[FieldCurrentStep])
}

func TestAutosaveErrorKeepsPendingForRetry(t *testing.T) {
	store := newCountingStore()
	store.setFail(true)
	co := NewCoordinator(store, testDelay)

	co.Record("sess", Fields{"venue_id": "1"})
	waitSettle()
	assert.Equal(t, StateError, co.State("sess"))

	// The store recovers; the next edit carries the earlier field with it.
	store.setFail(false)
	co.Record("sess", Fields{"date": "2026-07-01"})
	waitSettle()

	got, err := store.Load(context.Background(), "sess")
	require.NoError(t, err)
	assert.Equal(t, "1", got["venue_id"], "field from the failed attempt was retried")
	assert.Equal(t, "2026-07-01", got["date"])
	assert.Equal(t, StateSaved, co.State("sess"))
}

func TestAutosaveClearDropsEverything(t *testing.T) {
	store := newCountingStore()
	co := NewCoordinator(store, time.Hour)

	require.NoError(t, store.Save(context.Background(), "sess", Fields{"venue_id": "1"}))
	co.Record("sess", Fields{"date": "2026-07-01"})
	require.NoError(t, co.Clear(context.Background(), "sess"))

	got, err := co.Load(context.Background(), "sess")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, StateIdle, co.State("sess"))
}

func TestAutosaveSessionsDoNotInterfere(t *testing.T) {
	store := newCountingStore()
	co := NewCoordinator(store, testDelay)

	co.Record("alice", Fields{"date": "2026-07-01"})
	co.Record("bob", Fields{"date": "2026-08-01"})
	waitSettle()

	a, err := store.Load(context.Background(), "alice")
	require.NoError(t, err)
	b, err := store.Load(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", a["date"])
	assert.Equal(t, "2026-08-01", b["date"])
}

func TestAutosaveStateIdleForUnknownSession(t *testing.T) {
	co := NewCoordinator(newCountingStore(), testDelay)
	assert.Equal(t, StateIdle, co.State("never-seen"))
}
