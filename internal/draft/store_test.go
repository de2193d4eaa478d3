package draft

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveMergesAcrossSaves(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess", Fields{"venue_id": "1", "date": "2026-07-01"}))
	require.NoError(t, s.Save(ctx, "sess", Fields{"time": "20:00"}))

	got, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, Fields{"venue_id": "1", "date": "2026-07-01", "time": "20:00"}, got)
}

func TestStoreSaveLastWriteWinsPerField(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess", Fields{"date": "2026-07-01", "status": "coming-soon"}))
	require.NoError(t, s.Save(ctx, "sess", Fields{"date": "2026-07-02"}))

	got, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-02", got["date"])
	assert.Equal(t, "coming-soon", got["status"], "untouched fields survive later saves")
}

func TestStoreSaveIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	payload := Fields{"venue_id": "2", "time": "21:00"}

	require.NoError(t, s.Save(ctx, "sess", payload))
	require.NoError(t, s.Save(ctx, "sess", payload))

	got, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, Fields{"venue_id": "2", "time": "21:00"}, got)
}

func TestStoreDropsUnknownFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess", Fields{
		"date":      "2026-07-01",
		"is_admin":  "true",
		"__proto__": "x",
	}))

	got, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, Fields{"date": "2026-07-01"}, got)
}

func TestStoreLoadMissingDraftIsEmpty(t *testing.T) {
	s := NewMemoryStore()
	got, err := s.Load(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreClear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess", Fields{"date": "2026-07-01"}))
	require.NoError(t, s.Clear(ctx, "sess"))

	got, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Clearing an already-missing draft must not fail.
	require.NoError(t, s.Clear(ctx, "sess"))
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "alice", Fields{"date": "2026-07-01"}))
	require.NoError(t, s.Save(ctx, "bob", Fields{"date": "2026-08-01"}))

	a, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	b, err := s.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", a["date"])
	assert.Equal(t, "2026-08-01", b["date"])
}

func TestStoreLoadReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess", Fields{"date": "2026-07-01"}))
	got, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	got["date"] = "mutated"

	again, err := s.Load(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", again["date"])
}
