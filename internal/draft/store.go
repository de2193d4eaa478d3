package draft

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store is the session-scoped draft persistence contract.  One draft per
// session key, merged on save, gone after publish.  The store enforces no
// expiry of its own; the session cookie's lifetime bounds the draft's.
type Store interface {
	// Save whitelist-merges fields into the session's draft, creating it if
	// absent.  Last write wins per field.  Saving an identical payload twice
	// is a no-op the second time.
	Save(ctx context.Context, sessionKey string, fields Fields) error
	// Load returns the session's draft, or an empty Fields when none exists.
	// It only fails on infrastructure errors, never on absence.
	Load(ctx context.Context, sessionKey string) (Fields, error)
	// Clear removes the session's draft.  Clearing a missing draft is fine.
	Clear(ctx context.Context, sessionKey string) error
}

// NewStore returns a Redis-backed store, or the in-memory fallback when no
// Redis client is available (mirrors how the middleware degrade).
func NewStore(rdb *redis.Client) Store {
	if rdb == nil {
		return NewMemoryStore()
	}
	return &RedisStore{rdb: rdb}
}

// RedisStore keeps each draft as one JSON document under draft:<session>.
// The read-merge-write in Save is safe because a draft is only ever touched
// by its owning session's requests.
type RedisStore struct {
	rdb *redis.Client
}

func (s *RedisStore) key(sessionKey string) string { return "draft:" + sessionKey }

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, sessionKey string, fields Fields) error {
	cur, err := s.Load(ctx, sessionKey)
	if err != nil {
		return err
	}
	merge(cur, fields)
	raw, err := json.Marshal(cur)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(sessionKey), raw, 0).Err()
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, sessionKey string) (Fields, error) {
	raw, err := s.rdb.Get(ctx, s.key(sessionKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Fields{}, nil
		}
		return nil, err
	}
	var f Fields
	if err := json.Unmarshal(raw, &f); err != nil {
		// A corrupt draft is recoverable: start over rather than wedging the
		// wizard for this session.
		return Fields{}, nil
	}
	if f == nil {
		f = Fields{}
	}
	return f, nil
}

// Clear implements Store.
func (s *RedisStore) Clear(ctx context.Context, sessionKey string) error {
	return s.rdb.Del(ctx, s.key(sessionKey)).Err()
}

// MemoryStore is the in-process fallback used without Redis and in tests.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]Fields
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[string]Fields)}
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, sessionKey string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.drafts[sessionKey]
	if !ok {
		cur = Fields{}
	}
	merge(cur, fields)
	s.drafts[sessionKey] = cur
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, sessionKey string) (Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.drafts[sessionKey]; ok {
		return f.Clone(), nil
	}
	return Fields{}, nil
}

// Clear implements Store.
func (s *MemoryStore) Clear(_ context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionKey)
	return nil
}
