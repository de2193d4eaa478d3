package draft

import (
	"context"
	"sync"
	"time"
)

// SaveState describes the most recently initiated autosave attempt for a
// session.  Older attempts never overwrite the state of a newer one.
type SaveState string

const (
	StateIdle   SaveState = "idle"
	StateSaving SaveState = "saving"
	StateSaved  SaveState = "saved"
	StateError  SaveState = "error"
)

// Coordinator debounces draft writes.  Every Record call merges the fields
// into the session's pending set and restarts that session's timer; only
// when the quiet period elapses without further edits does the pending set
// reach the store.  At most one timer is pending per session; a new burst
// cancels and replaces the old timer.  A failed write keeps the pending
// fields so the next debounce cycle retries them; there is no retry
// scheduling beyond that.
//
// Explicit actions (next/publish/manual save) call Flush, which persists the
// pending set immediately and reports the error to the caller instead of
// touching the autosave state, so the two indicators never collide.
type Coordinator struct {
	store Store
	delay time.Duration

	mu       sync.Mutex
	sessions map[string]*autosaveSession
}

type autosaveSession struct {
	timer   *time.Timer
	pending Fields
	state   SaveState
	attempt uint64 // generation counter; stale attempts must not update state
}

// NewCoordinator wraps the store with a debounce of the given quiet period.
func NewCoordinator(store Store, delay time.Duration) *Coordinator {
	return &Coordinator{
		store:    store,
		delay:    delay,
		sessions: make(map[string]*autosaveSession),
	}
}

// Record merges fields into the session's pending draft and restarts the
// debounce timer.  It returns immediately; persistence happens after the
// quiet period.
func (c *Coordinator) Record(sessionKey string, fields Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.session(sessionKey)
	merge(s.pending, fields)
	if s.timer != nil {
		s.timer.Stop()
	}
	s.attempt++
	attempt := s.attempt
	s.timer = time.AfterFunc(c.delay, func() { c.fire(sessionKey, attempt) })
}

// fire is the timer callback: it takes the pending set and writes it out.
func (c *Coordinator) fire(sessionKey string, attempt uint64) {
	c.mu.Lock()
	s, ok := c.sessions[sessionKey]
	if !ok || attempt != s.attempt || len(s.pending) == 0 {
		c.mu.Unlock()
		return
	}
	fields := s.pending.Clone()
	s.state = StateSaving
	c.mu.Unlock()

	err := c.store.Save(context.Background(), sessionKey, fields)

	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok = c.sessions[sessionKey]
	if !ok || attempt != s.attempt {
		return // a newer attempt owns the state now
	}
	if err != nil {
		s.state = StateError // pending stays; next cycle retries
		return
	}
	s.state = StateSaved
	s.pending = Fields{}
}

// Flush cancels any pending timer and persists the pending fields right
// away.  Used by manual saves and by next/publish so explicit actions never
// race the background write.  On failure the pending fields are kept.
func (c *Coordinator) Flush(ctx context.Context, sessionKey string) error {
	c.mu.Lock()
	s, ok := c.sessions[sessionKey]
	if !ok || len(s.pending) == 0 {
		if ok && s.timer != nil {
			s.timer.Stop()
		}
		c.mu.Unlock()
		return nil
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.attempt++ // invalidate any in-flight timer callback
	attempt := s.attempt
	fields := s.pending.Clone()
	c.mu.Unlock()

	if err := c.store.Save(ctx, sessionKey, fields); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[sessionKey]; ok && attempt == s.attempt {
		// Only drop what we wrote; a Record that landed during the write
		// bumped the attempt and its fields must survive for the next cycle.
		s.pending = Fields{}
	}
	return nil
}

// Save flushes any pending autosave fields and then persists fields right
// away, bypassing the debounce.  Explicit wizard actions (next, publish) use
// this so their writes are ordered after any outstanding edits.
func (c *Coordinator) Save(ctx context.Context, sessionKey string, fields Fields) error {
	if err := c.Flush(ctx, sessionKey); err != nil {
		return err
	}
	return c.store.Save(ctx, sessionKey, fields)
}

// Load returns the stored draft overlaid with any not-yet-flushed pending
// fields, so a read immediately after an autosave burst still sees every
// edit.
func (c *Coordinator) Load(ctx context.Context, sessionKey string) (Fields, error) {
	stored, err := c.store.Load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[sessionKey]; ok {
		merge(stored, s.pending)
	}
	return stored, nil
}

// State reports the autosave indicator for the session.
func (c *Coordinator) State(sessionKey string) SaveState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[sessionKey]; ok {
		return s.state
	}
	return StateIdle
}

// Clear drops the pending set, cancels the timer and removes the stored
// draft.  Called after a successful publish.
func (c *Coordinator) Clear(ctx context.Context, sessionKey string) error {
	c.mu.Lock()
	if s, ok := c.sessions[sessionKey]; ok {
		if s.timer != nil {
			s.timer.Stop()
		}
		delete(c.sessions, sessionKey)
	}
	c.mu.Unlock()
	return c.store.Clear(ctx, sessionKey)
}

// session returns the tracked state for sessionKey, creating it on first
// use.  Caller must hold c.mu.
func (c *Coordinator) session(sessionKey string) *autosaveSession {
	s, ok := c.sessions[sessionKey]
	if !ok {
		s = &autosaveSession{pending: Fields{}, state: StateIdle}
		c.sessions[sessionKey] = s
	}
	return s
}
