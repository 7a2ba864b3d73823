package bot

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Pending tags what a user's next free-text message will be interpreted as.
type Pending int

const (
	Idle Pending = iota
	AwaitingNote
	AwaitingIdea
	AwaitingJournal
	AwaitingProjectName
	AwaitingProjectNote
	AwaitingRefinement
	AwaitingBasePrompt
	AwaitingSearch
	ProjectChat
)

// Session is one user's conversational state. At most one pending action
// per user at any time. Not persisted; lost on restart.
type Session struct {
	Pending   Pending
	ProjectID string // AwaitingProjectNote, ProjectChat
	NoteID    string // AwaitingRefinement when entered from a note
	Context   string // ProjectChat accumulated background
}

// DefaultSessionTTL is how long an untouched session survives before the
// eviction loop drops it.
const DefaultSessionTTL = 2 * time.Hour

// Sessions is the session store owned by the router. Sessions are created
// on first access, mutated by the router and evicted after the idle TTL.
type Sessions struct {
	mu  sync.Mutex
	m   map[int64]*entry
	ttl time.Duration
	now func() time.Time
}

type entry struct {
	s       Session
	touched time.Time
}

// NewSessions creates a session store with the given idle TTL.
func NewSessions(ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{
		m:   map[int64]*entry{},
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns a copy of the user's session, defaulting to Idle.
func (ss *Sessions) Get(userID int64) Session {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if e, ok := ss.m[userID]; ok {
		e.touched = ss.now()
		return e.s
	}
	return Session{}
}

// Set replaces the user's session.
func (ss *Sessions) Set(userID int64, s Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.m[userID] = &entry{s: s, touched: ss.now()}
}

// Reset returns the user to Idle.
func (ss *Sessions) Reset(userID int64) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.m, userID)
}

// EvictIdle drops sessions untouched for longer than the TTL and returns
// how many were removed.
func (ss *Sessions) EvictIdle() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	cutoff := ss.now().Add(-ss.ttl)
	evicted := 0
	for id, e := range ss.m {
		if e.touched.Before(cutoff) {
			delete(ss.m, id)
			evicted++
		}
	}
	return evicted
}

// RunEviction periodically evicts idle sessions until ctx is cancelled.
func (ss *Sessions) RunEviction(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := ss.EvictIdle(); n > 0 {
				logger.Debug("sessions: evicted idle", slog.Int("count", n))
			}
		}
	}
}
