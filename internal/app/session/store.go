package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"transcribe-ui/internal/app/view"
)

// Store keeps one view per browser session and forgets sessions left idle past the TTL
type Store struct {
	backend view.Backend
	logger  *zap.Logger
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	sessions  map[string]*entry
	lastSweep time.Time
}

// sweepInterval spaces out full scans for idle sessions
const sweepInterval = time.Minute

type entry struct {
	view     *view.View
	lastSeen time.Time
}

// NewStore creates an empty session store
func NewStore(b view.Backend, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend:  b,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Get returns the view for id. Unknown or expired ids get a fresh session whose
// initial load has already run; created reports that case and id is then the new id.
func (s *Store) Get(ctx context.Context, id string) (v *view.View, sessionID string, created bool) {
	s.mu.Lock()
	s.evictLocked()
	if e := s.liveLocked(id); e != nil {
		s.mu.Unlock()
		return e.view, id, false
	}

	sessionID = uuid.New().String()
	v = view.New(s.backend, s.logger.With(zap.String("session", sessionID)))
	s.sessions[sessionID] = &entry{view: v, lastSeen: s.now()}
	s.mu.Unlock()

	// Failures are logged by the view and leave it empty
	_ = v.Load(ctx)
	return v, sessionID, true
}

// Lookup returns the view for a live session without creating one
func (s *Store) Lookup(id string) (*view.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e := s.liveLocked(id); e != nil {
		return e.view, true
	}
	return nil, false
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// liveLocked returns the entry for id and touches it, or nil when it is
// unknown or already idle past the TTL
func (s *Store) liveLocked(id string) *entry {
	e, ok := s.sessions[id]
	if !ok {
		return nil
	}
	now := s.now()
	if s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil
	}
	e.lastSeen = now
	return e
}

func (s *Store) evictLocked() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	cutoff := now.Add(-s.ttl)
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			s.logger.Debug("session expired", zap.String("session", id))
		}
	}
}
