package demosession

import (
	"context"
	"sync"
	"time"

	"funnelzip-demo/internal/common/errors"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/common/metrics"
	"funnelzip-demo/internal/demo/sequencer"

	"github.com/google/uuid"
)

type session struct {
	seq      *sequencer.Sequencer
	lastSeen time.Time
}

// Store owns the live demo sessions. Every session removed from the store
// is closed, which cancels its scan.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	max      int
	ttl      time.Duration
	build    func(id string) *sequencer.Sequencer
	now      func() time.Time
	logger   logger.Logger
}

func NewStore(max int, ttl time.Duration, build func(id string) *sequencer.Sequencer, log logger.Logger) *Store {
	return &Store{
		sessions: make(map[string]*session),
		max:      max,
		ttl:      ttl,
		build:    build,
		now:      time.Now,
		logger:   log,
	}
}

// Create starts a new session.
func (s *Store) Create() (string, *sequencer.Sequencer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.max > 0 && len(s.sessions) >= s.max {
		return "", nil, errors.NewSessionLimitError(s.max)
	}
	id := uuid.New().String()
	seq := s.build(id)
	s.sessions[id] = &session{seq: seq, lastSeen: s.now()}
	metrics.DemoSessionsActive.Set(float64(len(s.sessions)))
	return id, seq, nil
}

// Get returns the session and marks it as used.
func (s *Store) Get(id string) (*sequencer.Sequencer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewSessionNotFoundError(id)
	}
	sess.lastSeen = s.now()
	return sess.seq, nil
}

// Delete closes and removes a session.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		metrics.DemoSessionsActive.Set(float64(len(s.sessions)))
	}
	s.mu.Unlock()

	if !ok {
		return errors.NewSessionNotFoundError(id)
	}
	sess.seq.Close()
	return nil
}

// Sweep closes sessions idle for longer than the TTL.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*sequencer.Sequencer
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess.seq)
			delete(s.sessions, id)
		}
	}
	metrics.DemoSessionsActive.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	for _, seq := range expired {
		seq.Close()
	}
	if len(expired) > 0 {
		s.logger.Info("expired idle demo sessions", map[string]interface{}{
			"count": len(expired),
		})
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done, then closes all sessions.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.CloseAll()
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// CloseAll closes and drops every session.
func (s *Store) CloseAll() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*session)
	metrics.DemoSessionsActive.Set(0)
	s.mu.Unlock()

	for _, sess := range all {
		sess.seq.Close()
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
