package memory

// Package memory provides a simple in-memory session store used for
// development and tests. It is the default backend; sessions live for the
// lifetime of the process.
import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fecworks/fecreport/internal/errs"
	"github.com/fecworks/fecreport/internal/mapping"
	"github.com/fecworks/fecreport/internal/service/session"
)

// Store is an in-memory implementation of the session repo and writer.
// It is guarded by an RWMutex for concurrent reads/writes. Stored sessions
// are value copies; override maps are copy-on-write upstream, so readers
// never observe a partial update.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]session.Session
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{sessions: make(map[uuid.UUID]session.Session)}
}

// Reset drops all sessions. Test helper.
func (s *Store) Reset() {
	s.mu.Lock()
	s.sessions = map[uuid.UUID]session.Session{}
	s.mu.Unlock()
}

// CreateSession stores a new session.
func (s *Store) CreateSession(_ context.Context, sess session.Session) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID]; ok {
		return session.Session{}, errs.ErrConflict
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

// SessionByID returns a session by id.
func (s *Store) SessionByID(_ context.Context, id uuid.UUID) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return session.Session{}, errs.ErrNotFound
	}
	return sess, nil
}

// ListSessions returns all sessions ordered by creation time, newest first.
func (s *Store) ListSessions(_ context.Context) ([]session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// UpdateOverrides swaps the session's override map for the given one.
func (s *Store) UpdateOverrides(_ context.Context, id uuid.UUID, o mapping.Overrides) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return errs.ErrNotFound
	}
	sess.Overrides = o
	s.sessions[id] = sess
	return nil
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return errs.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}
