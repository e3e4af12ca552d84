// Package memory provides an in-process credkit.Store backed by maps. State
// is lost on restart; intended for tests and development.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/credkit/credkit"
)

// Store is a thread-safe in-memory storage backend. Email uniqueness is
// enforced under the store lock, so concurrent duplicate sign-ups cannot
// both succeed.
type Store struct {
	mu           sync.RWMutex
	users        map[string]credkit.UserRecord
	emails       map[string]string // canonical email -> user id
	sessions     map[string]credkit.Session
	userSessions map[string]map[string]struct{}
}

var _ credkit.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:        make(map[string]credkit.UserRecord),
		emails:       make(map[string]string),
		sessions:     make(map[string]credkit.Session),
		userSessions: make(map[string]map[string]struct{}),
	}
}

// Prepare is a no-op; the maps are ready at construction.
func (s *Store) Prepare(context.Context) error {
	return nil
}

func (s *Store) CreateUser(_ context.Context, email, credentialHash string) (credkit.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[email]; exists {
		return credkit.UserRecord{}, credkit.ErrAccountExists
	}

	rec := credkit.UserRecord{
		ID:             uuid.NewString(),
		Email:          email,
		CredentialHash: credentialHash,
		CreatedAt:      time.Now().UTC(),
	}

	s.users[rec.ID] = rec
	s.emails[email] = rec.ID

	return rec, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (credkit.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[email]
	if !ok {
		return credkit.UserRecord{}, credkit.ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (credkit.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return credkit.UserRecord{}, credkit.ErrNotFound
	}
	return rec, nil
}

func (s *Store) CreateSession(_ context.Context, id, userID string, expiresAt time.Time) (credkit.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := credkit.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}

	s.sessions[id] = sess
	if s.userSessions[userID] == nil {
		s.userSessions[userID] = make(map[string]struct{})
	}
	s.userSessions[userID][id] = struct{}{}

	return sess, nil
}

func (s *Store) GetSession(_ context.Context, id string) (credkit.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return credkit.Session{}, credkit.ErrNotFound
	}
	return sess, nil
}

func (s *Store) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteSessionLocked(id)
	return nil
}

func (s *Store) DeleteSessionsByUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.userSessions[userID] {
		delete(s.sessions, id)
	}
	delete(s.userSessions, userID)
	return nil
}

func (s *Store) deleteSessionLocked(id string) {
	sess, ok := s.sessions[id]
	if !ok {
		return
	}
	delete(s.sessions, id)
	if owned := s.userSessions[sess.UserID]; owned != nil {
		delete(owned, id)
		if len(owned) == 0 {
			delete(s.userSessions, sess.UserID)
		}
	}
}
