// Package memory provides an in-process user repository used by tests and
// the example server.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veldtec/authgate/user"
)

// Store is a map-backed user repository with the same contract as the
// Postgres adapter, including unique-email enforcement.
type Store struct {
	mu      sync.Mutex
	byID    map[string]*user.User
	byEmail map[string]string
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		byID:    make(map[string]*user.User),
		byEmail: make(map[string]string),
	}
}

// Create inserts the record, assigning an id and timestamps. Returns
// [user.ErrDuplicateEmail] when the normalized email is already taken.
func (s *Store) Create(ctx context.Context, u *user.User) (*user.User, error) {
	email := user.NormalizeEmail(u.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, user.ErrDuplicateEmail
	}

	stored := *u
	stored.ID = uuid.NewString()
	stored.Email = email
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.byID[stored.ID] = &stored
	s.byEmail[email] = stored.ID

	out := stored
	return &out, nil
}

// FindByID returns a copy of the record or [user.ErrNotFound].
func (s *Store) FindByID(ctx context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	out := *u
	return &out, nil
}

// FindByEmail returns a copy of the record or [user.ErrNotFound].
func (s *Store) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[user.NormalizeEmail(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	out := *s.byID[id]
	return &out, nil
}

// SetVerified flips the verification gate on a stored record. Test helper;
// verification flows live outside this core.
func (s *Store) SetVerified(id string, verified bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return false
	}
	u.Verified = verified
	u.UpdatedAt = time.Now().UTC()
	return true
}

// Remove deletes a record outright. Test helper.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.byID[id]; ok {
		delete(s.byEmail, u.Email)
		delete(s.byID, id)
	}
}

var _ user.Store = (*Store)(nil)
