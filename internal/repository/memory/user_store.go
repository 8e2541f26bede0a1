// Package memory provides in-memory implementations of the booking
// package's store and notifier contracts. They offer the same
// sequencing and visibility guarantees as the MySQL repositories
// (read-your-writes, save-time invariant enforcement) and are used by
// tests and local development.
package memory

import (
	"context"
	"sync"

	"github.com/iliyamo/webinar-booking/internal/model"
)

// UserStore keeps user records in a map guarded by a mutex.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewUserStore returns an empty in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]model.User)}
}

// Add inserts or replaces a user record.
func (s *UserStore) Add(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// FindByID returns the user with the given ID, or nil when absent.
func (s *UserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
