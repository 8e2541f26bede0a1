package memory

import (
	"context"
	"sync"

	"github.com/iliyamo/webinar-booking/internal/model"
)

// WebinarStore keeps webinar records in a map guarded by a mutex.
type WebinarStore struct {
	mu       sync.RWMutex
	webinars map[string]model.Webinar
}

// NewWebinarStore returns an empty in-memory webinar store.
func NewWebinarStore() *WebinarStore {
	return &WebinarStore{webinars: make(map[string]model.Webinar)}
}

// Add inserts or replaces a webinar record.
func (s *WebinarStore) Add(w model.Webinar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webinars[w.ID] = w
}

// FindByID returns the webinar with the given ID, or nil when absent.
func (s *WebinarStore) FindByID(_ context.Context, id string) (*model.Webinar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.webinars[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}
