package profile

import (
	"context"
	"sync"
	"time"

	"github.com/raushankrgupta/virtual-closet/models"
)

// MemoryStore keeps profiles in process, with the same merge rules as
// MongoStore. Used when no MongoDB is configured.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]models.UserProfile
	now   func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.UserProfile), now: time.Now}
}

func (s *MemoryStore) Upsert(_ context.Context, p models.UserProfile) (models.UserProfile, error) {
	if p.UID == "" {
		return models.UserProfile{}, ErrMissingUID
	}
	now := s.now().UTC().Truncate(time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	p.CreatedAt = now
	if old, ok := s.users[p.UID]; ok {
		p.CreatedAt = old.CreatedAt
	}
	p.UpdatedAt = now
	s.users[p.UID] = p
	return p, nil
}

func (s *MemoryStore) Get(_ context.Context, uid string) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.users[uid]
	if !ok {
		return models.UserProfile{}, ErrNotFound
	}
	return p, nil
}
