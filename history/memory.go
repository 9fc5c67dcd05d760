package history

import (
	"context"
	"sync"

	"github.com/raushankrgupta/virtual-closet/models"
)

// MemoryStore is a process-local Store with the same append semantics as
// MongoStore
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]models.HistoryEntry
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]models.HistoryEntry)}
}

func (s *MemoryStore) Read(_ context.Context, userID string) ([]models.HistoryEntry, error) {
	if userID == "" {
		return nil, ErrMissingUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.HistoryEntry{}, s.docs[userID]...), nil
}

func (s *MemoryStore) AppendOrCreate(_ context.Context, userID string, entry models.HistoryEntry) (AppendResult, error) {
	if userID == "" {
		return AppendResult{Outcome: Failed, Reason: ErrMissingUser.Error()}, ErrMissingUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.docs[userID]
	s.docs[userID] = append(entries, entry)
	if !ok {
		return AppendResult{Outcome: Created}, nil
	}
	return AppendResult{Outcome: Updated}, nil
}
