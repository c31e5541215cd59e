package histstore

import (
	"context"
	"sync"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
)

// MemoryStore is an in-memory advisor.HistoryStore keeping the
// most-recent-N messages per user.
type MemoryStore struct {
	mu       sync.RWMutex
	maxLen   int
	messages map[string][]advisor.Message
}

// NewMemoryStore constructs a store bounded at maxLen messages per user.
func NewMemoryStore(maxLen int) *MemoryStore {
	if maxLen <= 0 {
		maxLen = 50
	}
	return &MemoryStore{
		maxLen:   maxLen,
		messages: make(map[string][]advisor.Message),
	}
}

// Append implements advisor.HistoryStore.
func (s *MemoryStore) Append(_ context.Context, userID string, msg advisor.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := append(s.messages[userID], msg)
	if len(msgs) > s.maxLen {
		msgs = msgs[len(msgs)-s.maxLen:]
	}
	s.messages[userID] = msgs
	return nil
}

// List implements advisor.HistoryStore.
func (s *MemoryStore) List(_ context.Context, userID string, limit int) ([]advisor.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[userID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]advisor.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Clear implements advisor.HistoryStore.
func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, userID)
	return nil
}

var _ advisor.HistoryStore = (*MemoryStore)(nil)
