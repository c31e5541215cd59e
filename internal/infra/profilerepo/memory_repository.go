package profilerepo

import (
	"context"
	"sync"

	"github.com/finbuddy/finance-advisor/internal/domain/profile"
)

// MemoryRepository is an in-memory profile.Repository used for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]profile.Profile
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[string]profile.Profile)}
}

// Get implements profile.Repository.
func (r *MemoryRepository) Get(_ context.Context, id string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	if ok {
		p.Goals = append([]string(nil), p.Goals...)
	}
	return p, ok, nil
}

// Save implements profile.Repository.
func (r *MemoryRepository) Save(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Goals = append([]string(nil), p.Goals...)
	r.profiles[p.ID] = p
	return nil
}

var _ profile.Repository = (*MemoryRepository)(nil)
