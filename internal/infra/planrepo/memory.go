package planrepo

import (
	"context"
	"sync"

	"github.com/finbuddy/finance-advisor/internal/domain/planner"
)

// MemoryRepository is an in-memory planner.Repository. Lists preserve
// insertion order.
type MemoryRepository struct {
	mu sync.RWMutex

	subs      map[string]planner.Subscription
	subOrder  []string
	splits    map[string]planner.BillSplit
	splitOrd  []string
	goals     map[string]planner.Goal
	goalOrder []string
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		subs:   make(map[string]planner.Subscription),
		splits: make(map[string]planner.BillSplit),
		goals:  make(map[string]planner.Goal),
	}
}

func (r *MemoryRepository) SaveSubscription(_ context.Context, sub planner.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub.ID]; !ok {
		r.subOrder = append(r.subOrder, sub.ID)
	}
	r.subs[sub.ID] = sub
	return nil
}

func (r *MemoryRepository) ListSubscriptions(_ context.Context) ([]planner.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]planner.Subscription, 0, len(r.subs))
	for _, id := range r.subOrder {
		if sub, ok := r.subs[id]; ok {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *MemoryRepository) DeleteSubscription(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.subs[id]
	delete(r.subs, id)
	return ok, nil
}

func (r *MemoryRepository) SaveSplit(_ context.Context, split planner.BillSplit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.splits[split.ID]; !ok {
		r.splitOrd = append(r.splitOrd, split.ID)
	}
	r.splits[split.ID] = split
	return nil
}

func (r *MemoryRepository) GetSplit(_ context.Context, id string) (planner.BillSplit, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	split, ok := r.splits[id]
	return split, ok, nil
}

func (r *MemoryRepository) ListSplits(_ context.Context) ([]planner.BillSplit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]planner.BillSplit, 0, len(r.splits))
	for _, id := range r.splitOrd {
		if split, ok := r.splits[id]; ok {
			out = append(out, split)
		}
	}
	return out, nil
}

func (r *MemoryRepository) SaveGoal(_ context.Context, goal planner.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[goal.ID]; !ok {
		r.goalOrder = append(r.goalOrder, goal.ID)
	}
	r.goals[goal.ID] = goal
	return nil
}

func (r *MemoryRepository) GetGoal(_ context.Context, id string) (planner.Goal, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	goal, ok := r.goals[id]
	return goal, ok, nil
}

func (r *MemoryRepository) ListGoals(_ context.Context) ([]planner.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]planner.Goal, 0, len(r.goals))
	for _, id := range r.goalOrder {
		if goal, ok := r.goals[id]; ok {
			out = append(out, goal)
		}
	}
	return out, nil
}

func (r *MemoryRepository) DeleteGoal(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.goals[id]
	delete(r.goals, id)
	return ok, nil
}

var _ planner.Repository = (*MemoryRepository)(nil)
