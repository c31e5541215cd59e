package planner

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/finbuddy/finance-advisor/pkg/errors"
)

type stubRepo struct {
	mu    sync.Mutex
	subs  map[string]Subscription
	order []string

	splits map[string]BillSplit
	goals  map[string]Goal
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		subs:   make(map[string]Subscription),
		splits: make(map[string]BillSplit),
		goals:  make(map[string]Goal),
	}
}

func (r *stubRepo) SaveSubscription(_ context.Context, sub Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub.ID]; !ok {
		r.order = append(r.order, sub.ID)
	}
	r.subs[sub.ID] = sub
	return nil
}

func (r *stubRepo) ListSubscriptions(_ context.Context) ([]Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Subscription, 0, len(r.subs))
	for _, id := range r.order {
		if sub, ok := r.subs[id]; ok {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *stubRepo) DeleteSubscription(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.subs[id]
	delete(r.subs, id)
	return ok, nil
}

func (r *stubRepo) SaveSplit(_ context.Context, split BillSplit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.splits[split.ID] = split
	return nil
}

func (r *stubRepo) GetSplit(_ context.Context, id string) (BillSplit, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	split, ok := r.splits[id]
	return split, ok, nil
}

func (r *stubRepo) ListSplits(_ context.Context) ([]BillSplit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]BillSplit, 0, len(r.splits))
	for _, split := range r.splits {
		out = append(out, split)
	}
	return out, nil
}

func (r *stubRepo) SaveGoal(_ context.Context, goal Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[goal.ID] = goal
	return nil
}

func (r *stubRepo) GetGoal(_ context.Context, id string) (Goal, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	goal, ok := r.goals[id]
	return goal, ok, nil
}

func (r *stubRepo) ListGoals(_ context.Context) ([]Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Goal, 0, len(r.goals))
	for _, goal := range r.goals {
		out = append(out, goal)
	}
	return out, nil
}

func (r *stubRepo) DeleteGoal(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.goals[id]
	delete(r.goals, id)
	return ok, nil
}

func newService(t *testing.T) Service {
	t.Helper()
	return NewService(newStubRepo(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSubscriptionTotals(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddSubscription(ctx, SubscriptionInput{Name: "Netflix", MonthlyCost: 15.49, Category: "entertainment"})
	require.NoError(t, err)
	_, err = svc.AddSubscription(ctx, SubscriptionInput{Name: "Gym", MonthlyCost: 40, Category: "health"})
	require.NoError(t, err)

	subs, totals, err := svc.ListSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	require.InDelta(t, 55.49, totals.Monthly, 0.001)
	require.InDelta(t, 665.88, totals.Yearly, 0.001)
}

func TestCancelSubscription(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	sub, err := svc.AddSubscription(ctx, SubscriptionInput{Name: "Spotify", MonthlyCost: 10.99})
	require.NoError(t, err)
	require.NoError(t, svc.CancelSubscription(ctx, sub.ID))

	err = svc.CancelSubscription(ctx, sub.ID)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestAddSubscriptionValidation(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	_, err := svc.AddSubscription(ctx, SubscriptionInput{Name: "", MonthlyCost: 5})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.AddSubscription(ctx, SubscriptionInput{Name: "X", MonthlyCost: 0})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestSplitPerPersonIncludesUser(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	split, err := svc.CreateSplit(context.Background(), SplitInput{
		Description: "dinner",
		TotalAmount: 120,
		Friends:     3,
	})
	require.NoError(t, err)
	require.InDelta(t, 30.0, split.PerPerson, 0.001)
	require.False(t, split.Settled)
}

func TestSettleSplitIsIdempotent(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	split, err := svc.CreateSplit(ctx, SplitInput{Description: "trip", TotalAmount: 90, Friends: 2})
	require.NoError(t, err)

	settled, err := svc.SettleSplit(ctx, split.ID)
	require.NoError(t, err)
	require.True(t, settled.Settled)

	again, err := svc.SettleSplit(ctx, split.ID)
	require.NoError(t, err)
	require.True(t, again.Settled)
}

func TestSettleUnknownSplit(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	_, err := svc.SettleSplit(context.Background(), "missing")
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestGoalProgressAndMonthsNeeded(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	goal, err := svc.CreateGoal(context.Background(), GoalInput{
		Name:                "vacation",
		TargetAmount:        3000,
		CurrentAmount:       500,
		MonthlyContribution: 400,
	})
	require.NoError(t, err)
	require.InDelta(t, 16.67, goal.ProgressPct, 0.01)
	// ceil(2500/400) = 7
	require.Equal(t, 7, goal.MonthsNeeded)
}

func TestContributeAdvancesGoal(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, GoalInput{
		Name:                "laptop",
		TargetAmount:        1000,
		CurrentAmount:       0,
		MonthlyContribution: 250,
	})
	require.NoError(t, err)

	goal, err = svc.Contribute(ctx, goal.ID, 600)
	require.NoError(t, err)
	require.Equal(t, 600.0, goal.CurrentAmount)
	require.Equal(t, 2, goal.MonthsNeeded)

	goal, err = svc.Contribute(ctx, goal.ID, 600)
	require.NoError(t, err)
	require.Equal(t, 0, goal.MonthsNeeded)
	require.Equal(t, 100.0, goal.ProgressPct)
}

func TestGoalWithoutContributionHasNoProjection(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	goal, err := svc.CreateGoal(context.Background(), GoalInput{
		Name:         "someday fund",
		TargetAmount: 5000,
	})
	require.NoError(t, err)
	require.Equal(t, -1, goal.MonthsNeeded)
}
