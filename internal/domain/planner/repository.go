package planner

import "context"

// Repository persists planner entities. Implementations must be safe
// for concurrent use.
type Repository interface {
	SaveSubscription(ctx context.Context, sub Subscription) error
	ListSubscriptions(ctx context.Context) ([]Subscription, error)
	DeleteSubscription(ctx context.Context, id string) (bool, error)

	SaveSplit(ctx context.Context, split BillSplit) error
	GetSplit(ctx context.Context, id string) (BillSplit, bool, error)
	ListSplits(ctx context.Context) ([]BillSplit, error)

	SaveGoal(ctx context.Context, goal Goal) error
	GetGoal(ctx context.Context, id string) (Goal, bool, error)
	ListGoals(ctx context.Context) ([]Goal, error)
	DeleteGoal(ctx context.Context, id string) (bool, error)
}
