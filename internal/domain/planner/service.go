package planner

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/finbuddy/finance-advisor/pkg/errors"
)

// Service manages subscriptions, bill splits and savings goals.
type Service interface {
	AddSubscription(ctx context.Context, in SubscriptionInput) (Subscription, error)
	ListSubscriptions(ctx context.Context) ([]Subscription, SubscriptionTotals, error)
	CancelSubscription(ctx context.Context, id string) error

	CreateSplit(ctx context.Context, in SplitInput) (BillSplit, error)
	ListSplits(ctx context.Context) ([]BillSplit, error)
	SettleSplit(ctx context.Context, id string) (BillSplit, error)

	CreateGoal(ctx context.Context, in GoalInput) (Goal, error)
	ListGoals(ctx context.Context) ([]Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	Contribute(ctx context.Context, id string, amount float64) (Goal, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the planner domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "planner.service"),
		now:    time.Now,
	}
}

func (s *service) AddSubscription(ctx context.Context, in SubscriptionInput) (Subscription, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Subscription{}, apperrors.Wrap("invalid_input", "subscription name is required", nil)
	}
	if in.MonthlyCost <= 0 {
		return Subscription{}, apperrors.Wrap("invalid_input", "monthly cost must be positive", nil)
	}

	sub := Subscription{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		MonthlyCost: in.MonthlyCost,
		Category:    in.Category,
		NextBilling: in.NextBilling,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		return Subscription{}, apperrors.Wrap("planner_error", "subscription save failed", err)
	}
	s.logger.Info("subscription added", "id", sub.ID, "name", sub.Name)
	return sub, nil
}

func (s *service) ListSubscriptions(ctx context.Context) ([]Subscription, SubscriptionTotals, error) {
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, SubscriptionTotals{}, apperrors.Wrap("planner_error", "subscription list failed", err)
	}

	var totals SubscriptionTotals
	for _, sub := range subs {
		totals.Monthly += sub.MonthlyCost
	}
	totals.Yearly = totals.Monthly * 12
	return subs, totals, nil
}

func (s *service) CancelSubscription(ctx context.Context, id string) error {
	found, err := s.repo.DeleteSubscription(ctx, id)
	if err != nil {
		return apperrors.Wrap("planner_error", "subscription delete failed", err)
	}
	if !found {
		return apperrors.Wrap("not_found", "subscription not found", nil)
	}
	return nil
}

func (s *service) CreateSplit(ctx context.Context, in SplitInput) (BillSplit, error) {
	if in.TotalAmount <= 0 {
		return BillSplit{}, apperrors.Wrap("invalid_input", "total amount must be positive", nil)
	}
	if in.Friends < 1 {
		return BillSplit{}, apperrors.Wrap("invalid_input", "a split needs at least one friend", nil)
	}

	split := BillSplit{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(in.Description),
		TotalAmount: in.TotalAmount,
		Friends:     in.Friends,
		PerPerson:   in.TotalAmount / float64(in.Friends+1),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.SaveSplit(ctx, split); err != nil {
		return BillSplit{}, apperrors.Wrap("planner_error", "split save failed", err)
	}
	return split, nil
}

func (s *service) ListSplits(ctx context.Context) ([]BillSplit, error) {
	splits, err := s.repo.ListSplits(ctx)
	if err != nil {
		return nil, apperrors.Wrap("planner_error", "split list failed", err)
	}
	return splits, nil
}

func (s *service) SettleSplit(ctx context.Context, id string) (BillSplit, error) {
	split, found, err := s.repo.GetSplit(ctx, id)
	if err != nil {
		return BillSplit{}, apperrors.Wrap("planner_error", "split lookup failed", err)
	}
	if !found {
		return BillSplit{}, apperrors.Wrap("not_found", "split not found", nil)
	}
	if split.Settled {
		return split, nil
	}
	split.Settled = true
	if err := s.repo.SaveSplit(ctx, split); err != nil {
		return BillSplit{}, apperrors.Wrap("planner_error", "split save failed", err)
	}
	return split, nil
}

func (s *service) CreateGoal(ctx context.Context, in GoalInput) (Goal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Goal{}, apperrors.Wrap("invalid_input", "goal name is required", nil)
	}
	if in.TargetAmount <= 0 {
		return Goal{}, apperrors.Wrap("invalid_input", "target amount must be positive", nil)
	}
	if in.CurrentAmount < 0 || in.MonthlyContribution < 0 {
		return Goal{}, apperrors.Wrap("invalid_input", "amounts cannot be negative", nil)
	}

	goal := Goal{
		ID:                  uuid.NewString(),
		Name:                strings.TrimSpace(in.Name),
		TargetAmount:        in.TargetAmount,
		CurrentAmount:       in.CurrentAmount,
		MonthlyContribution: in.MonthlyContribution,
		TargetDate:          in.TargetDate,
		Category:            in.Category,
		Description:         in.Description,
		CreatedAt:           s.now().UTC(),
	}
	if err := s.repo.SaveGoal(ctx, goal); err != nil {
		return Goal{}, apperrors.Wrap("planner_error", "goal save failed", err)
	}
	return withDerived(goal), nil
}

func (s *service) ListGoals(ctx context.Context) ([]Goal, error) {
	goals, err := s.repo.ListGoals(ctx)
	if err != nil {
		return nil, apperrors.Wrap("planner_error", "goal list failed", err)
	}
	for i := range goals {
		goals[i] = withDerived(goals[i])
	}
	return goals, nil
}

func (s *service) DeleteGoal(ctx context.Context, id string) error {
	found, err := s.repo.DeleteGoal(ctx, id)
	if err != nil {
		return apperrors.Wrap("planner_error", "goal delete failed", err)
	}
	if !found {
		return apperrors.Wrap("not_found", "goal not found", nil)
	}
	return nil
}

func (s *service) Contribute(ctx context.Context, id string, amount float64) (Goal, error) {
	if amount <= 0 {
		return Goal{}, apperrors.Wrap("invalid_input", "contribution must be positive", nil)
	}
	goal, found, err := s.repo.GetGoal(ctx, id)
	if err != nil {
		return Goal{}, apperrors.Wrap("planner_error", "goal lookup failed", err)
	}
	if !found {
		return Goal{}, apperrors.Wrap("not_found", "goal not found", nil)
	}

	goal.CurrentAmount += amount
	if err := s.repo.SaveGoal(ctx, goal); err != nil {
		return Goal{}, apperrors.Wrap("planner_error", "goal save failed", err)
	}
	return withDerived(goal), nil
}

// withDerived fills progress and the months-needed projection.
func withDerived(goal Goal) Goal {
	if goal.TargetAmount > 0 {
		goal.ProgressPct = math.Min(goal.CurrentAmount/goal.TargetAmount*100, 100)
	}
	remaining := goal.TargetAmount - goal.CurrentAmount
	switch {
	case remaining <= 0:
		goal.MonthsNeeded = 0
	case goal.MonthlyContribution > 0:
		goal.MonthsNeeded = int(math.Ceil(remaining / goal.MonthlyContribution))
	default:
		goal.MonthsNeeded = -1
	}
	return goal
}
