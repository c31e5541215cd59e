package planner

import "time"

// Subscription is one recurring charge the user tracks.
type Subscription struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MonthlyCost float64   `json:"monthlyCost"`
	Category    string    `json:"category"`
	NextBilling time.Time `json:"nextBilling"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SubscriptionTotals summarizes the recurring load.
type SubscriptionTotals struct {
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

// BillSplit divides a shared expense between the user and their friends.
// PerPerson includes the user, so the divisor is friends + 1.
type BillSplit struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	TotalAmount float64   `json:"totalAmount"`
	Friends     int       `json:"friends"`
	PerPerson   float64   `json:"perPerson"`
	Settled     bool      `json:"settled"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Goal is a savings goal with a monthly contribution plan.
type Goal struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	TargetAmount        float64   `json:"targetAmount"`
	CurrentAmount       float64   `json:"currentAmount"`
	MonthlyContribution float64   `json:"monthlyContribution"`
	TargetDate          time.Time `json:"targetDate"`
	Category            string    `json:"category,omitempty"`
	Description         string    `json:"description,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`

	// Derived on every read. MonthsNeeded is -1 when the goal is
	// unfinished and no monthly contribution is set.
	ProgressPct  float64 `json:"progressPct"`
	MonthsNeeded int     `json:"monthsNeeded"`
}

// SubscriptionInput creates a subscription.
type SubscriptionInput struct {
	Name        string    `json:"name"`
	MonthlyCost float64   `json:"monthlyCost"`
	Category    string    `json:"category"`
	NextBilling time.Time `json:"nextBilling"`
}

// SplitInput creates a bill split.
type SplitInput struct {
	Description string  `json:"description"`
	TotalAmount float64 `json:"totalAmount"`
	Friends     int     `json:"friends"`
}

// GoalInput creates a savings goal.
type GoalInput struct {
	Name                string    `json:"name"`
	TargetAmount        float64   `json:"targetAmount"`
	CurrentAmount       float64   `json:"currentAmount"`
	MonthlyContribution float64   `json:"monthlyContribution"`
	TargetDate          time.Time `json:"targetDate"`
	Category            string    `json:"category"`
	Description         string    `json:"description"`
}
