package budget

import (
	"log/slog"
	"math"
	"sort"

	"github.com/finbuddy/finance-advisor/internal/domain/profile"
)

// savingsKey is special cased in the expense map: its value is the
// authoritative net savings figure and it never counts toward expenses.
// When the key is absent, net savings is income minus total expenses.
const savingsKey = "savings"

// recommendedShares maps expense categories to the share of income they
// should not exceed, in percent. Unknown categories default to 5.
var recommendedShares = map[string]float64{
	"housing":        30,
	"food":           12,
	"transportation": 15,
	"utilities":      8,
	"insurance":      5,
	"healthcare":     5,
	"savings":        20,
	"entertainment":  5,
	"personal":       5,
	"debt":           10,
}

const defaultShare = 5

// Service computes budget health summaries and spending insights.
type Service interface {
	Summarize(income float64, expenses map[string]float64, userType profile.UserType) Summary
	Insights(income float64, expenses map[string]float64) []Insight
}

type service struct {
	logger *slog.Logger
}

// NewService wires up the budget analysis domain.
func NewService(logger *slog.Logger) Service {
	return &service{logger: logger.With("component", "budget.service")}
}

func (s *service) Summarize(income float64, expenses map[string]float64, userType profile.UserType) Summary {
	if income <= 0 {
		return Summary{
			Income:      income,
			HealthScore: 0,
			Rating:      RatingCritical,
			ImprovementAreas: []string{
				"No income recorded. Add your monthly income to get a meaningful analysis.",
			},
		}
	}

	netSavings, hasSavings := expenses[savingsKey]
	totalExpenses := 0.0
	for category, amount := range expenses {
		if category == savingsKey {
			continue
		}
		totalExpenses += amount
	}
	if !hasSavings {
		netSavings = income - totalExpenses
	}
	savingsRate := netSavings / income * 100

	summary := Summary{
		Income:        income,
		TotalExpenses: totalExpenses,
		NetSavings:    netSavings,
		SavingsRate:   savingsRate,
		ExpenseRatio:  round1(totalExpenses / income * 100),
	}

	summary.HealthScore = healthScore(income, totalExpenses, netSavings, expenses["debt"])
	summary.Rating = rating(summary.HealthScore)

	s.analyzeCategories(income, expenses, &summary)
	summary.Recommendations = buildRecommendations(summary, userType, income, expenses)

	s.logger.Debug("budget summarized",
		"income", income,
		"total_expenses", totalExpenses,
		"score", summary.HealthScore,
		"rating", summary.Rating)
	return summary
}

// healthScore awards up to 30 points for savings rate, 25 for debt
// ratio, 25 for expense ratio and 20 for emergency cushion.
func healthScore(income, totalExpenses, netSavings, debt float64) int {
	score := 0

	savingsRate := netSavings / income
	switch {
	case savingsRate >= 0.20:
		score += 30
	case savingsRate >= 0.15:
		score += 25
	case savingsRate >= 0.10:
		score += 20
	case savingsRate >= 0.05:
		score += 15
	}

	debtRatio := debt / income
	switch {
	case debtRatio <= 0.10:
		score += 25
	case debtRatio <= 0.20:
		score += 20
	case debtRatio <= 0.36:
		score += 15
	default:
		score += 5
	}

	expenseRatio := totalExpenses / income
	switch {
	case expenseRatio <= 0.75:
		score += 25
	case expenseRatio <= 0.85:
		score += 20
	case expenseRatio <= 0.95:
		score += 15
	case expenseRatio <= 1.0:
		score += 10
	}

	switch {
	case totalExpenses > 0 && netSavings >= 6*totalExpenses:
		score += 20
	case totalExpenses > 0 && netSavings >= 3*totalExpenses:
		score += 15
	case totalExpenses > 0 && netSavings >= totalExpenses:
		score += 10
	case netSavings > 0:
		score += 5
	}

	return score
}

func rating(score int) string {
	switch {
	case score >= 90:
		return RatingExcellent
	case score >= 80:
		return RatingGood
	case score >= 70:
		return RatingFair
	case score >= 60:
		return RatingPoor
	default:
		return RatingCritical
	}
}

func (s *service) analyzeCategories(income float64, expenses map[string]float64, summary *Summary) {
	categories := make([]string, 0, len(expenses))
	for category := range expenses {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		amount := expenses[category]
		recommended := recommendedShare(category)
		actual := amount / income * 100

		analysis := CategoryAnalysis{
			Category:       category,
			Amount:         amount,
			ActualPct:      round1(actual),
			RecommendedPct: recommended,
		}
		switch {
		case actual > recommended*1.5:
			analysis.Status = StatusPoor
			analysis.Overspend = amount - recommended/100*income
			summary.ImprovementAreas = append(summary.ImprovementAreas,
				"Your "+category+" spending is well above the recommended level.")
		case actual > recommended*1.2:
			analysis.Status = StatusFair
		default:
			analysis.Status = StatusGood
			if actual <= recommended {
				summary.PositiveAspects = append(summary.PositiveAspects,
					"Your "+category+" spending is within the recommended range.")
			}
		}
		summary.Categories = append(summary.Categories, analysis)
	}

	switch {
	case summary.SavingsRate >= 20:
		summary.PositiveAspects = append(summary.PositiveAspects,
			"Excellent savings rate. You are saving 20% or more of your income.")
	case summary.SavingsRate >= 15:
		summary.PositiveAspects = append(summary.PositiveAspects,
			"Good savings rate. You are saving 15% or more of your income.")
	case summary.SavingsRate >= 10:
		summary.ImprovementAreas = append(summary.ImprovementAreas,
			"Consider raising your savings rate toward 15-20% of income.")
	default:
		summary.ImprovementAreas = append(summary.ImprovementAreas,
			"Low savings rate. Aim to save at least 10-15% of your income.")
	}
}

func recommendedShare(category string) float64 {
	if share, ok := recommendedShares[category]; ok {
		return share
	}
	return defaultShare
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
