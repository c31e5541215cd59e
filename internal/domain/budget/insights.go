package budget

import (
	"fmt"
	"sort"
)

// Insights highlights the dominant spending category and cash flow
// pressure points. Income must be positive for ratio-based insights.
func (s *service) Insights(income float64, expenses map[string]float64) []Insight {
	insights := make([]Insight, 0, 4)

	topCategory := ""
	topAmount := 0.0
	totalExpenses := 0.0
	categories := make([]string, 0, len(expenses))
	for category := range expenses {
		if category == savingsKey {
			continue
		}
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		amount := expenses[category]
		totalExpenses += amount
		if amount > topAmount {
			topAmount = amount
			topCategory = category
		}
	}

	if topCategory != "" {
		insights = append(insights, Insight{
			Type:     InsightTopCategory,
			Category: topCategory,
			Message:  fmt.Sprintf("Your biggest expense is %s at $%.2f per month.", topCategory, topAmount),
		})
		if income > 0 {
			share := topAmount / income
			switch {
			case share > 0.30:
				insights = append(insights, Insight{
					Type:     InsightWarning,
					Category: topCategory,
					Message:  fmt.Sprintf("%s takes more than 30%% of your income. Rebalancing here has the biggest impact.", topCategory),
				})
			case share > 0.20:
				insights = append(insights, Insight{
					Type:     InsightOpportunity,
					Category: topCategory,
					Message:  fmt.Sprintf("%s is over 20%% of your income. Even a small cut frees up real money.", topCategory),
				})
			}
		}
	}

	if income > 0 {
		expenseRatio := totalExpenses / income
		switch {
		case expenseRatio > 1.0:
			insights = append(insights, Insight{
				Type:    InsightCashFlow,
				Message: "You are spending more than you earn. Cutting expenses is urgent.",
			})
		case expenseRatio > 0.90:
			insights = append(insights, Insight{
				Type:    InsightCashFlow,
				Message: "Expenses consume over 90% of your income, leaving little room for savings.",
			})
		case expenseRatio < 0.80:
			insights = append(insights, Insight{
				Type:    InsightCashFlow,
				Message: "You have healthy breathing room between income and expenses. Consider saving the surplus.",
			})
		}
	}

	return insights
}
