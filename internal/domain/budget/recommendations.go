package budget

import (
	"fmt"
	"sort"

	"github.com/finbuddy/finance-advisor/internal/domain/profile"
)

var typeAdvice = map[profile.UserType][]string{
	profile.TypeStudent: {
		"Prioritize building a small emergency buffer, even $500 helps.",
		"Use student discounts and campus resources to cut everyday costs.",
	},
	profile.TypeProfessional: {
		"Make sure you are capturing any employer retirement match before extra savings.",
		"Automate transfers on payday so saving happens before spending.",
	},
	profile.TypeYoungAdult: {
		"Focus on a 3-month emergency fund before aggressive investing.",
		"Keep fixed commitments low while your income is still growing.",
	},
	profile.TypeSenior: {
		"Keep several months of expenses liquid to avoid selling investments in a downturn.",
		"Review recurring costs yearly; small subscriptions add up on a fixed income.",
	},
	profile.TypeGeneral: {
		"Track every expense category for a month to find your biggest leaks.",
	},
}

// reductionTips suggest a concrete cut per overspent category.
var reductionTips = map[string]string{
	"housing":        "Consider a roommate, refinancing, or negotiating rent at renewal.",
	"food":           "Plan meals for the week and cook in batches to cut food costs.",
	"transportation": "Compare insurance quotes and consolidate trips to reduce transport costs.",
	"utilities":      "Audit subscriptions bundled into utility bills and adjust thermostat settings.",
	"entertainment":  "Set a fixed monthly fun budget and rotate streaming services.",
	"personal":       "Introduce a 48-hour wait rule before non-essential purchases.",
	"debt":           "Target the highest-interest balance first while paying minimums elsewhere.",
	"insurance":      "Shop your policies annually; loyalty rarely gets the best rate.",
	"healthcare":     "Check whether a high-deductible plan plus HSA fits your usage.",
}

// buildRecommendations merges user-type advice, per-category reduction
// tips for overspent categories, and a 50/30/20 reminder when the
// savings rate is below 15 percent.
func buildRecommendations(summary Summary, userType profile.UserType, income float64, expenses map[string]float64) []string {
	recs := make([]string, 0, 4)

	advice, ok := typeAdvice[userType]
	if !ok {
		advice = typeAdvice[profile.TypeGeneral]
	}
	recs = append(recs, advice...)

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
		recommended := recommendedShare(category) / 100 * income
		if amount <= recommended*1.5 {
			continue
		}
		overspend := amount - recommended
		tip, ok := reductionTips[category]
		if !ok {
			tip = "Look for ways to trim this category."
		}
		recs = append(recs, fmt.Sprintf("You are spending about $%.0f more than recommended on %s. %s", overspend, category, tip))
	}

	if summary.SavingsRate < 15 {
		recs = append(recs, "Try the 50/30/20 rule: 50% needs, 30% wants, 20% savings.")
	}
	return recs
}
