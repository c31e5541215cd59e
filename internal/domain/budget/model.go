package budget

// Category spending status levels.
const (
	StatusGood = "good"
	StatusFair = "fair"
	StatusPoor = "poor"
)

// Health ratings mapped from the 0-100 score.
const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingFair      = "Fair"
	RatingPoor      = "Poor"
	RatingCritical  = "Critical"
)

// CategoryAnalysis compares one spending category against its
// recommended share of income.
type CategoryAnalysis struct {
	Category       string  `json:"category"`
	Amount         float64 `json:"amount"`
	ActualPct      float64 `json:"actualPct"`
	RecommendedPct float64 `json:"recommendedPct"`
	Status         string  `json:"status"`
	Overspend      float64 `json:"overspend,omitempty"`
}

// Summary is the full budget health report for one month of figures.
// The savings entry in the expense map is authoritative for net savings
// and is excluded from total expenses.
type Summary struct {
	Income           float64            `json:"income"`
	TotalExpenses    float64            `json:"totalExpenses"`
	NetSavings       float64            `json:"netSavings"`
	SavingsRate      float64            `json:"savingsRate"`
	ExpenseRatio     float64            `json:"expenseRatio"`
	HealthScore      int                `json:"healthScore"`
	Rating           string             `json:"rating"`
	Categories       []CategoryAnalysis `json:"categories"`
	PositiveAspects  []string           `json:"positiveAspects"`
	ImprovementAreas []string           `json:"improvementAreas"`
	Recommendations  []string           `json:"recommendations"`
}

// Insight types produced by spending analysis.
const (
	InsightTopCategory = "top_category"
	InsightWarning     = "warning"
	InsightOpportunity = "opportunity"
	InsightCashFlow    = "cash_flow"
)

// Insight is one observation about the user's spending pattern.
type Insight struct {
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message"`
}
