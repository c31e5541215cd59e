package intent

// Intent is the classified financial topic of a user question.
type Intent string

const (
	IntentBudget     Intent = "budget"
	IntentSavings    Intent = "savings"
	IntentInvestment Intent = "investment"
	IntentDebt       Intent = "debt"
	IntentTaxes      Intent = "taxes"
	IntentRetirement Intent = "retirement"
	IntentInsurance  Intent = "insurance"
	IntentCredit     Intent = "credit"
	IntentIncome     Intent = "income"
	IntentGeneral    Intent = "general"
)

// Entities holds typed values extracted from free text. A nil pointer or
// empty string means the entity was not present.
type Entities struct {
	Amount     *float64 `json:"amount,omitempty"`
	Percentage *float64 `json:"percentage,omitempty"`
	Age        *int     `json:"age,omitempty"`
	TimePeriod string   `json:"timePeriod,omitempty"`
	Profession string   `json:"profession,omitempty"`
}

// Result is the outcome of classifying a single question.
type Result struct {
	Intent        Intent   `json:"intent"`
	Confidence    float64  `json:"confidence"`
	Entities      Entities `json:"entities"`
	ProcessedText string   `json:"processedText"`
	OriginalText  string   `json:"originalText"`
}

// confidenceThreshold is the minimum similarity required to accept a
// non-general intent from the vector classifier.
const confidenceThreshold = 0.1
