package intent

// trainingCorpus pairs each financial intent with curated example phrases.
// The classifier fits its TF-IDF vocabulary over these at construction time.
type intentExamples struct {
	intent  Intent
	phrases []string
}

var trainingCorpus = []intentExamples{
	{IntentBudget, []string{
		"help me create a budget", "how to budget", "budget planning",
		"track expenses", "spending plan", "monthly budget", "budget advice",
		"how much should I spend", "expense tracking", "allocate money",
	}},
	{IntentSavings, []string{
		"how to save money", "savings advice", "save more", "emergency fund",
		"saving goals", "savings account", "how much to save", "building savings",
		"savings plan", "save for future", "increase savings",
	}},
	{IntentInvestment, []string{
		"how to invest", "investment advice", "stocks", "bonds", "portfolio",
		"mutual funds", "retirement fund", "investment strategy", "index funds",
		"diversify investments", "long-term investing", "investment options",
	}},
	{IntentDebt, []string{
		"pay off debt", "debt management", "credit card debt", "student loans",
		"debt consolidation", "debt strategy", "eliminate debt", "debt payoff",
		"reduce debt", "debt advice", "loan payments",
	}},
	{IntentTaxes, []string{
		"tax advice", "tax deductions", "tax planning", "tax savings",
		"file taxes", "tax strategies", "tax optimization", "tax preparation",
		"reduce taxes", "tax benefits", "tax credits",
	}},
	{IntentRetirement, []string{
		"retirement planning", "retirement savings", "401k", "IRA", "pension",
		"retire early", "retirement fund", "retirement advice", "retirement goals",
		"save for retirement", "retirement contributions",
	}},
	{IntentInsurance, []string{
		"insurance advice", "health insurance", "life insurance", "auto insurance",
		"insurance coverage", "insurance planning", "insurance needs",
		"insurance comparison", "insurance benefits",
	}},
	{IntentCredit, []string{
		"credit score", "build credit", "improve credit", "credit report",
		"credit card advice", "credit history", "credit repair", "credit utilization",
		"good credit", "credit management",
	}},
	{IntentIncome, []string{
		"increase income", "side hustle", "passive income", "salary negotiation",
		"income streams", "earn more money", "financial growth", "income advice",
		"raise income", "multiple income sources",
	}},
}
