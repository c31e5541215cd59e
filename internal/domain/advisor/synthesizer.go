package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// topic buckets recognized by the synthesizer.
type topic string

const (
	topicSavings    topic = "savings"
	topicInvestment topic = "investment"
	topicBudget     topic = "budget"
	topicDebt       topic = "debt"
	topicEmergency  topic = "emergency"
	topicGeneral    topic = "general"
)

// question shapes recognized by the synthesizer.
type questionType string

const (
	questionQuantity questionType = "quantity"
	questionDecision questionType = "decision"
	questionMethod   questionType = "method"
	questionOptions  questionType = "options"
	questionGeneral  questionType = "general"
)

// topicKeywords are checked in order; more specific topics come first so
// "emergency savings" resolves to emergency, not savings.
var topicKeywords = []struct {
	topic    topic
	keywords []string
}{
	{topicEmergency, []string{"emergency", "rainy day", "safety net"}},
	{topicDebt, []string{"debt", "loan", "credit card", "owe", "emi"}},
	{topicInvestment, []string{"invest", "stock", "mutual fund", "sip", "portfolio", "etf"}},
	{topicBudget, []string{"budget", "spending", "expense", "track"}},
	{topicSavings, []string{"save", "saving"}},
}

// SynthesizerConfig tunes the planning figures behind the rule tables.
type SynthesizerConfig struct {
	SavingsGoalRatio    float64
	EmergencyFundMonths int
}

// Synthesizer is the always-available FALLBACK tier. It builds answers
// from rule tables and the caller's own figures, so it cannot fail and
// needs no network.
type Synthesizer struct {
	params planParams
	logger *slog.Logger
}

func NewSynthesizer(cfg SynthesizerConfig, logger *slog.Logger) *Synthesizer {
	pp := planParams{
		savingsGoalRatio:    cfg.SavingsGoalRatio,
		emergencyFundMonths: cfg.EmergencyFundMonths,
	}
	if pp.savingsGoalRatio <= 0 || pp.savingsGoalRatio >= 1 {
		pp.savingsGoalRatio = 0.20
	}
	if pp.emergencyFundMonths <= 0 {
		pp.emergencyFundMonths = 6
	}
	return &Synthesizer{params: pp, logger: logger.With("tier", "synthesizer")}
}

func (s *Synthesizer) Initialize(context.Context) bool { return true }

func (s *Synthesizer) Ping(context.Context) bool { return true }

func (s *Synthesizer) Describe() TierInfo {
	return TierInfo{
		Name:         "builtin-synthesizer",
		Ready:        true,
		Capabilities: []string{"offline", "deterministic", "personalized-figures"},
	}
}

func (s *Synthesizer) Respond(_ context.Context, prompt string, uc UserContext) (string, error) {
	return s.Generate(prompt, uc), nil
}

// Generate produces the rule-based answer for a question. It never
// returns an empty string.
func (s *Synthesizer) Generate(question string, uc UserContext) string {
	text := strings.ToLower(strings.TrimSpace(question))
	if text == "" {
		return "I can help with savings, budgeting, debt, investments and emergency funds. What would you like to know?"
	}

	tp := detectTopic(text)
	qt := detectQuestionType(text)
	s.logger.Debug("synthesizing answer", "topic", tp, "question_type", qt)

	if tp == topicGeneral {
		return cannedTips
	}
	if uc.Income <= 0 {
		return "To give you specific numbers I need your monthly income. Update your profile with your income and ask again."
	}

	if fn, ok := responders[responderKey{tp, qt}]; ok {
		return fn(uc, s.params)
	}
	return responders[responderKey{tp, questionGeneral}](uc, s.params)
}

func detectTopic(text string) topic {
	for _, entry := range topicKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				return entry.topic
			}
		}
	}
	return topicGeneral
}

func detectQuestionType(text string) questionType {
	switch {
	case strings.Contains(text, "how much") || strings.Contains(text, "how many"):
		return questionQuantity
	case strings.Contains(text, "should i") || strings.Contains(text, "can i") || strings.Contains(text, "is it good"):
		return questionDecision
	case strings.Contains(text, "how to") || strings.Contains(text, "how can"):
		return questionMethod
	case strings.Contains(text, "what") || strings.Contains(text, "which"):
		return questionOptions
	default:
		return questionGeneral
	}
}

// planParams carries the configurable planning knobs into the formulas.
type planParams struct {
	savingsGoalRatio    float64
	emergencyFundMonths int
}

// Planning formulas. All guard against unknown spending; callers guard
// against non-positive income.

func surplus(uc UserContext, pp planParams) float64 {
	if uc.MonthlySpending > 0 {
		return uc.Income - uc.MonthlySpending
	}
	return uc.Income * pp.savingsGoalRatio
}

func recommendedSavings(uc UserContext, pp planParams) float64 {
	return max(pp.savingsGoalRatio*uc.Income, 0.5*surplus(uc, pp))
}

func investmentCapacity(uc UserContext, pp planParams) float64 {
	return max(0.15*uc.Income, uc.Income-0.5*uc.Income-pp.savingsGoalRatio*uc.Income)
}

func emergencyTarget(uc UserContext, pp planParams) float64 {
	months := float64(pp.emergencyFundMonths)
	if uc.MonthlySpending > 0 {
		return months * uc.MonthlySpending
	}
	return months / 2 * uc.Income
}

func debtCeiling(uc UserContext) float64 {
	return 0.30 * uc.Income
}

func monthlyEmergencySave(uc UserContext, pp planParams) float64 {
	return min(emergencyTarget(uc, pp)/12, 0.10*uc.Income)
}

func dollars(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}

type responderKey struct {
	topic topic
	qt    questionType
}

var responders = map[responderKey]func(UserContext, planParams) string{
	{topicSavings, questionQuantity}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Based on your income of %s, aim to save about %s per month. That is the larger of %.0f%% of your income and half of what is left after spending.",
			dollars(uc.Income), dollars(recommendedSavings(uc, pp)), pp.savingsGoalRatio*100)
	},
	{topicSavings, questionDecision}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Yes, saving consistently beats saving occasionally. With your income, %s per month is a solid target. Automate it on payday so it happens before spending.",
			dollars(recommendedSavings(uc, pp)))
	},
	{topicSavings, questionMethod}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Set up an automatic transfer of %s to a separate savings account right after payday. Treat it like a bill, then spend what remains guilt-free.",
			dollars(recommendedSavings(uc, pp)))
	},
	{topicSavings, questionOptions}: func(uc UserContext, pp planParams) string {
		return "Good homes for savings, in order: a high-yield savings account for the emergency fund, then short-term deposits for known expenses, then index funds for money you will not touch for five years."
	},
	{topicSavings, questionGeneral}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("A healthy target for you is about %s saved per month. Start with an emergency fund, then direct the rest toward your goals.",
			dollars(recommendedSavings(uc, pp)))
	},
	{topicInvestment, questionQuantity}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("You could comfortably invest around %s per month after covering essentials and savings. Never invest money you may need within a few years.",
			dollars(investmentCapacity(uc, pp)))
	},
	{topicInvestment, questionDecision}: func(uc UserContext, pp planParams) string {
		target := emergencyTarget(uc, pp)
		return fmt.Sprintf("Invest only after your emergency fund reaches %s. Once that is in place, regular investing into diversified index funds is a sound default.",
			dollars(target))
	},
	{topicInvestment, questionMethod}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Start simple: open a brokerage account, set a recurring buy of a broad index fund for about %s per month, and increase it when your income grows.",
			dollars(investmentCapacity(uc, pp)))
	},
	{topicInvestment, questionOptions}: func(uc UserContext, pp planParams) string {
		return "For most people the best starting options are broad index funds or ETFs. They are diversified, cheap, and need no stock picking. Individual stocks come later, if at all."
	},
	{topicInvestment, questionGeneral}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("With your income you have roughly %s per month of investment capacity. Keep it boring: broad funds, regular contributions, long horizon.",
			dollars(investmentCapacity(uc, pp)))
	},
	{topicBudget, questionQuantity}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("A useful split of your %s income: about 50%% needs, 30%% wants, 20%% savings. That means roughly %s per month toward savings.",
			dollars(uc.Income), dollars(0.2*uc.Income))
	},
	{topicBudget, questionDecision}: func(uc UserContext, pp planParams) string {
		return "Yes, a budget is worth it. People who track spending for even one month usually find leaks worth 5-10% of income. Start rough, refine later."
	},
	{topicBudget, questionMethod}: func(uc UserContext, pp planParams) string {
		return "Track every expense for one month, group them into categories, then set a ceiling per category. Review weekly for ten minutes. The point is awareness, not perfection."
	},
	{topicBudget, questionOptions}: func(uc UserContext, pp planParams) string {
		return "Popular approaches: the 50/30/20 split for simplicity, zero-based budgeting for control, or envelope budgeting if you overspend on cards. Pick whichever you will actually keep up."
	},
	{topicBudget, questionGeneral}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Start from the 50/30/20 rule on your %s income and adjust to your reality. The only bad budget is the one you abandon.",
			dollars(uc.Income))
	},
	{topicDebt, questionQuantity}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Keep total debt payments under %s per month, about 30%% of your income. Above that, debt starts dictating your choices.",
			dollars(debtCeiling(uc)))
	},
	{topicDebt, questionDecision}: func(uc UserContext, pp planParams) string {
		return "Pay off high-interest debt before investing. A card charging 20% is a guaranteed 20% return when you pay it down, and no investment reliably beats that."
	},
	{topicDebt, questionMethod}: func(uc UserContext, pp planParams) string {
		return "List debts by interest rate. Pay minimums on everything, then put every spare dollar at the highest rate first. When it dies, roll its payment into the next one."
	},
	{topicDebt, questionOptions}: func(uc UserContext, pp planParams) string {
		return "Two proven orders: avalanche (highest interest first, cheapest overall) or snowball (smallest balance first, best for motivation). Either works if you stick with it."
	},
	{topicDebt, questionGeneral}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Aim to keep debt service below %s per month. Prioritize the highest interest rates and avoid adding new balances while paying down old ones.",
			dollars(debtCeiling(uc)))
	},
	{topicEmergency, questionQuantity}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Your emergency fund target is about %s. Saving %s per month gets you there within roughly a year without straining your budget.",
			dollars(emergencyTarget(uc, pp)), dollars(monthlyEmergencySave(uc, pp)))
	},
	{topicEmergency, questionDecision}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Yes, the emergency fund comes first. Until you hold about %s in accessible savings, pause extra investing and aggressive debt prepayment.",
			dollars(emergencyTarget(uc, pp)))
	},
	{topicEmergency, questionMethod}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Open a separate high-yield savings account and automate %s into it monthly. Keep it out of your daily banking app so it stays untouched.",
			dollars(monthlyEmergencySave(uc, pp)))
	},
	{topicEmergency, questionOptions}: func(uc UserContext, pp planParams) string {
		return "Keep emergency money where it is safe and reachable within a day: a high-yield savings account or a money-market fund. Not stocks, not fixed deposits with penalties."
	},
	{topicEmergency, questionGeneral}: func(uc UserContext, pp planParams) string {
		return fmt.Sprintf("Target about %s as your safety net, roughly %d months of expenses. It turns a job loss or a medical bill from a crisis into an inconvenience.",
			dollars(emergencyTarget(uc, pp)), pp.emergencyFundMonths)
	},
}

// cannedTips is the last-resort answer when no topic matches. It stays
// useful on its own so a fully degraded cascade still helps the user.
const cannedTips = `Here are some fundamentals that serve almost everyone:
1. Spend less than you earn and track where the difference goes.
2. Build an emergency fund covering 3-6 months of expenses.
3. Pay off high-interest debt before investing.
4. Save at least 20% of your income if you can; automate it.
5. Invest long-term money in diversified, low-cost funds.
Ask me about savings, budgeting, debt, investing or emergency funds for specifics.`
