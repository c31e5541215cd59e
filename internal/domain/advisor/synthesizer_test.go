package advisor

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenerateSavingsQuantity(t *testing.T) {
	t.Parallel()

	synth := NewSynthesizer(SynthesizerConfig{}, discardLogger())
	out := synth.Generate("How much should I save?", UserContext{
		Income:          50000,
		MonthlySpending: 30000,
	})

	require.Contains(t, out, "$10000")
}

func TestGenerateSavingsQuantityUnknownSpending(t *testing.T) {
	t.Parallel()

	synth := NewSynthesizer(SynthesizerConfig{}, discardLogger())
	out := synth.Generate("how much can I put into savings each month", UserContext{Income: 4000})

	// 20% of income wins when spending is unknown.
	require.Contains(t, out, "$800")
}

func TestGenerateEmergencyQuantity(t *testing.T) {
	t.Parallel()

	synth := NewSynthesizer(SynthesizerConfig{}, discardLogger())
	out := synth.Generate("how much emergency fund do I need", UserContext{
		Income:          5000,
		MonthlySpending: 3000,
	})

	require.Contains(t, out, "$18000")
	// min(18000/12, 500) = 500 per month
	require.Contains(t, out, "$500")
}

func TestGenerateHonorsPlanningConfig(t *testing.T) {
	t.Parallel()

	synth := NewSynthesizer(SynthesizerConfig{
		SavingsGoalRatio:    0.30,
		EmergencyFundMonths: 12,
	}, discardLogger())
	uc := UserContext{Income: 10000, MonthlySpending: 3000}

	// max(0.30*10000, 0.5*(10000-3000)) = 3500
	out := synth.Generate("how much should I save", uc)
	require.Contains(t, out, "$3500")
	require.Contains(t, out, "30% of your income")

	// 12 months of spending
	out = synth.Generate("how much emergency fund do I need", uc)
	require.Contains(t, out, "$36000")
}

func TestGenerateDebtQuantityUsesCeiling(t *testing.T) {
	t.Parallel()

	synth := NewSynthesizer(SynthesizerConfig{}, discardLogger())
	out := synth.Generate("how much debt is too much", UserContext{Income: 6000})

	require.Contains(t, out, "$1800")
}

func TestGenerateMissingIncomePrompts(t *testing.T) {
	t.Parallel()

	synth := NewSynthesizer(SynthesizerConfig{}, discardLogger())
	out := synth.Generate("how much should I save", UserContext{})

	require.Contains(t, out, "income")
	require.NotContains(t, out, "$")
}

func TestGenerateEmptyQuestionAsksForOne(t *testing.T) {
	t.Parallel()

	synth := NewSynthesizer(SynthesizerConfig{}, discardLogger())
	out := synth.Generate("   ", UserContext{Income: 5000})

	require.Contains(t, out, "What would you like to know")
}

func TestGenerateUnknownTopicReturnsTips(t *testing.T) {
	t.Parallel()

	synth := NewSynthesizer(SynthesizerConfig{}, discardLogger())
	out := synth.Generate("hello there", UserContext{Income: 5000})

	require.Contains(t, out, "emergency fund")
	require.Greater(t, len(out), 10)
}

func TestDetectTopicSpecificity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want topic
	}{
		{"building an emergency savings fund", topicEmergency},
		{"should i pay my credit card or save", topicDebt},
		{"which mutual fund is best", topicInvestment},
		{"help me track my spending", topicBudget},
		{"how do i save more", topicSavings},
		{"tell me a joke", topicGeneral},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.text, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, detectTopic(tc.text))
		})
	}
}

func TestDetectQuestionType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want questionType
	}{
		{"how much should i save", questionQuantity},
		{"should i invest now", questionDecision},
		{"how to build a budget", questionMethod},
		{"what are my options", questionOptions},
		{"tell me about debt", questionGeneral},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.text, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, detectQuestionType(tc.text))
		})
	}
}

func TestEveryResponderIsLongEnough(t *testing.T) {
	t.Parallel()

	uc := UserContext{Income: 5000, MonthlySpending: 3000}
	pp := planParams{savingsGoalRatio: 0.20, emergencyFundMonths: 6}
	for key, fn := range responders {
		out := fn(uc, pp)
		require.Greater(t, len(out), 10, "responder %v/%v", key.topic, key.qt)
	}
}
