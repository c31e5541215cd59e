package profile

import "strings"

var communicationStyles = map[UserType]CommunicationStyle{
	TypeStudent:      {Greeting: "Hey!", Tone: "casual", Complexity: "simple"},
	TypeProfessional: {Greeting: "Hello", Tone: "professional", Complexity: "detailed"},
	TypeYoungAdult:   {Greeting: "Hi there!", Tone: "friendly", Complexity: "balanced"},
	TypeSenior:       {Greeting: "Good day", Tone: "respectful", Complexity: "clear"},
	TypeGeneral:      {Greeting: "Hello", Tone: "neutral", Complexity: "balanced"},
}

func styleFor(userType UserType) CommunicationStyle {
	if style, ok := communicationStyles[userType]; ok {
		return style
	}
	return communicationStyles[TypeGeneral]
}

var casualReplacements = [][2]string{
	{"I recommend", "I'd suggest"},
	{"It is advisable", "It's a good idea"},
	{"Furthermore", "Also"},
	{"Therefore", "So"},
	{"In conclusion", "Bottom line"},
	{"Nevertheless", "But"},
	{"Subsequently", "Then"},
}

var jargonSimplifications = [][2]string{
	{"diversification", "spreading your investments"},
	{"portfolio", "investment collection"},
	{"asset allocation", "how you split your money"},
	{"compound interest", "earning interest on your interest"},
	{"volatility", "price changes"},
	{"liquidity", "how easily you can access your money"},
}

// AdaptMessage rewrites advice text to match the tone and complexity
// expected by the given user type. Greetings are only prepended for
// conversation starters.
func AdaptMessage(userType UserType, message, context string) string {
	style := styleFor(userType)

	switch style.Tone {
	case "casual":
		for _, pair := range casualReplacements {
			message = strings.ReplaceAll(message, pair[0], pair[1])
		}
	case "respectful":
		lowered := strings.ToLower(message)
		if !strings.HasPrefix(message, "Please") && !strings.HasPrefix(message, "I would") &&
			(strings.Contains(lowered, "recommend") || strings.Contains(lowered, "suggest")) {
			message = "I would respectfully " + strings.ToLower(message[:1]) + message[1:]
		}
	}

	if style.Complexity == "simple" {
		for _, pair := range jargonSimplifications {
			message = strings.ReplaceAll(message, pair[0], pair[1])
		}
	}

	if context == "greeting" {
		message = style.Greeting + " " + message
	}
	return message
}

var typeRecommendations = map[UserType][]string{
	TypeStudent: {
		"Start with a simple budget tracking app",
		"Look into student banking accounts with no fees",
		"Consider a secured credit card to build credit history",
	},
	TypeProfessional: {
		"Maximize your employer's 401(k) matching",
		"Consider increasing your emergency fund to 6 months of expenses",
		"Review your insurance coverage annually",
	},
	TypeYoungAdult: {
		"Focus on building an emergency fund first",
		"Start investing in low-cost index funds",
		"Consider automating your savings",
	},
	TypeSenior: {
		"Review your retirement withdrawal strategy",
		"Consider long-term care insurance",
		"Focus on preserving capital while generating income",
	},
	TypeGeneral: {
		"Track your income and expenses for at least one month",
		"Build an emergency fund covering three to six months of expenses",
		"Pay down high-interest debt before investing",
	},
}
