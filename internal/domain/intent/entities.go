package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Patterns operate on preprocessed text, which is already lowercased with
// contractions expanded ("i'm" never survives preprocessing).
var (
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`),
		regexp.MustCompile(`[\d,]+\s*(?:dollars?|bucks?|\$)`),
		regexp.MustCompile(`usd\s*[\d,]+(?:\.\d{2})?`),
		regexp.MustCompile(`[\d,]+(?:\.\d{2})?\s*(?:dollars?|usd|\$)`),
	}
	percentagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`[\d.]+\s*%`),
		regexp.MustCompile(`[\d.]+\s*percent`),
		regexp.MustCompile(`[\d.]+\s*per\s*cent`),
	}
	timePeriodPatterns = []*regexp.Regexp{
		regexp.MustCompile(`monthly|weekly|yearly|annually|daily`),
		regexp.MustCompile(`per\s+(?:month|week|year|day)`),
		regexp.MustCompile(`(?:every|each)\s+(?:month|week|year|day)`),
		regexp.MustCompile(`\d+\s*(?:months?|weeks?|years?|days?)`),
	}
	agePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:i am|age|aged)\s*\d+`),
		regexp.MustCompile(`\d+\s*(?:years? old|y\.?o\.?)`),
		regexp.MustCompile(`born in \d{4}`),
	}
	professionKeywordRe = regexp.MustCompile(`student|professional|worker|employee|self-employed|entrepreneur`)
	professionPhraseRe  = regexp.MustCompile(`(?:i am a|i work as an?|i work as)\s+(\w+(?:\s+\w+)?)`)

	numberRe  = regexp.MustCompile(`[\d.]+`)
	integerRe = regexp.MustCompile(`\d+`)
)

// extractEntities pulls typed values out of preprocessed text. The first
// match wins for each entity kind.
func extractEntities(processed string) Entities {
	var entities Entities

	if raw := firstMatch(amountPatterns, processed); raw != "" {
		amount := parseAmount(raw)
		entities.Amount = &amount
	}
	if raw := firstMatch(percentagePatterns, processed); raw != "" {
		pct := parseNumber(raw)
		entities.Percentage = &pct
	}
	if raw := firstMatch(agePatterns, processed); raw != "" {
		age := parseInteger(raw)
		entities.Age = &age
	}
	entities.TimePeriod = firstMatch(timePeriodPatterns, processed)
	entities.Profession = extractProfession(processed)

	return entities
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if match := re.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

func extractProfession(text string) string {
	if sub := professionPhraseRe.FindStringSubmatch(text); len(sub) == 2 {
		return strings.TrimSpace(sub[1])
	}
	return professionKeywordRe.FindString(text)
}

// parseAmount strips currency symbols and thousands separators.
func parseAmount(raw string) float64 {
	var cleaned strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			cleaned.WriteRune(r)
		}
	}
	value, err := strconv.ParseFloat(cleaned.String(), 64)
	if err != nil {
		return 0
	}
	return value
}

func parseNumber(raw string) float64 {
	match := numberRe.FindString(raw)
	value, err := strconv.ParseFloat(strings.Trim(match, "."), 64)
	if err != nil {
		return 0
	}
	return value
}

func parseInteger(raw string) int {
	match := integerRe.FindString(raw)
	value, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return value
}
