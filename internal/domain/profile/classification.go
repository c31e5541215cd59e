package profile

import "strings"

// classificationCriteria scores a profile against one candidate user type.
// Declaration order doubles as the tie-break priority.
type classificationCriteria struct {
	userType         UserType
	ageMin, ageMax   int
	keywords         []string
	incomeIndicators []string
	priorities       []string
}

var classifications = []classificationCriteria{
	{
		userType: TypeStudent,
		ageMin:   16, ageMax: 26,
		keywords:         []string{"student", "college", "university", "school", "studying", "tuition"},
		incomeIndicators: []string{"part-time", "allowance", "scholarship", "student loan"},
		priorities:       []string{"textbooks", "tuition", "dorm", "cheap food", "student discount"},
	},
	{
		userType: TypeProfessional,
		ageMin:   22, ageMax: 65,
		keywords:         []string{"work", "job", "career", "salary", "professional", "office", "company"},
		incomeIndicators: []string{"salary", "bonus", "401k", "health insurance", "benefits"},
		priorities:       []string{"retirement", "mortgage", "investment", "tax optimization"},
	},
	{
		userType: TypeYoungAdult,
		ageMin:   18, ageMax: 30,
		keywords:         []string{"first job", "starting out", "new graduate", "entry level"},
		incomeIndicators: []string{"entry level", "starting salary", "first paycheck"},
		priorities:       []string{"emergency fund", "credit building", "apartment", "first car"},
	},
	{
		userType: TypeSenior,
		ageMin:   55, ageMax: 100,
		keywords:         []string{"retirement", "pension", "retired", "senior", "social security"},
		incomeIndicators: []string{"pension", "social security", "retirement fund", "fixed income"},
		priorities:       []string{"healthcare", "estate planning", "conservative investing"},
	},
}

// classificationThreshold is the minimum winning score; anything at or
// below it falls back to the general type.
const classificationThreshold = 2

// classify derives the user type from age, occupation keywords and stated
// goals. Ties resolve to the earliest declared type.
func classify(p Profile) UserType {
	textData := strings.ToLower(strings.Join([]string{
		p.Occupation,
		p.Description,
		strings.Join(p.Goals, " "),
		p.Situation,
	}, " "))

	bestScore := 0
	best := TypeGeneral
	for _, criteria := range classifications {
		score := 0

		if p.Age > 0 {
			switch {
			case p.Age >= criteria.ageMin && p.Age <= criteria.ageMax:
				score += 3
			case abs(p.Age-criteria.ageMin) <= 5 || abs(p.Age-criteria.ageMax) <= 5:
				score++
			}
		}
		for _, keyword := range criteria.keywords {
			if strings.Contains(textData, keyword) {
				score += 2
			}
		}
		for _, indicator := range criteria.incomeIndicators {
			if strings.Contains(textData, indicator) {
				score++
			}
		}
		for _, priority := range criteria.priorities {
			if strings.Contains(textData, priority) {
				score++
			}
		}

		if score > bestScore {
			bestScore = score
			best = criteria.userType
		}
	}

	if bestScore > classificationThreshold {
		return best
	}
	return TypeGeneral
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
