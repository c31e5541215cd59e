package profile

import "time"

// UserType is the coarse demographic segment driving tone and advice content.
type UserType string

const (
	TypeStudent      UserType = "student"
	TypeProfessional UserType = "professional"
	TypeYoungAdult   UserType = "young_adult"
	TypeSenior       UserType = "senior"
	TypeGeneral      UserType = "general"
)

// ExperienceLevel describes self-reported or derived financial literacy.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// RiskTolerance is the user's stated investment risk appetite.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// Profile is the demographic and financial record for one user.
// UserType is derived and cached; it is recomputed on every attribute
// change and never set directly by callers.
type Profile struct {
	ID              string          `json:"id"`
	Age             int             `json:"age,omitempty"`
	Occupation      string          `json:"occupation,omitempty"`
	Income          float64         `json:"income,omitempty"`
	CurrentBalance  float64         `json:"currentBalance,omitempty"`
	MonthlySpending float64         `json:"monthlySpending,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`
	Goals           []string        `json:"goals,omitempty"`
	RiskTolerance   RiskTolerance   `json:"riskTolerance,omitempty"`
	Description     string          `json:"description,omitempty"`
	Situation       string          `json:"situation,omitempty"`
	UserType        UserType        `json:"userType"`
	LastUpdated     time.Time       `json:"lastUpdated"`
}

// Attributes is a partial profile update; nil fields are left unchanged.
type Attributes struct {
	Age             *int             `json:"age,omitempty"`
	Occupation      *string          `json:"occupation,omitempty"`
	Income          *float64         `json:"income,omitempty"`
	CurrentBalance  *float64         `json:"currentBalance,omitempty"`
	MonthlySpending *float64         `json:"monthlySpending,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experienceLevel,omitempty"`
	Goals           []string         `json:"goals,omitempty"`
	RiskTolerance   *RiskTolerance   `json:"riskTolerance,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Situation       *string          `json:"situation,omitempty"`
}

// Preferences bundles everything the presentation layer needs to tailor
// a conversation to one user.
type Preferences struct {
	UserType        UserType           `json:"userType"`
	Style           CommunicationStyle `json:"communicationStyle"`
	Age             int                `json:"age,omitempty"`
	ExperienceLevel ExperienceLevel    `json:"experienceLevel"`
	PrimaryGoals    []string           `json:"primaryGoals,omitempty"`
	RiskTolerance   RiskTolerance      `json:"riskTolerance"`
}

// CommunicationStyle controls how advice text is adapted per user type.
type CommunicationStyle struct {
	Greeting   string `json:"greeting"`
	Tone       string `json:"tone"`
	Complexity string `json:"complexity"`
}
