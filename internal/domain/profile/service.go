package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/finbuddy/finance-advisor/pkg/errors"
)

// Service exposes user profile management and classification.
type Service interface {
	Upsert(ctx context.Context, id string, attrs Attributes) (Profile, error)
	Get(ctx context.Context, id string) (Profile, bool, error)
	ClassifyType(ctx context.Context, id string) (UserType, error)
	GetPreferences(ctx context.Context, id string) (Preferences, error)
	Recommendations(ctx context.Context, id string) ([]string, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the profile domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "profile.service"),
		now:    time.Now,
	}
}

// Upsert merges the given attributes into the stored profile and caches
// the freshly derived user type. Partial staleness is not allowed: the
// type is recomputed on every change.
func (s *service) Upsert(ctx context.Context, id string, attrs Attributes) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, apperrors.Wrap("invalid_input", "profile id cannot be empty", nil)
	}

	current, _, err := s.repo.Get(ctx, id)
	if err != nil {
		return Profile{}, apperrors.Wrap("profile_error", "profile lookup failed", err)
	}
	current.ID = id
	applyAttributes(&current, attrs)

	current.UserType = classify(current)
	current.LastUpdated = s.now().UTC()

	if err := s.repo.Save(ctx, current); err != nil {
		return Profile{}, apperrors.Wrap("profile_error", "profile save failed", err)
	}
	s.logger.Info("profile upserted", "id", id, "user_type", current.UserType)
	return current, nil
}

func (s *service) Get(ctx context.Context, id string) (Profile, bool, error) {
	p, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return Profile{}, false, apperrors.Wrap("profile_error", "profile lookup failed", err)
	}
	return p, found, nil
}

// ClassifyType returns the cached user type, recomputing only when the
// profile is missing a cached value.
func (s *service) ClassifyType(ctx context.Context, id string) (UserType, error) {
	p, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return TypeGeneral, apperrors.Wrap("profile_error", "profile lookup failed", err)
	}
	if !found {
		return TypeGeneral, nil
	}
	if p.UserType != "" {
		return p.UserType, nil
	}
	return classify(p), nil
}

func (s *service) GetPreferences(ctx context.Context, id string) (Preferences, error) {
	p, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return Preferences{}, apperrors.Wrap("profile_error", "profile lookup failed", err)
	}
	userType := TypeGeneral
	if found && p.UserType != "" {
		userType = p.UserType
	}

	risk := p.RiskTolerance
	if risk == "" {
		risk = RiskModerate
	}

	return Preferences{
		UserType:        userType,
		Style:           styleFor(userType),
		Age:             p.Age,
		ExperienceLevel: deriveExperience(p),
		PrimaryGoals:    p.Goals,
		RiskTolerance:   risk,
	}, nil
}

func (s *service) Recommendations(ctx context.Context, id string) ([]string, error) {
	userType, err := s.ClassifyType(ctx, id)
	if err != nil {
		return nil, err
	}
	return typeRecommendations[userType], nil
}

func applyAttributes(p *Profile, attrs Attributes) {
	if attrs.Age != nil {
		p.Age = *attrs.Age
	}
	if attrs.Occupation != nil {
		p.Occupation = *attrs.Occupation
	}
	if attrs.Income != nil {
		p.Income = *attrs.Income
	}
	if attrs.CurrentBalance != nil {
		p.CurrentBalance = *attrs.CurrentBalance
	}
	if attrs.MonthlySpending != nil {
		p.MonthlySpending = *attrs.MonthlySpending
	}
	if attrs.ExperienceLevel != nil {
		p.ExperienceLevel = *attrs.ExperienceLevel
	}
	if attrs.Goals != nil {
		p.Goals = attrs.Goals
	}
	if attrs.RiskTolerance != nil {
		p.RiskTolerance = *attrs.RiskTolerance
	}
	if attrs.Description != nil {
		p.Description = *attrs.Description
	}
	if attrs.Situation != nil {
		p.Situation = *attrs.Situation
	}
}

// deriveExperience falls back to an age/type heuristic when the user has
// not stated a level.
func deriveExperience(p Profile) ExperienceLevel {
	if p.ExperienceLevel != "" {
		return p.ExperienceLevel
	}
	switch {
	case p.UserType == TypeStudent || (p.Age > 0 && p.Age < 25):
		return ExperienceBeginner
	case p.UserType == TypeProfessional && p.Age > 35:
		return ExperienceAdvanced
	default:
		return ExperienceIntermediate
	}
}
