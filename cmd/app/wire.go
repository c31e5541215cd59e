//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/finbuddy/finance-advisor/internal/bootstrap"
	"github.com/finbuddy/finance-advisor/internal/domain/auth"
	"github.com/finbuddy/finance-advisor/internal/domain/budget"
	"github.com/finbuddy/finance-advisor/internal/domain/intent"
	"github.com/finbuddy/finance-advisor/internal/domain/planner"
	"github.com/finbuddy/finance-advisor/internal/domain/profile"
	"github.com/finbuddy/finance-advisor/internal/infra/config"
	httpiface "github.com/finbuddy/finance-advisor/internal/interface/http"
	"github.com/finbuddy/finance-advisor/pkg/logger"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideGeminiClient,
		provideGraniteClient,
		provideSynthesizerConfig,
		provideAdvisorConfig,
		provideAuthConfig,
		provideAdvisorService,
		provideProfileRepository,
		providePlannerRepository,
		provideHistoryStore,
		intent.NewClassifier,
		advisor.NewSynthesizer,
		profile.NewService,
		budget.NewService,
		planner.NewService,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
