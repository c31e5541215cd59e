package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
	"github.com/finbuddy/finance-advisor/internal/domain/auth"
	"github.com/finbuddy/finance-advisor/internal/domain/planner"
	"github.com/finbuddy/finance-advisor/internal/domain/profile"
	"github.com/finbuddy/finance-advisor/internal/infra/config"
	"github.com/finbuddy/finance-advisor/internal/infra/histstore"
	"github.com/finbuddy/finance-advisor/internal/infra/llm/gemini"
	"github.com/finbuddy/finance-advisor/internal/infra/llm/granite"
	"github.com/finbuddy/finance-advisor/internal/infra/planrepo"
	"github.com/finbuddy/finance-advisor/internal/infra/profilerepo"
)

func provideGeminiClient(cfg *config.Config, logger *slog.Logger) *gemini.Client {
	return gemini.NewClient(gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		BaseURL:         cfg.Gemini.BaseURL,
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		MaxPromptTokens: cfg.Gemini.MaxPromptTokens,
		Timeout:         cfg.Gemini.Timeout,
	}, logger)
}

func provideGraniteClient(cfg *config.Config, logger *slog.Logger) *granite.Client {
	return granite.NewClient(granite.Config{
		BaseURL:     cfg.Granite.BaseURL,
		Model:       cfg.Granite.Model,
		Temperature: cfg.Granite.Temperature,
		Timeout:     cfg.Granite.Timeout,
	}, logger)
}

func provideSynthesizerConfig(cfg *config.Config) advisor.SynthesizerConfig {
	return advisor.SynthesizerConfig{
		SavingsGoalRatio:    cfg.Advisor.SavingsGoalRatio,
		EmergencyFundMonths: cfg.Advisor.EmergencyFundMonths,
	}
}

func provideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		MinReplyLength: cfg.Advisor.MinReplyLength,
		HistoryLimit:   cfg.Advisor.HistoryLimit,
		InitTimeout:    cfg.Granite.InitTimeout,
	}
}

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

func provideAdvisorService(
	primary *gemini.Client,
	secondary *granite.Client,
	fallback *advisor.Synthesizer,
	history advisor.HistoryStore,
	advisorCfg advisor.Config,
	logger *slog.Logger,
) advisor.Service {
	return advisor.NewService(primary, secondary, fallback, history, advisorCfg, logger)
}

func providePlannerRepository() planner.Repository {
	return planrepo.NewMemoryRepository()
}

func provideProfileRepository(cfg *config.Config, logger *slog.Logger) profile.Repository {
	fallback := profilerepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Profile.Postgres.DSN)
	if dsn == "" {
		logger.Info("profile postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Profile.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Profile.Postgres.MaxConns
	}
	if cfg.Profile.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Profile.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("profile postgres repository enabled")
	return profilerepo.NewPostgresRepository(pool)
}

func provideHistoryStore(cfg *config.Config, logger *slog.Logger) advisor.HistoryStore {
	limit := cfg.Advisor.HistoryLimit
	if cfg.History.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory history", "error", err)
			return histstore.NewMemoryStore(limit)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory history", "error", err)
			return histstore.NewMemoryStore(limit)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory history", "error", err)
		} else {
			logger.Info("valkey conversation history enabled", "addr", cfg.History.Valkey.Addr)
			return histstore.NewValkeyStore(client, "chat", limit)
		}
	}
	return histstore.NewMemoryStore(limit)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.History.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.History.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.History.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
