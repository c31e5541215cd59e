package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Granite GraniteConfig `yaml:"granite"`
	Advisor AdvisorConfig `yaml:"advisor"`
	Profile ProfileConfig `yaml:"profile"`
	History HistoryConfig `yaml:"history"`
	Auth    AuthConfig    `yaml:"auth"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// GeminiConfig holds settings for the primary cloud tier.
type GeminiConfig struct {
	APIKey          string        `yaml:"apiKey"`
	BaseURL         string        `yaml:"baseUrl"`
	Model           string        `yaml:"model"`
	Temperature     float32       `yaml:"temperature"`
	MaxOutputTokens int           `yaml:"maxOutputTokens"`
	MaxPromptTokens int           `yaml:"maxPromptTokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

// GraniteConfig holds settings for the secondary local tier.
type GraniteConfig struct {
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
	InitTimeout time.Duration `yaml:"initTimeout"`
}

// AdvisorConfig drives the response orchestrator and the budget domain defaults.
type AdvisorConfig struct {
	SavingsGoalRatio    float64 `yaml:"savingsGoalRatio"`
	EmergencyFundMonths int     `yaml:"emergencyFundMonths"`
	HistoryLimit        int     `yaml:"historyLimit"`
	MinReplyLength      int     `yaml:"minReplyLength"`
}

// ProfileConfig contains optional postgres persistence for user profiles.
type ProfileConfig struct {
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// HistoryConfig selects the conversation history backend.
type HistoryConfig struct {
	Valkey ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the shared history store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// AuthConfig configures optional bearer-token protection of the API.
type AuthConfig struct {
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"tokenTtl"`
}

// Enabled reports whether session auth is configured.
func (a AuthConfig) Enabled() bool {
	return strings.TrimSpace(a.Secret) != ""
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.Gemini.BaseURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("GEMINI_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Gemini.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("GEMINI_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Gemini.Timeout = parsed
		}
	}
	if v := os.Getenv("GRANITE_BASE_URL"); v != "" {
		cfg.Granite.BaseURL = v
	}
	if v := os.Getenv("GRANITE_MODEL"); v != "" {
		cfg.Granite.Model = v
	}
	if v := os.Getenv("GRANITE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Granite.Timeout = parsed
		}
	}
	if v := os.Getenv("DEFAULT_SAVINGS_GOAL"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Advisor.SavingsGoalRatio = parsed
		}
	}
	if v := os.Getenv("DEFAULT_EMERGENCY_FUND_MONTHS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Advisor.EmergencyFundMonths = parsed
		}
	}
	if v := os.Getenv("ADVISOR_HISTORY_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Advisor.HistoryLimit = parsed
		}
	}
	if v := os.Getenv("PROFILE_POSTGRES_DSN"); v != "" {
		cfg.Profile.Postgres.DSN = v
	}
	if v := os.Getenv("PROFILE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Profile.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("HISTORY_VALKEY_ENABLED"); v != "" {
		cfg.History.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HISTORY_VALKEY_ADDR"); v != "" {
		cfg.History.Valkey.Addr = v
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if clean := strings.TrimSpace(part); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Gemini: GeminiConfig{
			BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
			Model:           "gemini-1.5-flash",
			Temperature:     0.7,
			MaxOutputTokens: 800,
			MaxPromptTokens: 2048,
			Timeout:         15 * time.Second,
		},
		Granite: GraniteConfig{
			BaseURL:     "http://localhost:11434",
			Model:       "granite3.3:2b",
			Temperature: 0.7,
			Timeout:     30 * time.Second,
			InitTimeout: 30 * time.Second,
		},
		Advisor: AdvisorConfig{
			SavingsGoalRatio:    0.20,
			EmergencyFundMonths: 6,
			HistoryLimit:        50,
			MinReplyLength:      10,
		},
		Profile: ProfileConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.Gemini.Model == "" {
		return errors.New("gemini.model cannot be empty")
	}
	if c.Gemini.Timeout <= 0 {
		return errors.New("gemini.timeout must be positive")
	}
	if c.Gemini.MaxOutputTokens <= 0 {
		return errors.New("gemini.maxOutputTokens must be positive")
	}
	if c.Granite.BaseURL == "" {
		return errors.New("granite.baseUrl cannot be empty")
	}
	if c.Granite.Timeout <= 0 {
		return errors.New("granite.timeout must be positive")
	}
	if c.Advisor.SavingsGoalRatio <= 0 || c.Advisor.SavingsGoalRatio >= 1 {
		return errors.New("advisor.savingsGoalRatio must be in (0, 1)")
	}
	if c.Advisor.EmergencyFundMonths <= 0 {
		return errors.New("advisor.emergencyFundMonths must be positive")
	}
	if c.Advisor.HistoryLimit <= 0 {
		return errors.New("advisor.historyLimit must be positive")
	}
	if c.Auth.Enabled() && c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTtl must be positive when auth is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
