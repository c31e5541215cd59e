package granite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
)

const defaultBaseURL = "http://localhost:11434"

// Config controls the local granite tier.
type Config struct {
	BaseURL     string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// generateRequest is the Ollama /api/generate payload.
type generateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options options `json:"options,omitempty"`
}

type options struct {
	Temperature float32 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Client is the SECONDARY response tier, backed by a local
// Ollama-compatible server running a granite model.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a granite client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = "granite3.3:2b"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("tier", "granite"),
	}
}

// Initialize verifies the local server is up and knows the model.
func (c *Client) Initialize(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Info("granite tier unavailable", "error", err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false
	}
	for _, m := range tags.Models {
		if m.Name == c.cfg.Model || strings.HasPrefix(m.Name, c.cfg.Model) {
			return true
		}
	}
	c.logger.Info("granite model not present on local server", "model", c.cfg.Model)
	return false
}

func (c *Client) Describe() advisor.TierInfo {
	return advisor.TierInfo{
		Name:         "granite/" + c.cfg.Model,
		Ready:        true,
		Capabilities: []string{"local", "privacy-preserving"},
	}
}

func (c *Client) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	return resp.StatusCode == http.StatusOK
}

func (c *Client) Respond(ctx context.Context, prompt string, uc advisor.UserContext) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:   c.cfg.Model,
		Prompt:  buildPrompt(prompt, uc),
		Stream:  false,
		Options: options{Temperature: c.cfg.Temperature},
	})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request local generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("granite request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", errors.New("granite returned an empty response")
	}
	return strings.TrimSpace(out.Response), nil
}

func buildPrompt(question string, uc advisor.UserContext) string {
	var sb strings.Builder
	sb.WriteString("You are a concise personal finance advisor.\n")
	if uc.Income > 0 {
		fmt.Fprintf(&sb, "User monthly income: $%.0f.\n", uc.Income)
	}
	if uc.MonthlySpending > 0 {
		fmt.Fprintf(&sb, "User monthly spending: $%.0f.\n", uc.MonthlySpending)
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\nAnswer:")
	return sb.String()
}
