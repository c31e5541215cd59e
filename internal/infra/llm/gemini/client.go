package gemini

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

	"github.com/pkoukk/tiktoken-go"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Config controls the Gemini tier.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Temperature     float32
	MaxOutputTokens int
	MaxPromptTokens int
	Timeout         time.Duration
}

// generateRequest is the generateContent payload.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float32 `json:"topP,omitempty"`
}

// generateResponse captures the fields we read from a generateContent
// reply.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client is the PRIMARY response tier, backed by the Google Generative
// Language REST API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	encoder    *tiktoken.Tiktoken
	logger     *slog.Logger
}

// NewClient constructs a Gemini client. A missing API key is not an
// error here; the tier simply reports itself unready at Initialize.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 800
	}
	if cfg.MaxPromptTokens <= 0 {
		cfg.MaxPromptTokens = 3000
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("tier", "gemini"),
	}
	// The cl100k encoding ships with a remote BPE fetch; when it cannot
	// load we fall back to word-count budgeting.
	if enc, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE); err == nil {
		c.encoder = enc
	} else {
		c.logger.Warn("token encoder unavailable, using word-count budgeting", "error", err)
	}
	return c
}

func (c *Client) Initialize(ctx context.Context) bool {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		c.logger.Info("gemini tier disabled, no api key configured")
		return false
	}
	return c.Ping(ctx)
}

func (c *Client) Describe() advisor.TierInfo {
	return advisor.TierInfo{
		Name:         "gemini/" + c.cfg.Model,
		Ready:        strings.TrimSpace(c.cfg.APIKey) != "",
		Capabilities: []string{"conversational", "general-knowledge", "cloud"},
	}
}

// Ping checks model metadata availability without generating anything.
func (c *Client) Ping(ctx context.Context) bool {
	endpoint := fmt.Sprintf("%s/models/%s", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("gemini ping failed", "error", err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	return resp.StatusCode == http.StatusOK
}

func (c *Client) Respond(ctx context.Context, prompt string, uc advisor.UserContext) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", errors.New("gemini api key not configured")
	}

	full := c.truncate(buildPrompt(prompt, uc))
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: full}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
			TopP:            0.95,
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request generate content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("gemini request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// truncate keeps the prompt within the configured token budget. The
// tail is kept because the user's question comes last.
func (c *Client) truncate(prompt string) string {
	if c.encoder != nil {
		tokens := c.encoder.Encode(prompt, nil, nil)
		if len(tokens) <= c.cfg.MaxPromptTokens {
			return prompt
		}
		return c.encoder.Decode(tokens[len(tokens)-c.cfg.MaxPromptTokens:])
	}

	words := strings.Fields(prompt)
	if len(words) <= c.cfg.MaxPromptTokens {
		return prompt
	}
	return strings.Join(words[len(words)-c.cfg.MaxPromptTokens:], " ")
}

func buildPrompt(question string, uc advisor.UserContext) string {
	var sb strings.Builder
	sb.WriteString("You are a personal finance advisor. Give practical, specific advice in plain language. Keep the answer under 200 words.\n")
	if uc.UserType != "" {
		fmt.Fprintf(&sb, "The user is a %s.\n", uc.UserType)
	}
	if uc.Age > 0 {
		fmt.Fprintf(&sb, "Age: %d.\n", uc.Age)
	}
	if uc.Income > 0 {
		fmt.Fprintf(&sb, "Monthly income: $%.0f.\n", uc.Income)
	}
	if uc.MonthlySpending > 0 {
		fmt.Fprintf(&sb, "Monthly spending: $%.0f.\n", uc.MonthlySpending)
	}
	if uc.CurrentBalance > 0 {
		fmt.Fprintf(&sb, "Current savings balance: $%.0f.\n", uc.CurrentBalance)
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}
