package advisor

import (
	"context"
	"time"

	"github.com/finbuddy/finance-advisor/internal/domain/profile"
)

// Source identifies which tier produced a response.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
	SourceFallback  Source = "fallback"
)

// UserContext carries the financial figures the tiers may ground their
// answers on. Zero values mean unknown.
type UserContext struct {
	UserType        profile.UserType `json:"userType,omitempty"`
	Age             int              `json:"age,omitempty"`
	Income          float64          `json:"income,omitempty"`
	MonthlySpending float64          `json:"monthlySpending,omitempty"`
	CurrentBalance  float64          `json:"currentBalance,omitempty"`
}

// AIResponse is one generated answer.
type AIResponse struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Source    Source        `json:"source"`
	Latency   time.Duration `json:"latencyMs"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Message is one conversation history entry.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Source    Source    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Conversation history roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TierInfo describes one tier's identity and readiness.
type TierInfo struct {
	Name         string   `json:"name"`
	Ready        bool     `json:"ready"`
	Capabilities []string `json:"capabilities,omitempty"`
}

// Tier is the uniform contract every response backend satisfies.
// Initialize reports readiness rather than returning an error so a dead
// backend degrades the cascade instead of failing startup.
type Tier interface {
	Initialize(ctx context.Context) bool
	Respond(ctx context.Context, prompt string, uc UserContext) (string, error)
	Describe() TierInfo
	Ping(ctx context.Context) bool
}

// Status is the orchestrator state snapshot.
type Status struct {
	Active Source              `json:"active"`
	Tiers  map[Source]TierInfo `json:"tiers"`
}

// HistoryStore keeps a bounded most-recent-N message list per user.
type HistoryStore interface {
	Append(ctx context.Context, userID string, msg Message) error
	List(ctx context.Context, userID string, limit int) ([]Message, error)
	Clear(ctx context.Context, userID string) error
}
