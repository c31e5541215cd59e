package advisor

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/finbuddy/finance-advisor/pkg/errors"
)

// Config bounds the cascade behavior.
type Config struct {
	// MinReplyLength is the acceptance threshold: a tier's reply is used
	// only when its trimmed length exceeds this.
	MinReplyLength int
	// HistoryLimit caps the per-user conversation ring buffer.
	HistoryLimit int
	// InitTimeout bounds tier initialization at construction.
	InitTimeout time.Duration
}

// Service orchestrates the three response tiers. GetResponse always
// produces an answer; tier failures degrade the cascade silently.
type Service interface {
	GetResponse(ctx context.Context, userID, text string, uc UserContext) AIResponse
	Status() Status
	SwitchTo(tier Source) error
	TestConnections(ctx context.Context) map[Source]bool
	History(ctx context.Context, userID string) ([]Message, error)
}

type tierSlot struct {
	source Source
	tier   Tier
	ready  bool
}

type service struct {
	mu      sync.RWMutex
	tiers   []tierSlot
	active  Source
	history HistoryStore
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
}

// NewService initializes each remote tier under cfg.InitTimeout and
// wires the fixed PRIMARY, SECONDARY, FALLBACK cascade. A tier that
// fails or times out during initialization is marked unavailable and
// skipped at request time.
func NewService(primary, secondary, fallback Tier, history HistoryStore, cfg Config, logger *slog.Logger) Service {
	if cfg.MinReplyLength <= 0 {
		cfg.MinReplyLength = 10
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = 30 * time.Second
	}

	s := &service{
		active:  SourcePrimary,
		history: history,
		cfg:     cfg,
		logger:  logger.With("component", "advisor.service"),
		now:     time.Now,
	}

	for _, slot := range []tierSlot{
		{source: SourcePrimary, tier: primary},
		{source: SourceSecondary, tier: secondary},
		{source: SourceFallback, tier: fallback},
	} {
		initCtx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)
		slot.ready = slot.tier.Initialize(initCtx)
		cancel()
		s.logger.Info("tier initialized", "tier", slot.source, "ready", slot.ready)
		s.tiers = append(s.tiers, slot)
	}
	return s
}

func (s *service) GetResponse(ctx context.Context, userID, text string, uc UserContext) AIResponse {
	start := s.now()

	if userID != "" {
		s.remember(ctx, userID, Message{
			ID:        uuid.NewString(),
			Role:      RoleUser,
			Text:      text,
			CreatedAt: start.UTC(),
		})
	}

	reply, source := s.cascade(ctx, text, uc)
	resp := AIResponse{
		ID:        uuid.NewString(),
		Text:      reply,
		Source:    source,
		Latency:   s.now().Sub(start),
		CreatedAt: start.UTC(),
	}

	if userID != "" {
		s.remember(ctx, userID, Message{
			ID:        resp.ID,
			Role:      RoleAssistant,
			Text:      resp.Text,
			Source:    resp.Source,
			CreatedAt: resp.CreatedAt,
		})
	}
	return resp
}

// cascade runs one attempt per tier in fixed order. The fallback tier
// cannot fail, so this always returns a usable reply.
func (s *service) cascade(ctx context.Context, text string, uc UserContext) (string, Source) {
	s.mu.RLock()
	slots := make([]tierSlot, len(s.tiers))
	copy(slots, s.tiers)
	s.mu.RUnlock()

	for _, slot := range slots {
		if !slot.ready {
			continue
		}
		reply, err := slot.tier.Respond(ctx, text, uc)
		if err != nil {
			s.logger.Warn("tier failed", "tier", slot.source, "error", err)
			continue
		}
		if len(strings.TrimSpace(reply)) <= s.cfg.MinReplyLength {
			s.logger.Warn("tier reply too short", "tier", slot.source, "length", len(reply))
			continue
		}
		return reply, slot.source
	}
	// Reached only if the fallback tier was somehow excluded.
	return cannedTips, SourceFallback
}

func (s *service) remember(ctx context.Context, userID string, msg Message) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(ctx, userID, msg); err != nil {
		s.logger.Warn("history append failed", "user_id", userID, "error", err)
	}
}

func (s *service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tiers := make(map[Source]TierInfo, len(s.tiers))
	for _, slot := range s.tiers {
		info := slot.tier.Describe()
		info.Ready = info.Ready && slot.ready
		tiers[slot.source] = info
	}
	return Status{Active: s.active, Tiers: tiers}
}

// SwitchTo pins the advisory active tier. The cascade order itself
// never changes; the pin is surfaced through Status only.
func (s *service) SwitchTo(tier Source) error {
	switch tier {
	case SourcePrimary, SourceSecondary, SourceFallback:
	default:
		return apperrors.Wrap("invalid_input", "unknown tier: "+string(tier), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = tier
	s.logger.Info("active tier switched", "tier", tier)
	return nil
}

func (s *service) TestConnections(ctx context.Context) map[Source]bool {
	s.mu.RLock()
	slots := make([]tierSlot, len(s.tiers))
	copy(slots, s.tiers)
	s.mu.RUnlock()

	results := make(map[Source]bool, len(slots))
	for _, slot := range slots {
		results[slot.source] = slot.tier.Ping(ctx)
	}
	return results
}

func (s *service) History(ctx context.Context, userID string) ([]Message, error) {
	if s.history == nil {
		return nil, nil
	}
	msgs, err := s.history.List(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, apperrors.Wrap("history_error", "history lookup failed", err)
	}
	return msgs, nil
}
