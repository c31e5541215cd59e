package advisor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubTier struct {
	name    string
	initOK  bool
	pingOK  bool
	reply   string
	err     error
	calls   int
	respond func(ctx context.Context, prompt string, uc UserContext) (string, error)
}

func (t *stubTier) Initialize(context.Context) bool { return t.initOK }
func (t *stubTier) Ping(context.Context) bool       { return t.pingOK }
func (t *stubTier) Describe() TierInfo {
	return TierInfo{Name: t.name, Ready: t.initOK}
}
func (t *stubTier) Respond(ctx context.Context, prompt string, uc UserContext) (string, error) {
	t.calls++
	if t.respond != nil {
		return t.respond(ctx, prompt, uc)
	}
	return t.reply, t.err
}

type memoryHistory struct {
	mu   sync.Mutex
	data map[string][]Message
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{data: make(map[string][]Message)}
}

func (h *memoryHistory) Append(_ context.Context, userID string, msg Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.data[userID] = append(h.data[userID], msg)
	return nil
}

func (h *memoryHistory) List(_ context.Context, userID string, limit int) ([]Message, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := h.data[userID]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (h *memoryHistory) Clear(_ context.Context, userID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.data, userID)
	return nil
}

func newTestService(primary, secondary Tier, history HistoryStore) Service {
	return NewService(primary, secondary, NewSynthesizer(SynthesizerConfig{}, discardLogger()), history, Config{
		MinReplyLength: 10,
		HistoryLimit:   5,
		InitTimeout:    time.Second,
	}, discardLogger())
}

func TestGetResponseUsesPrimary(t *testing.T) {
	t.Parallel()

	primary := &stubTier{name: "primary", initOK: true, reply: "a sufficiently long primary answer"}
	secondary := &stubTier{name: "secondary", initOK: true, reply: "never used"}
	svc := newTestService(primary, secondary, newMemoryHistory())

	resp := svc.GetResponse(context.Background(), "u1", "how much should i save", UserContext{Income: 5000})
	require.Equal(t, SourcePrimary, resp.Source)
	require.Equal(t, primary.reply, resp.Text)
	require.Zero(t, secondary.calls)
	require.NotEmpty(t, resp.ID)
}

func TestGetResponseFallsToSecondaryOnError(t *testing.T) {
	t.Parallel()

	primary := &stubTier{name: "primary", initOK: true, err: errors.New("upstream down")}
	secondary := &stubTier{name: "secondary", initOK: true, reply: "a perfectly good secondary answer"}
	svc := newTestService(primary, secondary, newMemoryHistory())

	resp := svc.GetResponse(context.Background(), "u1", "budget help", UserContext{Income: 5000})
	require.Equal(t, SourceSecondary, resp.Source)
	require.Equal(t, 1, primary.calls)
}

func TestGetResponseShortRepliesFallThrough(t *testing.T) {
	t.Parallel()

	primary := &stubTier{name: "primary", initOK: true, err: errors.New("unreachable")}
	secondary := &stubTier{name: "secondary", initOK: true, reply: "nope!"}
	svc := newTestService(primary, secondary, newMemoryHistory())

	resp := svc.GetResponse(context.Background(), "u1", "hello", UserContext{})
	require.Equal(t, SourceFallback, resp.Source)
	require.Greater(t, len(strings.TrimSpace(resp.Text)), 10)
}

func TestGetResponseSkipsUnreadyTiers(t *testing.T) {
	t.Parallel()

	primary := &stubTier{name: "primary", initOK: false, reply: "should never be called"}
	secondary := &stubTier{name: "secondary", initOK: true, reply: "a valid secondary response here"}
	svc := newTestService(primary, secondary, newMemoryHistory())

	resp := svc.GetResponse(context.Background(), "u1", "anything at all", UserContext{})
	require.Equal(t, SourceSecondary, resp.Source)
	require.Zero(t, primary.calls)
}

func TestGetResponseAlwaysAnswers(t *testing.T) {
	t.Parallel()

	primary := &stubTier{name: "primary", initOK: false}
	secondary := &stubTier{name: "secondary", initOK: false}
	svc := newTestService(primary, secondary, newMemoryHistory())

	resp := svc.GetResponse(context.Background(), "", "random chatter", UserContext{})
	require.Equal(t, SourceFallback, resp.Source)
	require.Greater(t, len(resp.Text), 10)
}

func TestHistoryRecordsBothSides(t *testing.T) {
	t.Parallel()

	history := newMemoryHistory()
	svc := newTestService(
		&stubTier{name: "primary", initOK: true, reply: "a long enough answer for the user"},
		&stubTier{name: "secondary", initOK: true},
		history,
	)

	svc.GetResponse(context.Background(), "u9", "first question", UserContext{})
	msgs, err := svc.History(context.Background(), "u9")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, RoleUser, msgs[0].Role)
	require.Equal(t, RoleAssistant, msgs[1].Role)
	require.Equal(t, SourcePrimary, msgs[1].Source)
}

func TestHistoryIsBounded(t *testing.T) {
	t.Parallel()

	history := newMemoryHistory()
	svc := newTestService(
		&stubTier{name: "primary", initOK: true, reply: "an answer with plenty of characters"},
		&stubTier{name: "secondary", initOK: true},
		history,
	)

	for i := 0; i < 10; i++ {
		svc.GetResponse(context.Background(), "u2", "question", UserContext{})
	}
	msgs, err := svc.History(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, msgs, 5)
}

func TestSwitchToValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(
		&stubTier{name: "primary", initOK: true},
		&stubTier{name: "secondary", initOK: true},
		newMemoryHistory(),
	)

	require.NoError(t, svc.SwitchTo(SourceSecondary))
	require.Equal(t, SourceSecondary, svc.Status().Active)
	require.Error(t, svc.SwitchTo(Source("quantum")))
}

func TestStatusReportsReadiness(t *testing.T) {
	t.Parallel()

	svc := newTestService(
		&stubTier{name: "gemini", initOK: true},
		&stubTier{name: "granite", initOK: false},
		newMemoryHistory(),
	)

	status := svc.Status()
	require.Equal(t, SourcePrimary, status.Active)
	require.True(t, status.Tiers[SourcePrimary].Ready)
	require.False(t, status.Tiers[SourceSecondary].Ready)
	require.True(t, status.Tiers[SourceFallback].Ready)
}

func TestTestConnections(t *testing.T) {
	t.Parallel()

	svc := newTestService(
		&stubTier{name: "primary", initOK: true, pingOK: true},
		&stubTier{name: "secondary", initOK: true, pingOK: false},
		newMemoryHistory(),
	)

	results := svc.TestConnections(context.Background())
	require.True(t, results[SourcePrimary])
	require.False(t, results[SourceSecondary])
	require.True(t, results[SourceFallback])
}
