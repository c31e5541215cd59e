package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
	"github.com/finbuddy/finance-advisor/internal/domain/auth"
	"github.com/finbuddy/finance-advisor/internal/domain/budget"
	"github.com/finbuddy/finance-advisor/internal/domain/intent"
	"github.com/finbuddy/finance-advisor/internal/domain/planner"
	"github.com/finbuddy/finance-advisor/internal/domain/profile"
	"github.com/finbuddy/finance-advisor/internal/infra/config"
	"github.com/finbuddy/finance-advisor/internal/infra/histstore"
	"github.com/finbuddy/finance-advisor/internal/infra/planrepo"
	"github.com/finbuddy/finance-advisor/internal/infra/profilerepo"
)

type stubTier struct {
	name   string
	initOK bool
	reply  string
	err    error
}

func (t *stubTier) Initialize(context.Context) bool { return t.initOK }
func (t *stubTier) Ping(context.Context) bool       { return t.initOK }
func (t *stubTier) Describe() advisor.TierInfo {
	return advisor.TierInfo{Name: t.name, Ready: t.initOK}
}
func (t *stubTier) Respond(context.Context, string, advisor.UserContext) (string, error) {
	return t.reply, t.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServerUnderTest(t *testing.T, cfg *config.Config, primary advisor.Tier) *http.Server {
	t.Helper()
	logger := newTestLogger()

	profileSvc := profile.NewService(profilerepo.NewMemoryRepository(), logger)
	budgetSvc := budget.NewService(logger)
	advisorSvc := advisor.NewService(
		primary,
		&stubTier{name: "secondary", initOK: false},
		advisor.NewSynthesizer(advisor.SynthesizerConfig{}, logger),
		histstore.NewMemoryStore(10),
		advisor.Config{MinReplyLength: 10, HistoryLimit: 10, InitTimeout: time.Second},
		logger,
	)
	plannerSvc := planner.NewService(planrepo.NewMemoryRepository(), logger)
	authSvc := auth.NewService(auth.Config{Secret: cfg.Auth.Secret, TokenTTL: cfg.Auth.TokenTTL}, logger)

	handler := NewHandler(intent.NewClassifier(logger), profileSvc, budgetSvc, advisorSvc, plannerSvc, authSvc, logger)
	return NewRouter(cfg, handler, authSvc)
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ChatSuccess(t *testing.T) {
	primary := &stubTier{name: "primary", initOK: true, reply: "put aside a fifth of your income each month"}
	server := newServerUnderTest(t, testConfig(), primary)

	recorder := performRequest(http.MethodPost, "/api/v1/chat", `{"userId":"u1","message":"how to save money"}`, server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got chatResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, advisor.SourcePrimary, got.Source)
	require.Equal(t, intent.IntentSavings, got.Intent)
	require.NotEmpty(t, got.Reply)
	require.NotEmpty(t, got.ResponseID)
}

func TestRouter_ChatFallsBackWhenPrimaryDown(t *testing.T) {
	primary := &stubTier{name: "primary", initOK: false}
	server := newServerUnderTest(t, testConfig(), primary)

	recorder := performRequest(http.MethodPost, "/api/v1/chat", `{"message":"hello"}`, server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got chatResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, advisor.SourceFallback, got.Source)
	require.Greater(t, len(got.Reply), 10)
}

func TestRouter_ChatInvalidJSON(t *testing.T) {
	server := newServerUnderTest(t, testConfig(), &stubTier{name: "primary", initOK: true, reply: "....."})

	recorder := performRequest(http.MethodPost, "/api/v1/chat", `{"message":123}`, server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_ChatStatusAndSwitch(t *testing.T) {
	server := newServerUnderTest(t, testConfig(), &stubTier{name: "primary", initOK: true, reply: "a long enough answer indeed"})

	recorder := performRequest(http.MethodGet, "/api/v1/chat/status", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var status advisor.Status
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
	require.Equal(t, advisor.SourcePrimary, status.Active)

	recorder = performRequest(http.MethodPost, "/api/v1/chat/switch", `{"tier":"fallback"}`, server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
	require.Equal(t, advisor.SourceFallback, status.Active)

	recorder = performRequest(http.MethodPost, "/api/v1/chat/switch", `{"tier":"quantum"}`, server)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_ChatHistoryRoundTrip(t *testing.T) {
	server := newServerUnderTest(t, testConfig(), &stubTier{name: "primary", initOK: true, reply: "an answer long enough to accept"})

	recorder := performRequest(http.MethodPost, "/api/v1/chat", `{"userId":"u7","message":"budget tips please"}`, server)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performRequest(http.MethodGet, "/api/v1/chat/history/u7", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		UserID   string            `json:"userId"`
		Messages []advisor.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Messages, 2)
	require.Equal(t, advisor.RoleUser, body.Messages[0].Role)
}

func TestRouter_ProfileLifecycle(t *testing.T) {
	server := newServerUnderTest(t, testConfig(), &stubTier{name: "primary", initOK: true, reply: "some accepted answer text"})

	recorder := performRequest(http.MethodGet, "/api/v1/profiles/u3", "", server)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = performRequest(http.MethodPut, "/api/v1/profiles/u3",
		`{"age":19,"occupation":"university student","income":800}`, server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var p profile.Profile
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &p))
	require.Equal(t, profile.TypeStudent, p.UserType)

	recorder = performRequest(http.MethodGet, "/api/v1/profiles/u3/recommendations", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var recs struct {
		UserType        profile.UserType `json:"userType"`
		Recommendations []string         `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &recs))
	require.Equal(t, profile.TypeStudent, recs.UserType)
	require.NotEmpty(t, recs.Recommendations)
}

func TestRouter_BudgetSummary(t *testing.T) {
	server := newServerUnderTest(t, testConfig(), &stubTier{name: "primary", initOK: true, reply: "whatever answer works here"})

	recorder := performRequest(http.MethodPost, "/api/v1/budget/summary",
		`{"income":5000,"expenses":{"housing":1400,"food":500,"transportation":400,"utilities":250,"entertainment":200,"personal":200,"healthcare":200,"insurance":200,"debt":100,"savings":1000}}`,
		server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var summary budget.Summary
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &summary))
	require.Equal(t, 3450.0, summary.TotalExpenses)
	require.GreaterOrEqual(t, summary.HealthScore, 80)
}

func TestRouter_PlannerSubscriptions(t *testing.T) {
	server := newServerUnderTest(t, testConfig(), &stubTier{name: "primary", initOK: true, reply: "whatever answer works here"})

	recorder := performRequest(http.MethodPost, "/api/v1/planner/subscriptions",
		`{"name":"Netflix","monthlyCost":15.49,"category":"entertainment"}`, server)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(http.MethodGet, "/api/v1/planner/subscriptions", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Subscriptions []planner.Subscription     `json:"subscriptions"`
		Totals        planner.SubscriptionTotals `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Subscriptions, 1)
	require.InDelta(t, 185.88, body.Totals.Yearly, 0.001)
}

func TestRouter_AuthProtectsAPI(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Secret = "router-test-secret"
	cfg.Auth.TokenTTL = time.Hour
	server := newServerUnderTest(t, cfg, &stubTier{name: "primary", initOK: true, reply: "a good long accepted response"})

	recorder := performRequest(http.MethodPost, "/api/v1/chat", `{"message":"hi"}`, server)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = performRequest(http.MethodPost, "/api/v1/sessions", `{"userId":"u1"}`, server)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var session auth.Session
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(`{"message":"how much should i save"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ChatBindsTokenUser(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Secret = "router-test-secret"
	cfg.Auth.TokenTTL = time.Hour
	server := newServerUnderTest(t, cfg, &stubTier{name: "primary", initOK: true, reply: "a good long accepted response"})

	recorder := performRequest(http.MethodPost, "/api/v1/sessions", `{"userId":"alice"}`, server)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var session auth.Session
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &session))

	authed := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+session.Token)
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)
		return rec
	}

	// The body claims another user; the token decides where history lands.
	rec := authed(http.MethodPost, "/api/v1/chat", `{"userId":"mallory","message":"how to save money"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = authed(http.MethodGet, "/api/v1/chat/history/alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Messages []advisor.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Messages, 2)

	rec = authed(http.MethodGet, "/api/v1/chat/history/mallory", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Empty(t, history.Messages)
}

func TestRouter_Healthz(t *testing.T) {
	server := newServerUnderTest(t, testConfig(), &stubTier{name: "primary", initOK: true, reply: "a good long accepted response"})

	recorder := performRequest(http.MethodGet, "/healthz", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
