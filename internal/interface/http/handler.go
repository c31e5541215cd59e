package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
	"github.com/finbuddy/finance-advisor/internal/domain/auth"
	"github.com/finbuddy/finance-advisor/internal/domain/budget"
	"github.com/finbuddy/finance-advisor/internal/domain/intent"
	"github.com/finbuddy/finance-advisor/internal/domain/planner"
	"github.com/finbuddy/finance-advisor/internal/domain/profile"
	apperrors "github.com/finbuddy/finance-advisor/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	classifier *intent.Classifier
	profileSvc profile.Service
	budgetSvc  budget.Service
	advisorSvc advisor.Service
	plannerSvc planner.Service
	authSvc    auth.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	classifier *intent.Classifier,
	profileSvc profile.Service,
	budgetSvc budget.Service,
	advisorSvc advisor.Service,
	plannerSvc planner.Service,
	authSvc auth.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		classifier: classifier,
		profileSvc: profileSvc,
		budgetSvc:  budgetSvc,
		advisorSvc: advisorSvc,
		plannerSvc: plannerSvc,
		authSvc:    authSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message" binding:"required"`
}

type chatResponse struct {
	ResponseID string          `json:"responseId"`
	Reply      string          `json:"reply"`
	Source     advisor.Source  `json:"source"`
	Intent     intent.Intent   `json:"intent"`
	Confidence float64         `json:"confidence"`
	Entities   intent.Entities `json:"entities"`
	LatencyMs  int64           `json:"latencyMs"`
}

// Chat answers one user message through the tier cascade, personalized
// by the stored profile.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	// An authenticated caller always chats as the token's subject,
	// regardless of the userId in the body.
	if claims, ok := getClaims(c); ok && claims.UserID != "" {
		req.UserID = claims.UserID
	}

	result := h.classifier.Classify(req.Message)

	uc := advisor.UserContext{}
	userType := profile.TypeGeneral
	if req.UserID != "" {
		p, found, err := h.profileSvc.Get(c.Request.Context(), req.UserID)
		if err != nil {
			h.logger.Warn("profile lookup failed during chat", "user_id", req.UserID, "error", err)
		} else if found {
			userType = p.UserType
			uc = advisor.UserContext{
				UserType:        p.UserType,
				Age:             p.Age,
				Income:          p.Income,
				MonthlySpending: p.MonthlySpending,
				CurrentBalance:  p.CurrentBalance,
			}
		}
	}

	resp := h.advisorSvc.GetResponse(c.Request.Context(), req.UserID, req.Message, uc)
	reply := profile.AdaptMessage(userType, resp.Text, "")

	c.JSON(http.StatusOK, chatResponse{
		ResponseID: resp.ID,
		Reply:      reply,
		Source:     resp.Source,
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Entities:   result.Entities,
		LatencyMs:  resp.Latency.Milliseconds(),
	})
}

// ChatStatus reports tier readiness and the pinned tier.
func (h *Handler) ChatStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.advisorSvc.Status())
}

type switchRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// ChatSwitch pins the advisory active tier.
func (h *Handler) ChatSwitch(c *gin.Context) {
	var req switchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if err := h.advisorSvc.SwitchTo(advisor.Source(req.Tier)); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, h.advisorSvc.Status())
}

// ChatConnections pings every tier without mutating state.
func (h *Handler) ChatConnections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"connections": h.advisorSvc.TestConnections(c.Request.Context())})
}

// ChatHistory returns the bounded conversation history for one user.
func (h *Handler) ChatHistory(c *gin.Context) {
	userID := c.Param("userId")
	msgs, err := h.advisorSvc.History(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "history_failed", errMessage(err), err))
		return
	}
	if msgs == nil {
		msgs = []advisor.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "messages": msgs})
}

// UpsertProfile merges attributes into the stored profile.
func (h *Handler) UpsertProfile(c *gin.Context) {
	var attrs profile.Attributes
	if err := c.ShouldBindJSON(&attrs); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	p, err := h.profileSvc.Upsert(c.Request.Context(), c.Param("id"), attrs)
	if err != nil {
		status := http.StatusInternalServerError
		code := "profile_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetProfile fetches one profile.
func (h *Handler) GetProfile(c *gin.Context) {
	p, found, err := h.profileSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "profile_failed", errMessage(err), err))
		return
	}
	if !found {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", "profile not found", nil))
		return
	}
	c.JSON(http.StatusOK, p)
}

// ProfileRecommendations returns static advice for the user's type.
func (h *Handler) ProfileRecommendations(c *gin.Context) {
	id := c.Param("id")
	userType, err := h.profileSvc.ClassifyType(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "profile_failed", errMessage(err), err))
		return
	}
	recs, err := h.profileSvc.Recommendations(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "profile_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"userType": userType, "recommendations": recs})
}

type budgetRequest struct {
	UserID   string             `json:"userId"`
	Income   float64            `json:"income"`
	Expenses map[string]float64 `json:"expenses" binding:"required"`
}

func (h *Handler) userTypeFor(c *gin.Context, userID string) profile.UserType {
	if userID == "" {
		return profile.TypeGeneral
	}
	userType, err := h.profileSvc.ClassifyType(c.Request.Context(), userID)
	if err != nil {
		h.logger.Warn("user type lookup failed", "user_id", userID, "error", err)
		return profile.TypeGeneral
	}
	return userType
}

// BudgetSummary runs the full budget health analysis.
func (h *Handler) BudgetSummary(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	summary := h.budgetSvc.Summarize(req.Income, req.Expenses, h.userTypeFor(c, req.UserID))
	c.JSON(http.StatusOK, summary)
}

// BudgetInsights highlights spending patterns.
func (h *Handler) BudgetInsights(c *gin.Context) {
	var req budgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	insights := h.budgetSvc.Insights(req.Income, req.Expenses)
	c.JSON(http.StatusOK, gin.H{"insights": insights})
}

// CreateSubscription registers a recurring charge.
func (h *Handler) CreateSubscription(c *gin.Context) {
	var in planner.SubscriptionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	sub, err := h.plannerSvc.AddSubscription(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// ListSubscriptions returns all subscriptions with totals.
func (h *Handler) ListSubscriptions(c *gin.Context) {
	subs, totals, err := h.plannerSvc.ListSubscriptions(c.Request.Context())
	if err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs, "totals": totals})
}

// DeleteSubscription cancels a subscription.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	if err := h.plannerSvc.CancelSubscription(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateSplit divides a shared bill.
func (h *Handler) CreateSplit(c *gin.Context) {
	var in planner.SplitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	split, err := h.plannerSvc.CreateSplit(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.JSON(http.StatusCreated, split)
}

// ListSplits returns all bill splits.
func (h *Handler) ListSplits(c *gin.Context) {
	splits, err := h.plannerSvc.ListSplits(c.Request.Context())
	if err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"splits": splits})
}

// SettleSplit marks a split as settled.
func (h *Handler) SettleSplit(c *gin.Context) {
	split, err := h.plannerSvc.SettleSplit(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.JSON(http.StatusOK, split)
}

// CreateGoal registers a savings goal.
func (h *Handler) CreateGoal(c *gin.Context) {
	var in planner.GoalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	goal, err := h.plannerSvc.CreateGoal(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// ListGoals returns all savings goals with derived progress.
func (h *Handler) ListGoals(c *gin.Context) {
	goals, err := h.plannerSvc.ListGoals(c.Request.Context())
	if err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// DeleteGoal removes a savings goal.
func (h *Handler) DeleteGoal(c *gin.Context) {
	if err := h.plannerSvc.DeleteGoal(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

type contributeRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// Contribute adds money to a savings goal.
func (h *Handler) Contribute(c *gin.Context) {
	var req contributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	goal, err := h.plannerSvc.Contribute(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		abortWithError(c, plannerError(err))
		return
	}
	c.JSON(http.StatusOK, goal)
}

type sessionRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// CreateSession issues a bearer token for the given user id.
func (h *Handler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	session, err := h.authSvc.IssueToken(c.Request.Context(), req.UserID)
	if err != nil {
		status := http.StatusInternalServerError
		code := "session_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Healthz is the liveness probe.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func plannerError(err error) *HTTPError {
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	case apperrors.IsCode(err, "not_found"):
		return NewHTTPError(http.StatusNotFound, "not_found", errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "planner_failed", errMessage(err), err)
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
