package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"loan-advisory-assistant/internal/middleware"
	"loan-advisory-assistant/internal/routing"
	"loan-advisory-assistant/pkg/response"
)

// Classify godoc
// @Summary     Classify a message
// @Description Classifies free text into a loan-advisory intent without dispatching it. Set detect_multiple to get the full multi-intent breakdown.
// @Tags        Intents
// @Accept      json
// @Produce     json
// @Param       body body classifyReq true "Message to classify"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/intents/classify [POST]
func (h *handler) Classify(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processClassifyReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output := h.uc.Classify(ctx, middleware.ScopeFromContext(c), req.toInput())
	response.OK(c, output)
}

// Route godoc
// @Summary     Route a message
// @Description Classifies free text and dispatches it to the matching route. Creates a session on demand when session_id is empty.
// @Tags        Intents
// @Accept      json
// @Produce     json
// @Param       body body routeReq true "Message to route"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/intents/route [POST]
func (h *handler) Route(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRouteReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output := h.uc.Route(ctx, middleware.ScopeFromContext(c), req.toInput())
	response.OK(c, output)
}

// EnableRoute godoc
// @Summary     Enable a route
// @Tags        Routes
// @Produce     json
// @Param       id path string true "Route ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/routes/{id}/enable [POST]
func (h *handler) EnableRoute(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.EnableRoute(ctx, c.Param("id")); err != nil {
		h.l.Warnf(ctx, "uc.EnableRoute: %v", err)
		h.notFoundOr(c, err)
		return
	}
	response.OK(c, nil)
}

// DisableRoute godoc
// @Summary     Disable a route
// @Tags        Routes
// @Produce     json
// @Param       id path string true "Route ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/routes/{id}/disable [POST]
func (h *handler) DisableRoute(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.DisableRoute(ctx, c.Param("id")); err != nil {
		h.l.Warnf(ctx, "uc.DisableRoute: %v", err)
		h.notFoundOr(c, err)
		return
	}
	response.OK(c, nil)
}

// CreateSession godoc
// @Summary     Create a conversation session
// @Description Starts a new session for the calling user. Preferences accept strings, numbers, booleans and string lists.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       body body createSessionReq false "Session options"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/sessions [POST]
func (h *handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateSessionReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	input, err := req.toInput()
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	sess := h.uc.CreateSession(ctx, middleware.ScopeFromContext(c), input)
	response.OK(c, sess)
}

// GetSession godoc
// @Summary     Get a session
// @Description Returns the session snapshot. Expired sessions read as missing.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [GET]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	sess, ok := h.uc.GetSession(ctx, c.Param("id"))
	if !ok {
		response.NotFound(c, "session not found or expired")
		return
	}
	response.OK(c, sess)
}

// EndSession godoc
// @Summary     End a session
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [DELETE]
func (h *handler) EndSession(c *gin.Context) {
	ctx := c.Request.Context()

	if !h.uc.EndSession(ctx, c.Param("id")) {
		response.NotFound(c, "session not found or expired")
		return
	}
	response.OK(c, nil)
}

// History godoc
// @Summary     List classified intents
// @Description Returns tracked intents, newest first. Filter by user_id, type and since_hours.
// @Tags        History
// @Produce     json
// @Param       user_id     query string false "Filter by user"
// @Param       type        query string false "Filter by intent type"
// @Param       since_hours query int    false "Only intents from the last N hours"
// @Param       limit       query int    false "Page size (default: 50)"
// @Success     200 {object} response.Resp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/history [GET]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	response.OK(c, h.uc.GetHistory(ctx, req.toInput()))
}

// Frequency godoc
// @Summary     Intent frequency counts
// @Tags        History
// @Produce     json
// @Param       user_id     query string false "Filter by user"
// @Param       since_hours query int    false "Only intents from the last N hours"
// @Success     200 {object} response.Resp
// @Router      /api/v1/history/frequency [GET]
func (h *handler) Frequency(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	response.OK(c, h.uc.GetFrequency(ctx, req.toInput()))
}

// TopIntents godoc
// @Summary     Most frequent intent types
// @Tags        History
// @Produce     json
// @Param       n           query int    false "Number of entries (default: 5)"
// @Param       user_id     query string false "Filter by user"
// @Param       since_hours query int    false "Only intents from the last N hours"
// @Success     200 {object} response.Resp
// @Router      /api/v1/history/top [GET]
func (h *handler) TopIntents(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	response.OK(c, h.uc.GetTopIntents(ctx, req.topN(), req.toInput()))
}

// ConfidenceStats godoc
// @Summary     Confidence distribution
// @Description Returns mean and percentile confidence over the filtered history window.
// @Tags        History
// @Produce     json
// @Param       user_id     query string false "Filter by user"
// @Param       type        query string false "Filter by intent type"
// @Param       since_hours query int    false "Only intents from the last N hours"
// @Success     200 {object} response.Resp
// @Router      /api/v1/history/confidence [GET]
func (h *handler) ConfidenceStats(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	response.OK(c, h.uc.GetConfidenceStats(ctx, req.toInput()))
}

// HourlyVolume godoc
// @Summary     Hourly intent volume
// @Description Buckets tracked intents by UTC hour of day.
// @Tags        History
// @Produce     json
// @Param       user_id     query string false "Filter by user"
// @Param       since_hours query int    false "Only intents from the last N hours"
// @Success     200 {object} response.Resp
// @Router      /api/v1/history/hourly [GET]
func (h *handler) HourlyVolume(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	response.OK(c, h.uc.GetHourlyVolume(ctx, req.toInput()))
}

// UserPatterns godoc
// @Summary     Per-user intent patterns
// @Tags        History
// @Produce     json
// @Param       user_id path string true "User ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/history/users/{user_id} [GET]
func (h *handler) UserPatterns(c *gin.Context) {
	ctx := c.Request.Context()

	patterns, ok := h.uc.GetUserPatterns(ctx, c.Param("user_id"))
	if !ok {
		response.NotFound(c, "no tracked intents for user")
		return
	}
	response.OK(c, patterns)
}

// HistorySummary godoc
// @Summary     History summary
// @Tags        History
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/v1/history/summary [GET]
func (h *handler) HistorySummary(c *gin.Context) {
	response.OK(c, h.uc.GetHistorySummary(c.Request.Context()))
}

// RouteMetrics godoc
// @Summary     Metrics for one route
// @Tags        Routes
// @Produce     json
// @Param       id path string true "Route ID"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/routes/{id}/metrics [GET]
func (h *handler) RouteMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	m, ok := h.uc.GetRouteMetrics(ctx, c.Param("id"))
	if !ok {
		response.NotFound(c, "no metrics for route")
		return
	}
	response.OK(c, m)
}

// MetricsSummary godoc
// @Summary     Routing metrics summary
// @Tags        Metrics
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/v1/metrics/summary [GET]
func (h *handler) MetricsSummary(c *gin.Context) {
	response.OK(c, h.uc.GetMetricsSummary(c.Request.Context()))
}

// TopRoutes godoc
// @Summary     Top routes by criterion
// @Tags        Metrics
// @Produce     json
// @Param       n  query int    false "Number of entries (default: 5)"
// @Param       by query string false "Criterion: executions, success_rate or avg_latency (default: executions)"
// @Success     200 {object} response.Resp
// @Router      /api/v1/metrics/top [GET]
func (h *handler) TopRoutes(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}
	by := routing.TopRoutesBy(req.By)
	switch by {
	case routing.TopByExecutions, routing.TopBySuccessRate, routing.TopByAvgLatency:
	default:
		by = routing.TopByExecutions
	}
	response.OK(c, h.uc.GetTopRoutes(ctx, req.topN(), by))
}

// notFoundOr maps route-admin errors to 404 where appropriate.
func (h *handler) notFoundOr(c *gin.Context, err error) {
	if errors.Is(err, routing.ErrRouteNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	response.Error(c, err, nil)
}
