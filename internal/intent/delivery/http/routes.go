package http

import (
	"github.com/gin-gonic/gin"

	"loan-advisory-assistant/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// All routes are protected by the Auth middleware by convention.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	intents := rg.Group("/intents")
	{
		intents.POST("/classify", mw.Auth(), h.Classify)
		intents.POST("/route", mw.Auth(), h.Route)
	}

	routes := rg.Group("/routes")
	{
		routes.POST("/:id/enable", mw.Auth(), h.EnableRoute)
		routes.POST("/:id/disable", mw.Auth(), h.DisableRoute)
		routes.GET("/:id/metrics", mw.Auth(), h.RouteMetrics)
	}

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", mw.Auth(), h.CreateSession)
		sessions.GET("/:id", mw.Auth(), h.GetSession)
		sessions.DELETE("/:id", mw.Auth(), h.EndSession)
	}

	history := rg.Group("/history")
	{
		history.GET("", mw.Auth(), h.History)
		history.GET("/frequency", mw.Auth(), h.Frequency)
		history.GET("/top", mw.Auth(), h.TopIntents)
		history.GET("/confidence", mw.Auth(), h.ConfidenceStats)
		history.GET("/hourly", mw.Auth(), h.HourlyVolume)
		history.GET("/users/:user_id", mw.Auth(), h.UserPatterns)
		history.GET("/summary", mw.Auth(), h.HistorySummary)
	}

	metrics := rg.Group("/metrics")
	{
		metrics.GET("/summary", mw.Auth(), h.MetricsSummary)
		metrics.GET("/top", mw.Auth(), h.TopRoutes)
	}
}
