package http

import (
	"github.com/gin-gonic/gin"

	"loan-advisory-assistant/internal/intent"
	"loan-advisory-assistant/pkg/log"
)

// Handler is the public interface for the intent HTTP delivery layer.
type Handler interface {
	Classify(c *gin.Context)
	Route(c *gin.Context)
	EnableRoute(c *gin.Context)
	DisableRoute(c *gin.Context)
	CreateSession(c *gin.Context)
	GetSession(c *gin.Context)
	EndSession(c *gin.Context)
	History(c *gin.Context)
	Frequency(c *gin.Context)
	TopIntents(c *gin.Context)
	ConfidenceStats(c *gin.Context)
	HourlyVolume(c *gin.Context)
	UserPatterns(c *gin.Context)
	HistorySummary(c *gin.Context)
	RouteMetrics(c *gin.Context)
	MetricsSummary(c *gin.Context)
	TopRoutes(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc intent.UseCase
}

// New creates a new HTTP handler for the intent domain.
func New(l log.Logger, uc intent.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}

var _ Handler = (*handler)(nil)
