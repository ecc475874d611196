package httpserver

import (
	"context"

	intentHTTP "loan-advisory-assistant/internal/intent/delivery/http"
	"loan-advisory-assistant/internal/middleware"

	"github.com/gin-gonic/gin"
)

// setupIntentDomain registers the intent routing endpoints.
//
// Pattern to follow when adding a new domain:
//  1. Create UseCase:      uc := mydomainUC.New(...)
//  2. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc)
//  3. Register Routes:     mydomainHTTP.RegisterRoutes(rg, h, mw)
func (srv HTTPServer) setupIntentDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := intentHTTP.New(srv.l, srv.intentUC)

	intentHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Intent domain registered")
	return nil
}
