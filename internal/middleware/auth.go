package middleware

import (
	"github.com/gin-gonic/gin"

	"loan-advisory-assistant/internal/model"
	"loan-advisory-assistant/pkg/response"
)

const (
	headerAPIKey   = "X-API-Key"
	headerUserID   = "X-User-ID"
	headerUsername = "X-Username"

	scopeKey = "scope"
)

// Auth validates the API key header and attaches the caller scope to the
// gin context. Requests without a user id still pass; they act on the
// anonymous scope. Authenticated requires a configured key that matched:
// with no key configured every caller stays unauthenticated, so
// auth-gated routes are unreachable until a key is set.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		keyMatched := m.apiKey != "" && c.GetHeader(headerAPIKey) == m.apiKey
		if m.apiKey != "" && !keyMatched {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc := model.Scope{
			UserID:        c.GetHeader(headerUserID),
			Username:      c.GetHeader(headerUsername),
			Authenticated: keyMatched && c.GetHeader(headerUserID) != "",
		}
		c.Set(scopeKey, sc)
		c.Next()
	}
}

// ScopeFromContext reads the scope the Auth middleware attached. Handlers
// registered without Auth get the zero scope.
func ScopeFromContext(c *gin.Context) model.Scope {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}
	}
	sc, ok := v.(model.Scope)
	if !ok {
		return model.Scope{}
	}
	return sc
}
