package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/common"
	"github.com/dmitrijs2005/smartirrigation/internal/server/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// ClaimsFromContext returns the identity stored by the authentication
// middleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// bearerToken splits an "Authorization: <scheme> <token>" header. present
// reports whether a token part was sent at all; token is empty unless the
// scheme is Bearer (matched case-insensitively).
func bearerToken(header string) (token string, present bool) {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], common.BearerScheme) {
		return "", true
	}
	return parts[1], true
}

// authenticate rejects requests without a token with 401 and requests
// whose token is not a valid bearer token with 403.
func (s *HTTPServer) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !present {
			abortError(c, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "error", err)
			abortError(c, http.StatusForbidden, "Invalid or expired token")
			return
		}

		c.Request = c.Request.WithContext(withClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// requestLogger tags each request with an id and writes one access-log line.
func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(common.RequestIDHeaderName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(common.RequestIDHeaderName, requestID)

		c.Next()

		args := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			s.logger.Warn(c.Request.Context(), "request", args...)
			return
		}
		s.logger.Info(c.Request.Context(), "request", args...)
	}
}
