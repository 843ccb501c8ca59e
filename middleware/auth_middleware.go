package middleware

import (
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sprachlab/event-gateway/internal/observability"
	"github.com/sprachlab/event-gateway/utils"
)

// AuthMiddleware gates requests behind a single static bearer token. It is
// composed explicitly in front of the handlers it protects; there is no
// identity, session, or expiry, only an exact-match check against the
// configured secret.
type AuthMiddleware struct {
	token   string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthMiddleware creates an AuthMiddleware for the configured secret.
// An empty secret disables the gate entirely.
func NewAuthMiddleware(token string, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		token:   token,
		logger:  logger,
		metrics: metrics,
	}
}

// Enabled reports whether a secret is configured.
func (m *AuthMiddleware) Enabled() bool {
	return m.token != ""
}

// RequireToken rejects requests whose Authorization bearer token does not
// exactly equal the configured secret. The 401 body and the logs carry a
// generic message only; the presented token is never echoed anywhere.
// Runs strictly after routing and before the handler, so a rejected request
// executes no handler logic.
func (m *AuthMiddleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		requestID := chimiddleware.GetReqID(r.Context())

		token := extractBearerToken(r)
		if token == "" {
			m.logger.Warn("missing bearer token",
				zap.String("request_id", requestID))
			m.metrics.RecordRejected("auth")
			_ = utils.WriteUnauthorized(w, "")
			return
		}

		if token != m.token {
			m.logger.Warn("bearer token mismatch",
				zap.String("request_id", requestID))
			m.metrics.RecordRejected("auth")
			_ = utils.WriteUnauthorized(w, "")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	// Check if it starts with "Bearer "
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
