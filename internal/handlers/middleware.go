package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"readquest/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const claimsContextKey ContextKey = "claims"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	tokens      *security.TokenManager
	ingestToken string
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(tokens *security.TokenManager, ingestToken string) *Middleware {
	return &Middleware{
		tokens:      tokens,
		ingestToken: ingestToken,
		limiter:     security.NewRateLimiter(10, time.Minute),
	}
}

// RateLimit caps request bursts per client IP, used on the credential
// endpoints
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.limiter.Allow(security.ClientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "too many requests, slow down")
			return
		}
		next(w, r)
	}
}

// RequireAuth validates the bearer token and puts its claims on the request
// context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin allows only tokens carrying the admin role
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil || claims.Role != "admin" {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	})
}

// RequireIngestToken guards the content-ingestion endpoints with the shared
// worker token
func (m *Middleware) RequireIngestToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.ingestToken == "" {
			respondError(w, http.StatusServiceUnavailable, "ingestion is not configured")
			return
		}
		if r.Header.Get("X-Ingest-Token") != m.ingestToken {
			respondError(w, http.StatusUnauthorized, "invalid ingest token")
			return
		}
		next(w, r)
	}
}

// ClaimsFromContext returns the authenticated token claims, nil when absent
func ClaimsFromContext(ctx context.Context) *security.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*security.Claims)
	return claims
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}
