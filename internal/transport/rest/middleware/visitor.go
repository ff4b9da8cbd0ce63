package middleware

import (
	"context"
	"net/http"
	"realitycheck/internal/service"
	"strings"
)

type contextKey string

const (
	VisitorIDKey contextKey = "visitorId"
	ClientIPKey  contextKey = "clientIp"
)

// VisitorMiddleware attaches the visitor id from an optional bearer token
type VisitorMiddleware struct {
	visitorSvc *service.VisitorService
}

// NewVisitorMiddleware creates a new visitor middleware
func NewVisitorMiddleware(visitorSvc *service.VisitorService) *VisitorMiddleware {
	return &VisitorMiddleware{visitorSvc: visitorSvc}
}

// Identify never rejects a request: a missing or invalid token just leaves
// the visitor id empty, and quotas fall back to the client IP.
func (m *VisitorMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			// WebSocket clients cannot set headers
			token = r.URL.Query().Get("token")
		}
		if token != "" {
			if claims, err := m.visitorSvc.Validate(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), VisitorIDKey, claims.VisitorID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetVisitorID extracts visitor ID from context
func GetVisitorID(ctx context.Context) string {
	if v, ok := ctx.Value(VisitorIDKey).(string); ok {
		return v
	}
	return ""
}

// CallerFrom builds the quota identity for a request
func CallerFrom(r *http.Request) service.Caller {
	return service.Caller{
		IP:        GetClientIP(r.Context()),
		VisitorID: GetVisitorID(r.Context()),
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
