package middleware

import (
	"careerai/internal/model"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserIDKey contextKey = "userId"
	ClaimsKey contextKey = "claims"
)

// SessionCookie carries the session token for browser page routes
const SessionCookie = "careerai_session"

// TokenValidator resolves a session token to its claims
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*model.UserClaims, error)
}

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	auth TokenValidator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// RequireUser validates the session token from the Authorization header, session cookie or query param
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.auth.ValidateToken(r.Context(), token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// OptionalUser attaches the claims when a valid token is present and never rejects
func (m *AuthMiddleware) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := m.resolve(r); claims != nil {
			r = r.WithContext(withClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

// Gate guards page routes. Signed-out visitors are sent to the entry page,
// signed-in visitors are sent from the entry page to the dashboard.
func (m *AuthMiddleware) Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := m.resolve(r)
		entry := r.URL.Path == "/"

		if claims == nil && !entry {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		if claims != nil && entry {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}

		if claims != nil {
			r = r.WithContext(withClaims(r.Context(), claims))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) resolve(r *http.Request) *model.UserClaims {
	token := extractToken(r)
	if token == "" {
		return nil
	}
	claims, err := m.auth.ValidateToken(r.Context(), token)
	if err != nil {
		return nil
	}
	return claims
}

func withClaims(ctx context.Context, claims *model.UserClaims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetClaims extracts the session claims from context
func GetClaims(ctx context.Context) *model.UserClaims {
	if v := ctx.Value(ClaimsKey); v != nil {
		return v.(*model.UserClaims)
	}
	return nil
}

func extractToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	// Try query param for WebSocket
	return r.URL.Query().Get("token")
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
	return parts[1]
}
