package http

import (
	"context"
	"net/http"
	"strings"

	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

// AuthMiddleware validates the bearer token and stashes the caller's
// identity and reviewer role in the request context.
func AuthMiddleware(tm security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := tm.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFrom returns the authenticated caller's id and reviewer role.
func actorFrom(r *http.Request) (int32, domain.ReviewStage) {
	claims, ok := r.Context().Value(claimsKey).(*security.UserClaims)
	if !ok {
		return 0, ""
	}
	return claims.UserID, claims.Role
}
