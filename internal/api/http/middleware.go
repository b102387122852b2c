package http

import (
	"context"
	"net/http"
	"strings"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/security"
)

type contextKey string

const (
	ctxKeyUserID contextKey = "user_id"
	ctxKeyRole   contextKey = "role"
)

// AuthMiddleware validates the Bearer access token and stashes the caller's
// identity in the request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondError(w, apperr.Unauthorized("authorization token required"))
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondError(w, apperr.Unauthorized("invalid or expired token"))
				return
			}
			if claims.Type != security.TokenTypeAccess {
				respondError(w, apperr.Unauthorized("access token required"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, ctxKeyRole, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a subrouter to admin callers. It must sit behind
// AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callerRole(r) != domain.RoleAdmin {
			respondError(w, apperr.Forbidden("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func callerID(r *http.Request) int32 {
	id, _ := r.Context().Value(ctxKeyUserID).(int32)
	return id
}

func callerRole(r *http.Request) domain.Role {
	role, _ := r.Context().Value(ctxKeyRole).(domain.Role)
	return role
}
