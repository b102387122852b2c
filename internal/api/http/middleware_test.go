package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/security"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", 15, 1440)

	var gotID int32
	var gotRole domain.Role
	handler := AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = callerID(r)
		gotRole = callerRole(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("ValidAccessToken", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(9, "owner@test.com", domain.RoleClient)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/my", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int32(9), gotID)
		assert.Equal(t, domain.RoleClient, gotRole)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/bookings/my", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/bookings/my", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("RefreshTokenRejected", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken(9, "owner@test.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/my", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	tokens := security.NewTokenManager("test-secret", 15, 1440)
	handler := AuthMiddleware(tokens)(RequireAdmin(next))

	t.Run("AdminAllowed", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(1, "admin@test.com", domain.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("UserForbidden", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(2, "user@test.com", domain.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
