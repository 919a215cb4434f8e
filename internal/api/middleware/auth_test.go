package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brokerdesk/lead-portal/internal/api/middleware"
	"github.com/brokerdesk/lead-portal/internal/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	userID := uuid.New()

	var gotID uuid.UUID
	var gotEmail, gotRole string
	handler := middleware.Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = middleware.GetUserID(r.Context())
		gotEmail = middleware.GetUserEmail(r.Context())
		gotRole = middleware.GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token passes claims through context", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, "broker@example.com", "broker")
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/leads", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, "broker@example.com", gotEmail)
		assert.Equal(t, "broker", gotRole)
	})

	rejections := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Token abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/leads", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
		})
	}

	t.Run("expired token is rejected like any other bad token", func(t *testing.T) {
		short := auth.NewJWTService("test-secret", time.Millisecond)
		token, err := short.GenerateToken(userID, "broker@example.com", "broker")
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)

		shortHandler := middleware.Auth(short)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest("GET", "/api/leads", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		shortHandler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	})
}

func TestAdminOnly(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)

	chain := middleware.Auth(jwtService)(middleware.AdminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("admin passes", func(t *testing.T) {
		token, err := jwtService.GenerateToken(uuid.New(), "admin@example.com", "admin")
		require.NoError(t, err)

		req := httptest.NewRequest("DELETE", "/api/users/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		chain.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("broker is forbidden", func(t *testing.T) {
		token, err := jwtService.GenerateToken(uuid.New(), "broker@example.com", "broker")
		require.NoError(t, err)

		req := httptest.NewRequest("DELETE", "/api/users/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		chain.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.JSONEq(t, `{"error":"Admin access required"}`, rr.Body.String())
	})
}
