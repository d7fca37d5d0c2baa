package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironmind/internal/auth"
	"ironmind/internal/config"
)

func TestAuthMiddleware(t *testing.T) {
	cfg := config.AuthConfig{JWTSecretKey: "k", JWTExpiry: time.Hour, Issuer: "test"}
	token, _, err := auth.GenerateToken(5, "e@example.com", cfg)
	require.NoError(t, err)

	var seen uint
	h := AuthMiddleware(cfg.JWTSecretKey, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "Token " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"ok", "Bearer " + token, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/friends", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
	assert.Equal(t, uint(5), seen)
}
