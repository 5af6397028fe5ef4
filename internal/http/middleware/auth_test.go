package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chargebay/internal/models"
	"chargebay/internal/service"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)
	token, err := tokens.GenerateToken(7, models.RoleUser)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	var gotClaims *service.Claims
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusOK {
				if gotClaims == nil || gotClaims.UserID != 7 {
					t.Errorf("claims = %+v, want user 7", gotClaims)
				}
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	chain := Auth(tokens)(RequireRole(models.RoleAdmin, models.RoleStationMaster)(next))

	tests := []struct {
		role   string
		status int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleStationMaster, http.StatusOK},
		{models.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			token, err := tokens.GenerateToken(7, tt.role)
			if err != nil {
				t.Fatalf("generate token: %v", err)
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			chain.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("role %s: status = %d, want %d", tt.role, rec.Code, tt.status)
			}
		})
	}
}
