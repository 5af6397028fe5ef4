package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chargebay/internal/repository"
	"chargebay/internal/service"
)

func TestWriteServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"station not found", repository.ErrStationNotFound, http.StatusNotFound},
		{"booking not found", repository.ErrBookingNotFound, http.StatusNotFound},
		{"not booking owner", service.ErrNotBookingOwner, http.StatusForbidden},
		{"not station owner", service.ErrNotStationOwner, http.StatusForbidden},
		{"already cancelled", service.ErrBookingAlreadyCancelled, http.StatusConflict},
		{"no slots", service.ErrNoSlotsAvailable, http.StatusConflict},
		{"email in use", service.ErrEmailInUse, http.StatusConflict},
		{"invalid status", service.ErrInvalidStatus, http.StatusBadRequest},
		{"invalid rating", service.ErrInvalidRating, http.StatusBadRequest},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad otp", service.ErrInvalidOTP, http.StatusUnauthorized},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q", ct)
			}
		})
	}
}

func TestWriteServiceErrorWrappedError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.Join(errors.New("context"), repository.ErrUserNotFound))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for wrapped not-found", rec.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	NewHealthHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
