package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"chargebay/internal/repository"
	"chargebay/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps domain errors onto HTTP statuses: missing rows to
// 404, ownership failures to 403, lifecycle conflicts to 409, bad input to
// 400, everything else to a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrStationNotFound),
		errors.Is(err, repository.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotBookingOwner),
		errors.Is(err, service.ErrNotStationOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrBookingAlreadyCancelled),
		errors.Is(err, service.ErrBookingCompleted),
		errors.Is(err, service.ErrNoSlotsAvailable),
		errors.Is(err, service.ErrEmailInUse):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrWrongPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidOTP):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathID parses the named numeric path segment.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
