package handlers

import (
	"encoding/json"
	"net/http"

	"chargebay/internal/http/middleware"
	"chargebay/internal/models"
	"chargebay/internal/service"
)

// NewMasterStationsListHandler handles GET /api/station-master/stations.
func NewMasterStationsListHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		masterID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}

		stations, err := stationService.GetStationsByMaster(r.Context(), masterID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stations)
	}
}

// NewMasterStationCreateHandler handles POST /api/station-master/stations.
// The listing starts in Pending approval state.
func NewMasterStationCreateHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		masterID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}

		var station models.Station
		if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if station.Name == "" || station.TotalSlots <= 0 {
			writeError(w, http.StatusBadRequest, "name and a positive total_slots are required")
			return
		}

		if err := stationService.CreateStationForMaster(r.Context(), &station, masterID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, station)
	}
}

// NewMasterStationUpdateHandler handles PUT /api/station-master/stations/{id}.
// Edits drop the listing back to Pending.
func NewMasterStationUpdateHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		masterID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid station id")
			return
		}

		var station models.Station
		if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		station.ID = id

		if err := stationService.UpdateStationForMaster(r.Context(), &station, masterID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, station)
	}
}

// NewMasterStationStatusHandler handles PUT /api/station-master/stations/{id}/status.
func NewMasterStationStatusHandler(stationService *service.StationService) http.HandlerFunc {
	type request struct {
		Status string `json:"status"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		masterID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid station id")
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Status != models.StationStatusAvailable && req.Status != models.StationStatusUnavailable {
			writeError(w, http.StatusBadRequest, "status must be Available or Unavailable")
			return
		}

		if err := stationService.SetStatusForMaster(r.Context(), id, req.Status, masterID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
	}
}

// NewMasterStationBookingsHandler handles GET /api/station-master/stations/{id}/bookings.
func NewMasterStationBookingsHandler(bookingService *service.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		masterID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid station id")
			return
		}

		bookings, err := bookingService.GetBookingsForStationMaster(r.Context(), id, masterID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)
	}
}

// NewMasterBookingStatusHandler builds the handler behind
// PUT /api/station-master/bookings/{id}/confirm, /cancel and /complete;
// each route binds its target status.
func NewMasterBookingStatusHandler(bookingService *service.BookingService, status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		masterID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid booking id")
			return
		}

		if err := bookingService.UpdateStatusForStationMaster(r.Context(), id, status, masterID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": status})
	}
}
