package handlers

import (
	"net/http"

	"chargebay/internal/models"
	"chargebay/internal/service"
)

// NewAdminStationsHandler handles GET /api/admin/stations: every station
// regardless of approval state.
func NewAdminStationsHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stations, err := stationService.GetAllStations(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stations)
	}
}

// NewPendingStationsHandler handles GET /api/admin/stations/pending.
func NewPendingStationsHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stations, err := stationService.GetStationsByApproval(r.Context(), models.ApprovalStatusPending)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stations)
	}
}

// NewStationApprovalHandler builds the handler behind
// PUT /api/admin/stations/{id}/approve and /reject; each route binds its
// target approval state.
func NewStationApprovalHandler(stationService *service.StationService, approval string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid station id")
			return
		}

		if _, err := stationService.GetStation(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		if err := stationService.SetApproval(r.Context(), id, approval); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"approval_status": approval})
	}
}

// NewDashboardStatsHandler handles GET /api/admin/dashboard-stats. Revenue
// sums the amounts of non-cancelled bookings.
func NewDashboardStatsHandler(userService *service.UserService, stationService *service.StationService, bookingService *service.BookingService) http.HandlerFunc {
	type response struct {
		TotalUsers     int     `json:"total_users"`
		TotalStations  int     `json:"total_stations"`
		TotalBookings  int     `json:"total_bookings"`
		ActiveBookings int     `json:"active_bookings"`
		Revenue        float64 `json:"revenue"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		users, err := userService.ListUsers(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		stations, err := stationService.GetAllStations(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		bookings, err := bookingService.GetAllBookings(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		stats := response{
			TotalUsers:    len(users),
			TotalStations: len(stations),
			TotalBookings: len(bookings),
		}
		for _, booking := range bookings {
			if booking.Status == models.BookingStatusConfirmed {
				stats.ActiveBookings++
			}
			if booking.Status != models.BookingStatusCancelled {
				stats.Revenue += booking.Amount
			}
		}

		writeJSON(w, http.StatusOK, stats)
	}
}
