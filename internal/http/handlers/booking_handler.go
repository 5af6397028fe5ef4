package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"chargebay/internal/http/middleware"
	"chargebay/internal/models"
	"chargebay/internal/service"
)

// NewBookingCreateHandler handles POST /api/bookings.
func NewBookingCreateHandler(bookingService *service.BookingService) http.HandlerFunc {
	type request struct {
		StationID     int64     `json:"station_id"`
		StartTime     time.Time `json:"start_time"`
		EndTime       time.Time `json:"end_time"`
		Amount        float64   `json:"amount"`
		Date          string    `json:"date"`
		TimeSlot      string    `json:"time_slot"`
		DurationHours int       `json:"duration_hours"`
		PaymentMethod string    `json:"payment_method"`
		PaymentID     string    `json:"payment_id"`
		VehicleType   string    `json:"vehicle_type"`
		VehicleBrand  string    `json:"vehicle_brand"`
		VehicleModel  string    `json:"vehicle_model"`
		VehicleNumber string    `json:"vehicle_number"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.StationID == 0 {
			writeError(w, http.StatusBadRequest, "station_id is required")
			return
		}

		booking, err := bookingService.CreateBooking(r.Context(), service.CreateBookingInput{
			UserID:        userID,
			StationID:     req.StationID,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Amount:        req.Amount,
			Date:          req.Date,
			TimeSlot:      req.TimeSlot,
			DurationHours: req.DurationHours,
			PaymentMethod: req.PaymentMethod,
			PaymentID:     req.PaymentID,
			VehicleType:   req.VehicleType,
			VehicleBrand:  req.VehicleBrand,
			VehicleModel:  req.VehicleModel,
			VehicleNumber: req.VehicleNumber,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, booking)
	}
}

// NewUserBookingsHandler handles GET /api/bookings/user.
func NewUserBookingsHandler(bookingService *service.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}

		bookings, err := bookingService.GetUserBookings(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)
	}
}

// NewBookingGetHandler handles GET /api/bookings/{id}. Regular users can
// only read their own bookings.
func NewBookingGetHandler(bookingService *service.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid booking id")
			return
		}

		booking, err := bookingService.GetBooking(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if booking.UserID != claims.UserID && claims.Role != models.RoleAdmin {
			writeError(w, http.StatusForbidden, "not your booking")
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

// NewBookingCancelHandler handles PUT /api/bookings/{id}/cancel.
func NewBookingCancelHandler(bookingService *service.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid booking id")
			return
		}

		if err := bookingService.CancelByUser(r.Context(), id, userID); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "booking cancelled"})
	}
}

// NewAdminBookingsHandler handles GET /api/bookings/admin and
// GET /api/admin/bookings.
func NewAdminBookingsHandler(bookingService *service.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := bookingService.GetAllBookings(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookings)
	}
}

// NewAdminBookingCancelHandler handles POST /api/bookings/admin-cancel.
// Cancelling an already-cancelled booking is a no-op.
func NewAdminBookingCancelHandler(bookingService *service.BookingService) http.HandlerFunc {
	type request struct {
		BookingID int64  `json:"booking_id"`
		Message   string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.BookingID == 0 {
			writeError(w, http.StatusBadRequest, "booking_id is required")
			return
		}

		if err := bookingService.CancelByAdmin(r.Context(), req.BookingID, req.Message); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "booking cancelled"})
	}
}
