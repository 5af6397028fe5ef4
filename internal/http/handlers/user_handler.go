package handlers

import (
	"encoding/json"
	"net/http"

	"chargebay/internal/http/middleware"
	"chargebay/internal/service"
)

// NewUsersListHandler handles GET /api/users (admin).
func NewUsersListHandler(userService *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := userService.ListUsers(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// NewProfileHandler handles GET /api/users/profile.
func NewProfileHandler(userService *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}

		user, err := userService.GetProfile(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// NewUpdateProfileHandler handles PUT /api/users/profile. Absent fields are
// left unchanged.
func NewUpdateProfileHandler(userService *service.UserService) http.HandlerFunc {
	type request struct {
		Name          *string `json:"name"`
		Phone         *string `json:"phone"`
		VehicleNumber *string `json:"vehicle_number"`
		VehicleType   *string `json:"vehicle_type"`
		VehicleBrand  *string `json:"vehicle_brand"`
		VehicleModel  *string `json:"vehicle_model"`
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

		user, err := userService.UpdateProfile(r.Context(), userID, service.UpdateProfileInput{
			Name:          req.Name,
			Phone:         req.Phone,
			VehicleNumber: req.VehicleNumber,
			VehicleType:   req.VehicleType,
			VehicleBrand:  req.VehicleBrand,
			VehicleModel:  req.VehicleModel,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// NewChangePasswordHandler handles POST /api/users/change-password.
func NewChangePasswordHandler(userService *service.UserService) http.HandlerFunc {
	type request struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
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
		if req.CurrentPassword == "" || req.NewPassword == "" {
			writeError(w, http.StatusBadRequest, "current and new passwords are required")
			return
		}

		if err := userService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
	}
}
