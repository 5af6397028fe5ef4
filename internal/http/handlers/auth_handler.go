package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"chargebay/internal/service"
)

// NewRegisterHandler handles POST /api/auth/register.
func NewRegisterHandler(authService *service.AuthService) http.HandlerFunc {
	type request struct {
		Email         string `json:"email"`
		Name          string `json:"name"`
		Password      string `json:"password"`
		Phone         string `json:"phone"`
		Role          string `json:"role"`
		VehicleNumber string `json:"vehicle_number"`
		VehicleType   string `json:"vehicle_type"`
		VehicleBrand  string `json:"vehicle_brand"`
		VehicleModel  string `json:"vehicle_model"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "email, name and password are required")
			return
		}

		result, err := authService.Register(r.Context(), service.RegisterInput{
			Email:         req.Email,
			Name:          req.Name,
			Password:      req.Password,
			Phone:         req.Phone,
			Role:          req.Role,
			VehicleNumber: req.VehicleNumber,
			VehicleType:   req.VehicleType,
			VehicleBrand:  req.VehicleBrand,
			VehicleModel:  req.VehicleModel,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, result)
	}
}

// NewLoginHandler handles POST /api/auth/login.
func NewLoginHandler(authService *service.AuthService) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Email) == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		result, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// NewSendOTPHandler handles POST /api/auth/send-otp.
func NewSendOTPHandler(authService *service.AuthService) http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			writeError(w, http.StatusBadRequest, "email is required")
			return
		}

		if err := authService.SendOTP(r.Context(), req.Email); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "code sent"})
	}
}

// NewLoginOTPHandler handles POST /api/auth/login-otp.
func NewLoginOTPHandler(authService *service.AuthService) http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Code) == "" {
			writeError(w, http.StatusBadRequest, "email and code are required")
			return
		}

		result, err := authService.LoginWithOTP(r.Context(), req.Email, req.Code)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// NewGoogleRegisterHandler handles POST /api/auth/google-register. The
// caller's identity is assumed to have been verified by the frontend's
// Google sign-in flow.
func NewGoogleRegisterHandler(authService *service.AuthService) http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			writeError(w, http.StatusBadRequest, "email is required")
			return
		}

		result, err := authService.RegisterExternal(r.Context(), req.Email, req.Name)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
