package handlers

import (
	"encoding/json"
	"net/http"

	"chargebay/internal/http/middleware"
	"chargebay/internal/service"
)

// NewVehicleBrandsHandler handles GET /api/vehicles/brands.
func NewVehicleBrandsHandler(vehicleService *service.VehicleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := vehicleService.GetBrands(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, brands)
	}
}

// NewVehicleBrandsByTypeHandler handles GET /api/vehicles/brands/{type}.
func NewVehicleBrandsByTypeHandler(vehicleService *service.VehicleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vehicleType := r.PathValue("type")
		if vehicleType == "" {
			writeError(w, http.StatusBadRequest, "vehicle type is required")
			return
		}

		brands, err := vehicleService.GetBrandsByType(r.Context(), vehicleType)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, brands)
	}
}

// NewVehicleModelsHandler handles GET /api/vehicles/brands/{id}/models.
func NewVehicleModelsHandler(vehicleService *service.VehicleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brandID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid brand id")
			return
		}

		models, err := vehicleService.GetModelsByBrand(r.Context(), brandID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, models)
	}
}

// NewUserVehicleGetHandler handles GET /api/vehicles/user-vehicle.
func NewUserVehicleGetHandler(userService *service.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing token claims")
			return
		}

		vehicle, err := userService.GetUserVehicle(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, vehicle)
	}
}

// NewUserVehicleSaveHandler handles POST /api/vehicles/user-vehicle.
func NewUserVehicleSaveHandler(userService *service.UserService) http.HandlerFunc {
	type request struct {
		Brand  string `json:"brand"`
		Model  string `json:"model"`
		Type   string `json:"type"`
		Number string `json:"number"`
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

		if err := userService.SaveUserVehicle(r.Context(), userID, req.Brand, req.Model, req.Type, req.Number); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "vehicle saved"})
	}
}
