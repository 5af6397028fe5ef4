package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"chargebay/internal/models"
	"chargebay/internal/service"
)

// NewStationsListHandler handles GET /api/stations: the public listing of
// approved stations.
func NewStationsListHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stations, err := stationService.GetApprovedStations(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stations)
	}
}

// NewStationGetHandler handles GET /api/stations/{id}.
func NewStationGetHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid station id")
			return
		}

		station, err := stationService.GetStation(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, station)
	}
}

// NewStationsNearbyHandler handles GET /api/stations/nearby?lat&lng&range.
// range is the search radius in kilometers and defaults to 50.
func NewStationsNearbyHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		lat, err := strconv.ParseFloat(query.Get("lat"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "lat is required")
			return
		}
		lng, err := strconv.ParseFloat(query.Get("lng"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "lng is required")
			return
		}
		radius := 50.0
		if raw := query.Get("range"); raw != "" {
			radius, err = strconv.ParseFloat(raw, 64)
			if err != nil || radius <= 0 {
				writeError(w, http.StatusBadRequest, "range must be a positive number")
				return
			}
		}

		stations, err := stationService.Nearby(r.Context(), lat, lng, radius)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stations)
	}
}

// NewStationCreateHandler handles POST /api/stations (admin).
func NewStationCreateHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var station models.Station
		if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if station.Name == "" || station.TotalSlots <= 0 {
			writeError(w, http.StatusBadRequest, "name and a positive total_slots are required")
			return
		}

		if err := stationService.CreateStation(r.Context(), &station); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, station)
	}
}

// NewStationUpdateHandler handles PUT /api/stations/{id} (admin).
func NewStationUpdateHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		if err := stationService.UpdateStation(r.Context(), &station); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, station)
	}
}

// NewStationDeleteHandler handles DELETE /api/stations/{id} (admin).
func NewStationDeleteHandler(stationService *service.StationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid station id")
			return
		}

		if err := stationService.DeleteStation(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "station deleted"})
	}
}
