package handlers

import (
	"encoding/json"
	"net/http"

	"chargebay/internal/http/middleware"
	"chargebay/internal/models"
	"chargebay/internal/service"
)

// NewReviewsListHandler handles GET /api/reviews.
func NewReviewsListHandler(reviewService *service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviews, err := reviewService.ListReviews(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reviews)
	}
}

// NewStationReviewsHandler handles GET /api/reviews/station/{id}.
func NewStationReviewsHandler(reviewService *service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid station id")
			return
		}

		reviews, err := reviewService.ListReviewsByStation(r.Context(), stationID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reviews)
	}
}

// NewReviewCreateHandler handles POST /api/reviews.
func NewReviewCreateHandler(reviewService *service.ReviewService) http.HandlerFunc {
	type request struct {
		StationID int64  `json:"station_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
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

		review := &models.Review{
			UserID:    userID,
			StationID: req.StationID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := reviewService.CreateReview(r.Context(), review); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, review)
	}
}
