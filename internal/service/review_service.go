package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"chargebay/internal/models"
)

// ErrInvalidRating rejects ratings outside 1..5.
var ErrInvalidRating = errors.New("review: rating must be between 1 and 5")

// ReviewService covers station reviews.
type ReviewService struct {
	reviews  ReviewStore
	stations StationStore
	logger   *zap.Logger
}

// NewReviewService builds service.
func NewReviewService(reviews ReviewStore, stations StationStore, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, stations: stations, logger: logger}
}

// CreateReview records a rating after checking the station exists.
func (s *ReviewService) CreateReview(ctx context.Context, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}
	if _, err := s.stations.GetStation(ctx, review.StationID); err != nil {
		return err
	}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return err
	}
	s.logger.Info("review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("station_id", review.StationID),
		zap.Int("rating", review.Rating),
	)
	return nil
}

// ListReviews returns all reviews.
func (s *ReviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	return s.reviews.ListReviews(ctx)
}

// ListReviewsByStation returns one station's reviews.
func (s *ReviewService) ListReviewsByStation(ctx context.Context, stationID int64) ([]models.Review, error) {
	return s.reviews.ListReviewsByStation(ctx, stationID)
}
