package repository

import (
	"context"

	"chargebay/internal/models"
)

// ReviewRepository handles persistence of station reviews.
type ReviewRepository struct {
	db DBTX
}

// NewReviewRepository returns repository.
func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateReview inserts a review.
func (r *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	const query = `
		INSERT INTO reviews (user_id, station_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		review.UserID,
		review.StationID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
}

// ListReviews returns all reviews with display names, newest first.
func (r *ReviewRepository) ListReviews(ctx context.Context) ([]models.Review, error) {
	const query = `
		SELECT r.id, r.user_id, r.station_id, r.rating, r.comment, r.created_at,
			COALESCE(u.name, ''), COALESCE(s.name, '')
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		LEFT JOIN stations s ON s.id = r.station_id
		ORDER BY r.created_at DESC
	`
	return r.queryReviews(ctx, query)
}

// ListReviewsByStation returns one station's reviews, newest first.
func (r *ReviewRepository) ListReviewsByStation(ctx context.Context, stationID int64) ([]models.Review, error) {
	const query = `
		SELECT r.id, r.user_id, r.station_id, r.rating, r.comment, r.created_at,
			COALESCE(u.name, ''), COALESCE(s.name, '')
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		LEFT JOIN stations s ON s.id = r.station_id
		WHERE r.station_id = $1
		ORDER BY r.created_at DESC
	`
	return r.queryReviews(ctx, query, stationID)
}

func (r *ReviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID, &review.UserID, &review.StationID, &review.Rating,
			&review.Comment, &review.CreatedAt, &review.UserName, &review.StationName,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
