package service

import (
	"context"

	"chargebay/internal/models"
)

// Storage contracts consumed by the services. The repository.Store type
// satisfies all of them; tests substitute in-memory fakes.

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, user *models.User) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// StationStore persists stations and owns the slot counters.
type StationStore interface {
	CreateStation(ctx context.Context, station *models.Station) error
	GetStation(ctx context.Context, id int64) (*models.Station, error)
	UpdateStation(ctx context.Context, station *models.Station) error
	DeleteStation(ctx context.Context, id int64) error
	ListStations(ctx context.Context) ([]models.Station, error)
	ListStationsByStatus(ctx context.Context, status string) ([]models.Station, error)
	ListStationsByApproval(ctx context.Context, approval string) ([]models.Station, error)
	ListStationsByMaster(ctx context.Context, masterID int64) ([]models.Station, error)
	SetStationStatus(ctx context.Context, id int64, status string) error
	SetStationApproval(ctx context.Context, id int64, approval string) error
}

// BookingStore reads bookings outside a transaction.
type BookingStore interface {
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error)
	ListAllBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByStation(ctx context.Context, stationID int64) ([]models.Booking, error)
}

// BookingTx is the write surface available inside one booking lifecycle
// transaction: the booking row and its station's slot counter move together.
type BookingTx interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	SetBookingStatus(ctx context.Context, id int64, status string) error
	MarkBookingCancelled(ctx context.Context, id int64, message string) error
	GetStation(ctx context.Context, id int64) (*models.Station, error)
	ReserveSlot(ctx context.Context, stationID int64) (bool, error)
	ReleaseSlot(ctx context.Context, stationID int64) (bool, error)
}

// TxRunner executes fn inside a single database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx BookingTx) error) error
}

// ReviewStore persists station reviews.
type ReviewStore interface {
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviews(ctx context.Context) ([]models.Review, error)
	ListReviewsByStation(ctx context.Context, stationID int64) ([]models.Review, error)
}

// VehicleStore serves the vehicle catalog.
type VehicleStore interface {
	ListBrands(ctx context.Context) ([]models.VehicleBrand, error)
	ListBrandsByType(ctx context.Context, vehicleType string) ([]models.VehicleBrand, error)
	ListModelsByBrand(ctx context.Context, brandID int64) ([]models.VehicleModel, error)
}
