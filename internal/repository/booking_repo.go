package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargebay/internal/models"
)

// ErrBookingNotFound indicates a missing booking id.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository handles persistence of bookings.
type BookingRepository struct {
	db DBTX
}

// NewBookingRepository returns repository.
func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

// station_id goes NULL when a station is deleted out from under its booking
// history, so it is read back as 0.
const bookingColumns = `b.id, b.user_id, COALESCE(b.station_id, 0), b.start_time, b.end_time,
	b.status, b.amount, b.date, b.time_slot, b.duration_hours, b.payment_method,
	b.payment_id, b.vehicle_type, b.vehicle_brand, b.vehicle_model,
	b.vehicle_number, b.cancellation_message, b.created_at`

// CreateBooking inserts a booking and fills in the generated id and
// creation timestamp.
func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	const query = `
		INSERT INTO bookings (user_id, station_id, start_time, end_time, status,
			amount, date, time_slot, duration_hours, payment_method, payment_id,
			vehicle_type, vehicle_brand, vehicle_model, vehicle_number,
			cancellation_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, '', NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		booking.UserID,
		booking.StationID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.Amount,
		booking.Date,
		booking.TimeSlot,
		booking.DurationHours,
		booking.PaymentMethod,
		booking.PaymentID,
		booking.VehicleType,
		booking.VehicleBrand,
		booking.VehicleModel,
		booking.VehicleNumber,
	).Scan(&booking.ID, &booking.CreatedAt)
}

// GetBooking returns the booking by id.
func (r *BookingRepository) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	const query = `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`
	var b models.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.StationID, &b.StartTime, &b.EndTime,
		&b.Status, &b.Amount, &b.Date, &b.TimeSlot, &b.DurationHours,
		&b.PaymentMethod, &b.PaymentID, &b.VehicleType, &b.VehicleBrand,
		&b.VehicleModel, &b.VehicleNumber, &b.CancellationMessage, &b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SetBookingStatus writes only the status column.
func (r *BookingRepository) SetBookingStatus(ctx context.Context, id int64, status string) error {
	const query = `UPDATE bookings SET status = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	return requireRow(result, ErrBookingNotFound)
}

// MarkBookingCancelled sets the terminal Cancelled status together with the
// operator- or user-facing message.
func (r *BookingRepository) MarkBookingCancelled(ctx context.Context, id int64, message string) error {
	const query = `UPDATE bookings SET status = $2, cancellation_message = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, models.BookingStatusCancelled, message)
	if err != nil {
		return err
	}
	return requireRow(result, ErrBookingNotFound)
}

// ListBookingsByUser returns a user's bookings, newest first, with station
// names for display.
func (r *BookingRepository) ListBookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `, COALESCE(s.name, ''), ''
		FROM bookings b
		LEFT JOIN stations s ON s.id = b.station_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`
	return r.queryBookings(ctx, query, userID)
}

// ListAllBookings returns every booking with station and user names.
func (r *BookingRepository) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `, COALESCE(s.name, ''), COALESCE(u.name, '')
		FROM bookings b
		LEFT JOIN stations s ON s.id = b.station_id
		LEFT JOIN users u ON u.id = b.user_id
		ORDER BY b.created_at DESC
	`
	return r.queryBookings(ctx, query)
}

// ListBookingsByStation returns a station's bookings with user names.
func (r *BookingRepository) ListBookingsByStation(ctx context.Context, stationID int64) ([]models.Booking, error) {
	const query = `
		SELECT ` + bookingColumns + `, '', COALESCE(u.name, '')
		FROM bookings b
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.station_id = $1
		ORDER BY b.created_at DESC
	`
	return r.queryBookings(ctx, query, stationID)
}

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.StationID, &b.StartTime, &b.EndTime,
			&b.Status, &b.Amount, &b.Date, &b.TimeSlot, &b.DurationHours,
			&b.PaymentMethod, &b.PaymentID, &b.VehicleType, &b.VehicleBrand,
			&b.VehicleModel, &b.VehicleNumber, &b.CancellationMessage,
			&b.CreatedAt, &b.StationName, &b.UserName,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
