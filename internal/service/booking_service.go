package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"chargebay/internal/models"
)

var (
	// ErrNotBookingOwner is returned when a user cancels someone else's booking.
	ErrNotBookingOwner = errors.New("booking: not owned by requesting user")
	// ErrNotStationOwner is returned when a station master acts on a station
	// that is not theirs.
	ErrNotStationOwner = errors.New("station: not owned by requesting station master")
	// ErrBookingAlreadyCancelled rejects a second user-facing cancellation.
	ErrBookingAlreadyCancelled = errors.New("booking: already cancelled")
	// ErrBookingCompleted rejects transitions out of the Completed state.
	ErrBookingCompleted = errors.New("booking: already completed")
	// ErrNoSlotsAvailable rejects creation against a fully booked station.
	ErrNoSlotsAvailable = errors.New("booking: station has no available slots")
	// ErrInvalidStatus rejects unknown target statuses.
	ErrInvalidStatus = errors.New("booking: invalid status")
)

// Cancellation messages written by the lifecycle paths.
const (
	cancelledByUserMessage   = "Cancelled by user"
	cancelledByMasterMessage = "Cancelled by station master"
	cancelledByAdminMessage  = "Cancelled by admin"
)

// BookingService owns booking state transitions and the capacity invariant
// linking bookings to station slot counters. Every state-mutating operation
// runs the booking write and the counter write in one transaction.
type BookingService struct {
	tx            TxRunner
	bookings      BookingStore
	stations      StationStore
	allowOverbook bool
	logger        *zap.Logger
}

// NewBookingService builds the lifecycle manager. allowOverbook keeps the
// legacy accept-when-full behavior instead of rejecting creation.
func NewBookingService(tx TxRunner, bookings BookingStore, stations StationStore, allowOverbook bool, logger *zap.Logger) *BookingService {
	return &BookingService{
		tx:            tx,
		bookings:      bookings,
		stations:      stations,
		allowOverbook: allowOverbook,
		logger:        logger,
	}
}

// CreateBookingInput carries everything needed to reserve a slot. The
// vehicle fields are snapshotted onto the booking as-is.
type CreateBookingInput struct {
	UserID        int64
	StationID     int64
	StartTime     time.Time
	EndTime       time.Time
	Amount        float64
	Date          string
	TimeSlot      string
	DurationHours int
	PaymentMethod string
	PaymentID     string
	VehicleType   string
	VehicleBrand  string
	VehicleModel  string
	VehicleNumber string
}

// CreateBooking reserves one slot at the station and records the booking in
// Confirmed state. It fails with the station store's not-found error when
// the station does not exist, and with ErrNoSlotsAvailable when the station
// is full (unless overbooking is allowed, in which case the decrement is
// skipped and the booking still goes through).
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if input.DurationHours <= 0 {
		input.DurationHours = 1
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = "Card"
	}

	booking := &models.Booking{
		UserID:        input.UserID,
		StationID:     input.StationID,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Status:        models.BookingStatusConfirmed,
		Amount:        input.Amount,
		Date:          input.Date,
		TimeSlot:      input.TimeSlot,
		DurationHours: input.DurationHours,
		PaymentMethod: input.PaymentMethod,
		PaymentID:     input.PaymentID,
		VehicleType:   input.VehicleType,
		VehicleBrand:  input.VehicleBrand,
		VehicleModel:  input.VehicleModel,
		VehicleNumber: input.VehicleNumber,
	}

	err := s.tx.InTx(ctx, func(tx BookingTx) error {
		if _, err := tx.GetStation(ctx, input.StationID); err != nil {
			return err
		}
		reserved, err := tx.ReserveSlot(ctx, input.StationID)
		if err != nil {
			return err
		}
		if !reserved && !s.allowOverbook {
			return ErrNoSlotsAvailable
		}
		return tx.CreateBooking(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", booking.UserID),
		zap.Int64("station_id", booking.StationID),
	)
	return booking, nil
}

// CancelByUser cancels the caller's own booking and releases its slot. A
// booking already in a terminal state is reported as such rather than
// silently re-cancelled.
func (s *BookingService) CancelByUser(ctx context.Context, bookingID, userID int64) error {
	err := s.tx.InTx(ctx, func(tx BookingTx) error {
		booking, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.UserID != userID {
			return ErrNotBookingOwner
		}
		switch booking.Status {
		case models.BookingStatusCancelled:
			return ErrBookingAlreadyCancelled
		case models.BookingStatusCompleted:
			return ErrBookingCompleted
		}
		return cancelAndRelease(ctx, tx, booking, cancelledByUserMessage)
	})
	if err != nil {
		return err
	}

	s.logger.Info("booking cancelled by user",
		zap.Int64("booking_id", bookingID),
		zap.Int64("user_id", userID),
	)
	return nil
}

// CancelByAdmin cancels any booking with an operator-supplied message.
// Cancelling an already-cancelled booking is a no-op, so the station's slot
// counter is never incremented twice for the same booking.
func (s *BookingService) CancelByAdmin(ctx context.Context, bookingID int64, message string) error {
	if message == "" {
		message = cancelledByAdminMessage
	}

	err := s.tx.InTx(ctx, func(tx BookingTx) error {
		booking, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		switch booking.Status {
		case models.BookingStatusCancelled:
			return nil
		case models.BookingStatusCompleted:
			return ErrBookingCompleted
		}
		return cancelAndRelease(ctx, tx, booking, message)
	})
	if err != nil {
		return err
	}

	s.logger.Info("booking cancelled by admin", zap.Int64("booking_id", bookingID))
	return nil
}

// UpdateStatus applies a station-master or admin driven transition. A
// Cancelled target goes through the same cancellation flow as the dedicated
// paths, so capacity restoration cannot be bypassed. Completed is terminal
// and leaves the slot counter untouched.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID int64, status string) error {
	if err := validateStatus(status); err != nil {
		return err
	}

	err := s.tx.InTx(ctx, func(tx BookingTx) error {
		booking, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		return applyTransition(ctx, tx, booking, status)
	})
	if err != nil {
		return err
	}

	s.logger.Info("booking status updated",
		zap.Int64("booking_id", bookingID),
		zap.String("status", status),
	)
	return nil
}

// UpdateStatusForStationMaster is UpdateStatus gated on the caller owning
// the booking's station.
func (s *BookingService) UpdateStatusForStationMaster(ctx context.Context, bookingID int64, status string, masterID int64) error {
	if err := validateStatus(status); err != nil {
		return err
	}

	err := s.tx.InTx(ctx, func(tx BookingTx) error {
		booking, err := tx.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		station, err := tx.GetStation(ctx, booking.StationID)
		if err != nil {
			return err
		}
		if station.StationMasterID == nil || *station.StationMasterID != masterID {
			return ErrNotStationOwner
		}
		return applyTransition(ctx, tx, booking, status)
	})
	if err != nil {
		return err
	}

	s.logger.Info("booking status updated by station master",
		zap.Int64("booking_id", bookingID),
		zap.String("status", status),
		zap.Int64("station_master_id", masterID),
	)
	return nil
}

// GetBooking returns a single booking.
func (s *BookingService) GetBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	return s.bookings.GetBooking(ctx, bookingID)
}

// GetUserBookings returns the caller's bookings with station names.
func (s *BookingService) GetUserBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.bookings.ListBookingsByUser(ctx, userID)
}

// GetAllBookings returns every booking for admin views.
func (s *BookingService) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.ListAllBookings(ctx)
}

// GetBookingsForStationMaster returns a station's bookings after checking
// the station belongs to the caller.
func (s *BookingService) GetBookingsForStationMaster(ctx context.Context, stationID, masterID int64) ([]models.Booking, error) {
	station, err := s.stations.GetStation(ctx, stationID)
	if err != nil {
		return nil, err
	}
	if station.StationMasterID == nil || *station.StationMasterID != masterID {
		return nil, ErrNotStationOwner
	}
	return s.bookings.ListBookingsByStation(ctx, stationID)
}

func validateStatus(status string) error {
	switch status {
	case models.BookingStatusConfirmed, models.BookingStatusCancelled, models.BookingStatusCompleted:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// applyTransition enforces the lifecycle rules shared by the status-update
// entry points: terminal states stay terminal, and cancellation always
// restores capacity.
func applyTransition(ctx context.Context, tx BookingTx, booking *models.Booking, status string) error {
	switch booking.Status {
	case models.BookingStatusCancelled:
		if status == models.BookingStatusCancelled {
			return nil
		}
		return ErrBookingAlreadyCancelled
	case models.BookingStatusCompleted:
		if status == models.BookingStatusCompleted {
			return nil
		}
		return ErrBookingCompleted
	}

	if status == models.BookingStatusCancelled {
		return cancelAndRelease(ctx, tx, booking, cancelledByMasterMessage)
	}
	return tx.SetBookingStatus(ctx, booking.ID, status)
}

// cancelAndRelease performs the paired write: terminal status plus one slot
// back to the station. A vanished station only skips the counter update;
// the cancellation itself still goes through.
func cancelAndRelease(ctx context.Context, tx BookingTx, booking *models.Booking, message string) error {
	if err := tx.MarkBookingCancelled(ctx, booking.ID, message); err != nil {
		return err
	}
	if _, err := tx.ReleaseSlot(ctx, booking.StationID); err != nil {
		return err
	}
	return nil
}
