package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"chargebay/internal/models"
	"chargebay/internal/repository"
)

// fakeStore is an in-memory stand-in for the repository store. InTx
// emulates transaction rollback by restoring a snapshot when fn fails.
type fakeStore struct {
	stations map[int64]*models.Station
	bookings map[int64]*models.Booking
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stations: make(map[int64]*models.Station),
		bookings: make(map[int64]*models.Booking),
	}
}

func (f *fakeStore) addStation(id int64, total, available int, masterID *int64) *models.Station {
	station := &models.Station{
		ID:              id,
		Name:            "station",
		Status:          models.StationStatusAvailable,
		ApprovalStatus:  models.ApprovalStatusApproved,
		TotalSlots:      total,
		AvailableSlots:  available,
		StationMasterID: masterID,
	}
	f.stations[id] = station
	return station
}

func (f *fakeStore) addBooking(id, userID, stationID int64, status string) *models.Booking {
	booking := &models.Booking{
		ID:        id,
		UserID:    userID,
		StationID: stationID,
		Status:    status,
	}
	f.bookings[id] = booking
	if id >= f.nextID {
		f.nextID = id
	}
	return booking
}

func (f *fakeStore) InTx(_ context.Context, fn func(tx BookingTx) error) error {
	snapStations := make(map[int64]*models.Station, len(f.stations))
	for id, s := range f.stations {
		cp := *s
		snapStations[id] = &cp
	}
	snapBookings := make(map[int64]*models.Booking, len(f.bookings))
	for id, b := range f.bookings {
		cp := *b
		snapBookings[id] = &cp
	}

	if err := fn(f); err != nil {
		f.stations = snapStations
		f.bookings = snapBookings
		return err
	}
	return nil
}

func (f *fakeStore) CreateBooking(_ context.Context, booking *models.Booking) error {
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeStore) GetBooking(_ context.Context, id int64) (*models.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeStore) SetBookingStatus(_ context.Context, id int64, status string) error {
	booking, ok := f.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func (f *fakeStore) MarkBookingCancelled(_ context.Context, id int64, message string) error {
	booking, ok := f.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	booking.Status = models.BookingStatusCancelled
	booking.CancellationMessage = message
	return nil
}

func (f *fakeStore) GetStation(_ context.Context, id int64) (*models.Station, error) {
	station, ok := f.stations[id]
	if !ok {
		return nil, repository.ErrStationNotFound
	}
	cp := *station
	return &cp, nil
}

func (f *fakeStore) ReserveSlot(_ context.Context, stationID int64) (bool, error) {
	station, ok := f.stations[stationID]
	if !ok || station.AvailableSlots <= 0 {
		return false, nil
	}
	station.AvailableSlots--
	return true, nil
}

func (f *fakeStore) ReleaseSlot(_ context.Context, stationID int64) (bool, error) {
	station, ok := f.stations[stationID]
	if !ok || station.AvailableSlots >= station.TotalSlots {
		return false, nil
	}
	station.AvailableSlots++
	return true, nil
}

func (f *fakeStore) ListBookingsByUser(_ context.Context, userID int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAllBookings(_ context.Context) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeStore) ListBookingsByStation(_ context.Context, stationID int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.StationID == stationID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// Remaining StationStore methods, unused by the booking lifecycle.
func (f *fakeStore) CreateStation(_ context.Context, _ *models.Station) error { return nil }
func (f *fakeStore) UpdateStation(_ context.Context, _ *models.Station) error { return nil }
func (f *fakeStore) DeleteStation(_ context.Context, _ int64) error           { return nil }
func (f *fakeStore) ListStations(_ context.Context) ([]models.Station, error) { return nil, nil }
func (f *fakeStore) ListStationsByStatus(_ context.Context, _ string) ([]models.Station, error) {
	return nil, nil
}
func (f *fakeStore) ListStationsByApproval(_ context.Context, _ string) ([]models.Station, error) {
	return nil, nil
}
func (f *fakeStore) ListStationsByMaster(_ context.Context, _ int64) ([]models.Station, error) {
	return nil, nil
}
func (f *fakeStore) SetStationStatus(_ context.Context, _ int64, _ string) error   { return nil }
func (f *fakeStore) SetStationApproval(_ context.Context, _ int64, _ string) error { return nil }

func newBookingService(store *fakeStore, allowOverbook bool) *BookingService {
	return NewBookingService(store, store, store, allowOverbook, zap.NewNop())
}

func TestCreateBookingReservesSlot(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 3, 2, nil)
	svc := newBookingService(store, false)

	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		UserID:    10,
		StationID: 1,
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Hour),
		Amount:    250,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.ID == 0 {
		t.Error("booking id not assigned")
	}
	if booking.Status != models.BookingStatusConfirmed {
		t.Errorf("status = %q, want Confirmed", booking.Status)
	}
	if booking.PaymentMethod != "Card" {
		t.Errorf("payment method = %q, want default Card", booking.PaymentMethod)
	}
	if booking.DurationHours != 1 {
		t.Errorf("duration = %d, want default 1", booking.DurationHours)
	}
	if got := store.stations[1].AvailableSlots; got != 1 {
		t.Errorf("available slots = %d, want 1", got)
	}
}

func TestCreateBookingStationMissing(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store, false)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{UserID: 10, StationID: 99})
	if !errors.Is(err, repository.ErrStationNotFound) {
		t.Fatalf("err = %v, want ErrStationNotFound", err)
	}
	if len(store.bookings) != 0 {
		t.Errorf("booking persisted despite missing station")
	}
}

func TestCreateBookingRejectsWhenFull(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 2, 0, nil)
	svc := newBookingService(store, false)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{UserID: 10, StationID: 1})
	if !errors.Is(err, ErrNoSlotsAvailable) {
		t.Fatalf("err = %v, want ErrNoSlotsAvailable", err)
	}
	if len(store.bookings) != 0 {
		t.Errorf("booking persisted despite full station")
	}
}

func TestCreateBookingOverbookMode(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 2, 0, nil)
	svc := newBookingService(store, true)

	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{UserID: 10, StationID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.ID == 0 {
		t.Error("booking id not assigned")
	}
	if got := store.stations[1].AvailableSlots; got != 0 {
		t.Errorf("available slots = %d, want 0 (decrement skipped)", got)
	}
}

func TestCancelByUserReleasesSlot(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 3, 1, nil)
	store.addBooking(5, 10, 1, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	if err := svc.CancelByUser(context.Background(), 5, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.bookings[5].Status; got != models.BookingStatusCancelled {
		t.Errorf("status = %q, want Cancelled", got)
	}
	if got := store.bookings[5].CancellationMessage; got != "Cancelled by user" {
		t.Errorf("message = %q", got)
	}
	if got := store.stations[1].AvailableSlots; got != 2 {
		t.Errorf("available slots = %d, want 2", got)
	}
}

func TestCancelByUserWrongOwner(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 3, 1, nil)
	store.addBooking(5, 10, 1, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	err := svc.CancelByUser(context.Background(), 5, 11)
	if !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("err = %v, want ErrNotBookingOwner", err)
	}
	if got := store.bookings[5].Status; got != models.BookingStatusConfirmed {
		t.Errorf("status changed to %q on unauthorized cancel", got)
	}
	if got := store.stations[1].AvailableSlots; got != 1 {
		t.Errorf("available slots = %d, want 1 (unchanged)", got)
	}
}

func TestCancelByUserAlreadyCancelled(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 3, 2, nil)
	store.addBooking(5, 10, 1, models.BookingStatusCancelled)
	svc := newBookingService(store, false)

	err := svc.CancelByUser(context.Background(), 5, 10)
	if !errors.Is(err, ErrBookingAlreadyCancelled) {
		t.Fatalf("err = %v, want ErrBookingAlreadyCancelled", err)
	}
	if got := store.stations[1].AvailableSlots; got != 2 {
		t.Errorf("available slots = %d, want 2 (no double increment)", got)
	}
}

func TestCancelByUserMissingBooking(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store, false)

	err := svc.CancelByUser(context.Background(), 404, 10)
	if !errors.Is(err, repository.ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestCancelByAdminIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 3, 1, nil)
	store.addBooking(5, 10, 1, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	if err := svc.CancelByAdmin(context.Background(), 5, "station closed"); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	if got := store.bookings[5].CancellationMessage; got != "station closed" {
		t.Errorf("message = %q, want operator message", got)
	}
	if got := store.stations[1].AvailableSlots; got != 2 {
		t.Fatalf("available slots = %d, want 2", got)
	}

	if err := svc.CancelByAdmin(context.Background(), 5, "again"); err != nil {
		t.Fatalf("second cancel should be a no-op, got %v", err)
	}
	if got := store.stations[1].AvailableSlots; got != 2 {
		t.Errorf("available slots = %d after re-cancel, want 2", got)
	}
}

func TestCancelReleasesNothingBeyondTotal(t *testing.T) {
	// Station already at full capacity: the release is capped.
	store := newFakeStore()
	store.addStation(1, 3, 3, nil)
	store.addBooking(5, 10, 1, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	if err := svc.CancelByUser(context.Background(), 5, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.stations[1].AvailableSlots; got != 3 {
		t.Errorf("available slots = %d, want capped at 3", got)
	}
}

func TestStationDeletionKeepsBookingHistory(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 3, 2, nil)
	store.addBooking(5, 10, 1, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	// The station row disappears; its booking history must not.
	delete(store.stations, 1)

	bookings, err := svc.GetUserBookings(context.Background(), 10)
	if err != nil {
		t.Fatalf("list after deletion: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(bookings))
	}

	if err := svc.CancelByUser(context.Background(), 5, 10); err != nil {
		t.Fatalf("cancel after deletion: %v", err)
	}
	if got := store.bookings[5].Status; got != models.BookingStatusCancelled {
		t.Errorf("status = %q, want Cancelled", got)
	}
}

func TestCancelSurvivesMissingStation(t *testing.T) {
	store := newFakeStore()
	store.addBooking(5, 10, 77, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	if err := svc.CancelByUser(context.Background(), 5, 10); err != nil {
		t.Fatalf("cancel should succeed when station is gone, got %v", err)
	}
	if got := store.bookings[5].Status; got != models.BookingStatusCancelled {
		t.Errorf("status = %q, want Cancelled", got)
	}
}

func TestUpdateStatusComplete(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 3, 1, nil)
	store.addBooking(5, 10, 1, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	if err := svc.UpdateStatus(context.Background(), 5, models.BookingStatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.bookings[5].Status; got != models.BookingStatusCompleted {
		t.Errorf("status = %q, want Completed", got)
	}
	// Completion is not a cancellation: no capacity change.
	if got := store.stations[1].AvailableSlots; got != 1 {
		t.Errorf("available slots = %d, want 1", got)
	}
}

func TestUpdateStatusCancelRestoresCapacity(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 3, 1, nil)
	store.addBooking(5, 10, 1, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	if err := svc.UpdateStatus(context.Background(), 5, models.BookingStatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.stations[1].AvailableSlots; got != 2 {
		t.Errorf("available slots = %d, want 2 (restored via unified path)", got)
	}
	if got := store.bookings[5].CancellationMessage; got != "Cancelled by station master" {
		t.Errorf("message = %q", got)
	}
}

func TestUpdateStatusOutOfTerminalState(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 3, 1, nil)
	store.addBooking(5, 10, 1, models.BookingStatusCompleted)
	svc := newBookingService(store, false)

	err := svc.UpdateStatus(context.Background(), 5, models.BookingStatusConfirmed)
	if !errors.Is(err, ErrBookingCompleted) {
		t.Fatalf("err = %v, want ErrBookingCompleted", err)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	store := newFakeStore()
	svc := newBookingService(store, false)

	err := svc.UpdateStatus(context.Background(), 5, "Parked")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateStatusForStationMasterOwnership(t *testing.T) {
	master := int64(42)
	store := newFakeStore()
	store.addStation(1, 3, 1, &master)
	store.addBooking(5, 10, 1, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	err := svc.UpdateStatusForStationMaster(context.Background(), 5, models.BookingStatusCompleted, 43)
	if !errors.Is(err, ErrNotStationOwner) {
		t.Fatalf("err = %v, want ErrNotStationOwner", err)
	}

	if err := svc.UpdateStatusForStationMaster(context.Background(), 5, models.BookingStatusCompleted, master); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if got := store.bookings[5].Status; got != models.BookingStatusCompleted {
		t.Errorf("status = %q, want Completed", got)
	}
}

func TestGetBookingsForStationMasterOwnership(t *testing.T) {
	master := int64(42)
	store := newFakeStore()
	store.addStation(1, 3, 1, &master)
	store.addBooking(5, 10, 1, models.BookingStatusConfirmed)
	svc := newBookingService(store, false)

	if _, err := svc.GetBookingsForStationMaster(context.Background(), 1, 43); !errors.Is(err, ErrNotStationOwner) {
		t.Fatalf("err = %v, want ErrNotStationOwner", err)
	}

	bookings, err := svc.GetBookingsForStationMaster(context.Background(), 1, master)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 1 {
		t.Errorf("got %d bookings, want 1", len(bookings))
	}
}

func TestCreateThenCancelRoundTrip(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 4, 4, nil)
	svc := newBookingService(store, false)

	booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{UserID: 10, StationID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := store.stations[1].AvailableSlots; got != 3 {
		t.Fatalf("available slots = %d after create, want 3", got)
	}

	if err := svc.CancelByUser(context.Background(), booking.ID, 10); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := store.stations[1].AvailableSlots; got != 4 {
		t.Errorf("available slots = %d after round trip, want 4", got)
	}
}

func TestSlotCounterStaysInBounds(t *testing.T) {
	store := newFakeStore()
	store.addStation(1, 2, 2, nil)
	svc := newBookingService(store, false)

	var created []int64
	for i := 0; i < 2; i++ {
		booking, err := svc.CreateBooking(context.Background(), CreateBookingInput{UserID: 10, StationID: 1})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		created = append(created, booking.ID)
	}
	if _, err := svc.CreateBooking(context.Background(), CreateBookingInput{UserID: 10, StationID: 1}); !errors.Is(err, ErrNoSlotsAvailable) {
		t.Fatalf("third create err = %v, want ErrNoSlotsAvailable", err)
	}
	if got := store.stations[1].AvailableSlots; got != 0 {
		t.Fatalf("available slots = %d, want 0", got)
	}

	for _, id := range created {
		if err := svc.CancelByUser(context.Background(), id, 10); err != nil {
			t.Fatalf("cancel %d: %v", id, err)
		}
	}
	if got := store.stations[1].AvailableSlots; got != 2 {
		t.Errorf("available slots = %d, want back at 2", got)
	}
}
