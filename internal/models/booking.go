package models

import "time"

// Booking lifecycle states. Cancelled and Completed are terminal.
const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
	BookingStatusCompleted = "Completed"
)

// Booking reserves one charging slot at a station for a time window.
// The vehicle fields are a snapshot taken at booking time and do not track
// later edits to the user's profile.
type Booking struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	StationID           int64     `json:"station_id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Status              string    `json:"status"`
	Amount              float64   `json:"amount"`
	Date                string    `json:"date"`
	TimeSlot            string    `json:"time_slot"`
	DurationHours       int       `json:"duration_hours"`
	PaymentMethod       string    `json:"payment_method"`
	PaymentID           string    `json:"payment_id"`
	VehicleType         string    `json:"vehicle_type"`
	VehicleBrand        string    `json:"vehicle_brand"`
	VehicleModel        string    `json:"vehicle_model"`
	VehicleNumber       string    `json:"vehicle_number"`
	CancellationMessage string    `json:"cancellation_message,omitempty"`
	CreatedAt           time.Time `json:"created_at"`

	// Display fields filled by joined list queries.
	StationName string `json:"station_name,omitempty"`
	UserName    string `json:"user_name,omitempty"`
}
