package models

import "time"

// Operational statuses a station master may set.
const (
	StationStatusAvailable   = "Available"
	StationStatusUnavailable = "Unavailable"
)

// Approval workflow states. Only approved stations show up in public search.
const (
	ApprovalStatusPending  = "Pending"
	ApprovalStatusApproved = "Approved"
	ApprovalStatusRejected = "Rejected"
)

// Station is a charging location listed on the marketplace.
// AvailableSlots counts unreserved charging units and always stays within
// [0, TotalSlots]; it is adjusted in lockstep with booking creation and
// cancellation.
type Station struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Address         string    `json:"address"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	ConnectorTypes  []string  `json:"connector_types"`
	PowerOutput     string    `json:"power_output"`
	PricePerKwh     float64   `json:"price_per_kwh"`
	Amenities       []string  `json:"amenities"`
	OperatingHours  string    `json:"operating_hours"`
	Status          string    `json:"status"`
	ApprovalStatus  string    `json:"approval_status"`
	TotalSlots      int       `json:"total_slots"`
	AvailableSlots  int       `json:"available_slots"`
	StationMasterID *int64    `json:"station_master_id,omitempty"`
	OwnerName       string    `json:"owner_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
