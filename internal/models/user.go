package models

import "time"

// User roles.
const (
	RoleUser          = "User"
	RoleAdmin         = "Admin"
	RoleStationMaster = "StationMaster"
)

// User is an account on the marketplace. The vehicle fields describe the
// user's current vehicle and seed the snapshot taken when a booking is made.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	PasswordHash  string    `json:"-"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	VehicleNumber string    `json:"vehicle_number,omitempty"`
	VehicleType   string    `json:"vehicle_type,omitempty"`
	VehicleBrand  string    `json:"vehicle_brand,omitempty"`
	VehicleModel  string    `json:"vehicle_model,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
