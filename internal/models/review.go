package models

import "time"

// Review is a user rating of a station.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	StationID int64     `json:"station_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	UserName    string `json:"user_name,omitempty"`
	StationName string `json:"station_name,omitempty"`
}
