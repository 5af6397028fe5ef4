package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"chargebay/internal/models"
)

// ErrStationNotFound indicates a missing station id.
var ErrStationNotFound = errors.New("station not found")

// StationRepository handles persistence of charging stations.
type StationRepository struct {
	db DBTX
}

// NewStationRepository returns repository.
func NewStationRepository(db DBTX) *StationRepository {
	return &StationRepository{db: db}
}

const stationColumns = `s.id, s.name, s.address, s.latitude, s.longitude,
	s.connector_types, s.power_output, s.price_per_kwh, s.amenities,
	s.operating_hours, s.status, s.approval_status, s.total_slots,
	s.available_slots, s.station_master_id, COALESCE(u.name, ''),
	s.created_at, s.updated_at`

const stationFrom = ` FROM stations s LEFT JOIN users u ON u.id = s.station_master_id `

// CreateStation inserts a station and fills in generated fields.
func (r *StationRepository) CreateStation(ctx context.Context, station *models.Station) error {
	const query = `
		INSERT INTO stations (name, address, latitude, longitude, connector_types,
			power_output, price_per_kwh, amenities, operating_hours, status,
			approval_status, total_slots, available_slots, station_master_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		station.Name,
		station.Address,
		station.Latitude,
		station.Longitude,
		marshalStringList(station.ConnectorTypes),
		station.PowerOutput,
		station.PricePerKwh,
		marshalStringList(station.Amenities),
		station.OperatingHours,
		station.Status,
		station.ApprovalStatus,
		station.TotalSlots,
		station.AvailableSlots,
		station.StationMasterID,
	).Scan(&station.ID, &station.CreatedAt, &station.UpdatedAt)
}

// GetStation returns the station by id with its owner's display name.
func (r *StationRepository) GetStation(ctx context.Context, id int64) (*models.Station, error) {
	const query = `SELECT ` + stationColumns + stationFrom + `WHERE s.id = $1`
	station, err := scanStation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStationNotFound
	}
	return station, err
}

// UpdateStation persists the editable fields of a station, slot counters
// included. Slot counters mutated by the booking lifecycle go through
// ReserveSlot/ReleaseSlot instead.
func (r *StationRepository) UpdateStation(ctx context.Context, station *models.Station) error {
	const query = `
		UPDATE stations
		SET name = $2, address = $3, latitude = $4, longitude = $5,
		    connector_types = $6, power_output = $7, price_per_kwh = $8,
		    amenities = $9, operating_hours = $10, status = $11,
		    approval_status = $12, total_slots = $13, available_slots = $14,
		    updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		station.ID,
		station.Name,
		station.Address,
		station.Latitude,
		station.Longitude,
		marshalStringList(station.ConnectorTypes),
		station.PowerOutput,
		station.PricePerKwh,
		marshalStringList(station.Amenities),
		station.OperatingHours,
		station.Status,
		station.ApprovalStatus,
		station.TotalSlots,
		station.AvailableSlots,
	)
	if err != nil {
		return err
	}
	return requireRow(result, ErrStationNotFound)
}

// DeleteStation removes a station.
func (r *StationRepository) DeleteStation(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrStationNotFound)
}

// ListStations returns every station.
func (r *StationRepository) ListStations(ctx context.Context) ([]models.Station, error) {
	const query = `SELECT ` + stationColumns + stationFrom + `ORDER BY s.id`
	return r.queryStations(ctx, query)
}

// ListStationsByStatus filters on operational status.
func (r *StationRepository) ListStationsByStatus(ctx context.Context, status string) ([]models.Station, error) {
	const query = `SELECT ` + stationColumns + stationFrom + `WHERE s.status = $1 ORDER BY s.id`
	return r.queryStations(ctx, query, status)
}

// ListStationsByApproval filters on approval workflow state.
func (r *StationRepository) ListStationsByApproval(ctx context.Context, approval string) ([]models.Station, error) {
	const query = `SELECT ` + stationColumns + stationFrom + `WHERE s.approval_status = $1 ORDER BY s.id`
	return r.queryStations(ctx, query, approval)
}

// ListStationsByMaster returns the stations owned by a station master.
func (r *StationRepository) ListStationsByMaster(ctx context.Context, masterID int64) ([]models.Station, error) {
	const query = `SELECT ` + stationColumns + stationFrom + `WHERE s.station_master_id = $1 ORDER BY s.id`
	return r.queryStations(ctx, query, masterID)
}

// SetStationStatus updates only the operational status.
func (r *StationRepository) SetStationStatus(ctx context.Context, id int64, status string) error {
	const query = `UPDATE stations SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	return requireRow(result, ErrStationNotFound)
}

// SetStationApproval updates only the approval workflow state.
func (r *StationRepository) SetStationApproval(ctx context.Context, id int64, approval string) error {
	const query = `UPDATE stations SET approval_status = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, approval)
	if err != nil {
		return err
	}
	return requireRow(result, ErrStationNotFound)
}

// ReserveSlot atomically takes one free slot. It reports false when the
// station has no free slots left; the guard in the WHERE clause keeps the
// counter from ever going negative under concurrent requests.
func (r *StationRepository) ReserveSlot(ctx context.Context, stationID int64) (bool, error) {
	const query = `
		UPDATE stations
		SET available_slots = available_slots - 1, updated_at = NOW()
		WHERE id = $1 AND available_slots > 0
	`
	result, err := r.db.ExecContext(ctx, query, stationID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ReleaseSlot atomically returns one slot, capped at total_slots. It reports
// false when nothing changed (station gone, or counter already at total).
func (r *StationRepository) ReleaseSlot(ctx context.Context, stationID int64) (bool, error) {
	const query = `
		UPDATE stations
		SET available_slots = available_slots + 1, updated_at = NOW()
		WHERE id = $1 AND available_slots < total_slots
	`
	result, err := r.db.ExecContext(ctx, query, stationID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *StationRepository) queryStations(ctx context.Context, query string, args ...any) ([]models.Station, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, *station)
	}
	return stations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner) (*models.Station, error) {
	var (
		s          models.Station
		connectors string
		amenities  string
	)
	err := row.Scan(
		&s.ID, &s.Name, &s.Address, &s.Latitude, &s.Longitude,
		&connectors, &s.PowerOutput, &s.PricePerKwh, &amenities,
		&s.OperatingHours, &s.Status, &s.ApprovalStatus, &s.TotalSlots,
		&s.AvailableSlots, &s.StationMasterID, &s.OwnerName,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.ConnectorTypes = parseStringList(connectors)
	s.Amenities = parseStringList(amenities)
	return &s, nil
}

// parseStringList decodes a JSON string array column. Malformed stored data
// is display-only, so it degrades to an empty list instead of failing the
// whole read.
func parseStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

func marshalStringList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(data)
}
