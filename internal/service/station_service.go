package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"chargebay/internal/geo"
	"chargebay/internal/models"
)

// StationService covers the station catalog: public reads, proximity
// search, station-master management and the admin approval workflow.
type StationService struct {
	stations StationStore
	logger   *zap.Logger
}

// NewStationService builds service.
func NewStationService(stations StationStore, logger *zap.Logger) *StationService {
	return &StationService{stations: stations, logger: logger}
}

// NearbyStation is a search hit annotated with its distance from the query
// point.
type NearbyStation struct {
	models.Station
	DistanceKm float64 `json:"distance_km"`
}

// Nearby returns approved, operationally available stations within radiusKm
// of the query point, closest first. Equidistant stations with more free
// slots sort first.
func (s *StationService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyStation, error) {
	stations, err := s.stations.ListStationsByStatus(ctx, models.StationStatusAvailable)
	if err != nil {
		return nil, err
	}

	results := make([]NearbyStation, 0, len(stations))
	for _, station := range stations {
		if station.ApprovalStatus != models.ApprovalStatusApproved {
			continue
		}
		distance := geo.Distance(lat, lng, station.Latitude, station.Longitude)
		if distance > radiusKm {
			continue
		}
		results = append(results, NearbyStation{Station: station, DistanceKm: distance})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm != results[j].DistanceKm {
			return results[i].DistanceKm < results[j].DistanceKm
		}
		return results[i].AvailableSlots > results[j].AvailableSlots
	})

	return results, nil
}

// GetApprovedStations returns the public listing.
func (s *StationService) GetApprovedStations(ctx context.Context) ([]models.Station, error) {
	return s.stations.ListStationsByApproval(ctx, models.ApprovalStatusApproved)
}

// GetAllStations returns every station for admin views.
func (s *StationService) GetAllStations(ctx context.Context) ([]models.Station, error) {
	return s.stations.ListStations(ctx)
}

// GetStation returns one station.
func (s *StationService) GetStation(ctx context.Context, id int64) (*models.Station, error) {
	return s.stations.GetStation(ctx, id)
}

// GetStationsByApproval filters on workflow state for admin views.
func (s *StationService) GetStationsByApproval(ctx context.Context, approval string) ([]models.Station, error) {
	return s.stations.ListStationsByApproval(ctx, approval)
}

// GetStationsByMaster lists the caller's own stations.
func (s *StationService) GetStationsByMaster(ctx context.Context, masterID int64) ([]models.Station, error) {
	return s.stations.ListStationsByMaster(ctx, masterID)
}

// CreateStation inserts a station as an admin, pre-approved fields allowed.
func (s *StationService) CreateStation(ctx context.Context, station *models.Station) error {
	applyStationDefaults(station)
	if err := s.stations.CreateStation(ctx, station); err != nil {
		return err
	}
	s.logger.Info("station created", zap.Int64("station_id", station.ID), zap.String("name", station.Name))
	return nil
}

// CreateStationForMaster inserts a station owned by the caller. Listings
// start in the Pending approval state regardless of the submitted payload.
func (s *StationService) CreateStationForMaster(ctx context.Context, station *models.Station, masterID int64) error {
	station.StationMasterID = &masterID
	station.ApprovalStatus = models.ApprovalStatusPending
	applyStationDefaults(station)
	if err := s.stations.CreateStation(ctx, station); err != nil {
		return err
	}
	s.logger.Info("station submitted for approval",
		zap.Int64("station_id", station.ID),
		zap.Int64("station_master_id", masterID),
	)
	return nil
}

// UpdateStation replaces a station's editable fields as an admin.
func (s *StationService) UpdateStation(ctx context.Context, station *models.Station) error {
	existing, err := s.stations.GetStation(ctx, station.ID)
	if err != nil {
		return err
	}
	station.StationMasterID = existing.StationMasterID
	applyStationDefaults(station)
	return s.stations.UpdateStation(ctx, station)
}

// UpdateStationForMaster lets an owner edit their listing. Any edit drops
// the station back to Pending so it goes through approval again.
func (s *StationService) UpdateStationForMaster(ctx context.Context, station *models.Station, masterID int64) error {
	existing, err := s.stations.GetStation(ctx, station.ID)
	if err != nil {
		return err
	}
	if existing.StationMasterID == nil || *existing.StationMasterID != masterID {
		return ErrNotStationOwner
	}
	station.StationMasterID = existing.StationMasterID
	station.ApprovalStatus = models.ApprovalStatusPending
	applyStationDefaults(station)
	if err := s.stations.UpdateStation(ctx, station); err != nil {
		return err
	}
	s.logger.Info("station edited, approval reset",
		zap.Int64("station_id", station.ID),
		zap.Int64("station_master_id", masterID),
	)
	return nil
}

// SetStatusForMaster flips the operational status of an owned station.
func (s *StationService) SetStatusForMaster(ctx context.Context, stationID int64, status string, masterID int64) error {
	existing, err := s.stations.GetStation(ctx, stationID)
	if err != nil {
		return err
	}
	if existing.StationMasterID == nil || *existing.StationMasterID != masterID {
		return ErrNotStationOwner
	}
	return s.stations.SetStationStatus(ctx, stationID, status)
}

// SetApproval moves a station through the approval workflow (admin only).
func (s *StationService) SetApproval(ctx context.Context, stationID int64, approval string) error {
	if err := s.stations.SetStationApproval(ctx, stationID, approval); err != nil {
		return err
	}
	s.logger.Info("station approval updated",
		zap.Int64("station_id", stationID),
		zap.String("approval_status", approval),
	)
	return nil
}

// DeleteStation removes a station (admin only).
func (s *StationService) DeleteStation(ctx context.Context, id int64) error {
	return s.stations.DeleteStation(ctx, id)
}

func applyStationDefaults(station *models.Station) {
	if station.Status == "" {
		station.Status = models.StationStatusAvailable
	}
	if station.ApprovalStatus == "" {
		station.ApprovalStatus = models.ApprovalStatusPending
	}
	if station.AvailableSlots > station.TotalSlots {
		station.AvailableSlots = station.TotalSlots
	}
	if station.AvailableSlots < 0 {
		station.AvailableSlots = 0
	}
}
