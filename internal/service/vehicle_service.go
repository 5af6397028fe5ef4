package service

import (
	"context"

	"chargebay/internal/models"
)

// VehicleService serves the read-only vehicle catalog used by signup and
// booking forms.
type VehicleService struct {
	vehicles VehicleStore
}

// NewVehicleService builds service.
func NewVehicleService(vehicles VehicleStore) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

// GetBrands returns every brand.
func (s *VehicleService) GetBrands(ctx context.Context) ([]models.VehicleBrand, error) {
	return s.vehicles.ListBrands(ctx)
}

// GetBrandsByType filters brands by vehicle type.
func (s *VehicleService) GetBrandsByType(ctx context.Context, vehicleType string) ([]models.VehicleBrand, error) {
	return s.vehicles.ListBrandsByType(ctx, vehicleType)
}

// GetModelsByBrand returns the models of one brand.
func (s *VehicleService) GetModelsByBrand(ctx context.Context, brandID int64) ([]models.VehicleModel, error) {
	return s.vehicles.ListModelsByBrand(ctx, brandID)
}
