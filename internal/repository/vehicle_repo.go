package repository

import (
	"context"

	"chargebay/internal/models"
)

// VehicleRepository serves the read-mostly vehicle catalog.
type VehicleRepository struct {
	db DBTX
}

// NewVehicleRepository returns repository.
func NewVehicleRepository(db DBTX) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// ListBrands returns every catalog brand.
func (r *VehicleRepository) ListBrands(ctx context.Context) ([]models.VehicleBrand, error) {
	const query = `SELECT id, name, type FROM vehicle_brands ORDER BY name`
	return r.queryBrands(ctx, query)
}

// ListBrandsByType filters brands by vehicle type, case-insensitively.
func (r *VehicleRepository) ListBrandsByType(ctx context.Context, vehicleType string) ([]models.VehicleBrand, error) {
	const query = `SELECT id, name, type FROM vehicle_brands WHERE LOWER(type) = LOWER($1) ORDER BY name`
	return r.queryBrands(ctx, query, vehicleType)
}

// ListModelsByBrand returns the models of one brand.
func (r *VehicleRepository) ListModelsByBrand(ctx context.Context, brandID int64) ([]models.VehicleModel, error) {
	const query = `SELECT id, brand_id, name, range_km FROM vehicle_models WHERE brand_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicleModels []models.VehicleModel
	for rows.Next() {
		var m models.VehicleModel
		if err := rows.Scan(&m.ID, &m.BrandID, &m.Name, &m.RangeKm); err != nil {
			return nil, err
		}
		vehicleModels = append(vehicleModels, m)
	}
	return vehicleModels, rows.Err()
}

func (r *VehicleRepository) queryBrands(ctx context.Context, query string, args ...any) ([]models.VehicleBrand, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []models.VehicleBrand
	for rows.Next() {
		var b models.VehicleBrand
		if err := rows.Scan(&b.ID, &b.Name, &b.Type); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}
