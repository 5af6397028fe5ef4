package db

import (
	"context"
	"database/sql"
	"fmt"
)

type seedModel struct {
	name    string
	rangeKm int
}

type seedBrand struct {
	name        string
	vehicleType string
	models      []seedModel
}

// vehicleCatalog is the brand/model reference data loaded on first start.
// Signup and booking forms are useless without it, and there is no ingest
// endpoint for catalog data.
var vehicleCatalog = []seedBrand{
	{"Tata", "Car", []seedModel{{"Nexon EV", 325}, {"Tigor EV", 315}, {"Tiago EV", 275}}},
	{"Mahindra", "Car", []seedModel{{"XUV400", 375}, {"eVerito", 180}}},
	{"MG", "Car", []seedModel{{"ZS EV", 400}, {"Comet EV", 230}}},
	{"Hyundai", "Car", []seedModel{{"Kona Electric", 450}, {"Ioniq 5", 480}}},
	{"Kia", "Car", []seedModel{{"EV6", 500}}},
	{"BYD", "Car", []seedModel{{"Atto 3", 420}}},
	{"Ather", "Bike", []seedModel{{"450X", 150}, {"450 Plus", 145}}},
	{"Ola Electric", "Bike", []seedModel{{"S1 Pro", 180}, {"S1 Air", 125}}},
	{"TVS", "Bike", []seedModel{{"iQube", 145}}},
	{"Bajaj", "Bike", []seedModel{{"Chetak", 125}}},
	{"Hero Electric", "Bike", []seedModel{{"Photon", 110}, {"Optima", 95}}},
}

// SeedVehicleCatalog inserts the vehicle catalog when the brand table is
// empty. A populated table is left untouched, so the seed never fights
// operator edits.
func SeedVehicleCatalog(ctx context.Context, pool *sql.DB) error {
	var count int
	if err := pool.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicle_brands`).Scan(&count); err != nil {
		return fmt.Errorf("db: count vehicle brands: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db: begin seed tx: %w", err)
	}
	defer tx.Rollback()

	for _, brand := range vehicleCatalog {
		var brandID int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO vehicle_brands (name, type) VALUES ($1, $2) RETURNING id`,
			brand.name, brand.vehicleType,
		).Scan(&brandID)
		if err != nil {
			return fmt.Errorf("db: seed brand %s: %w", brand.name, err)
		}

		for _, model := range brand.models {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO vehicle_models (brand_id, name, range_km) VALUES ($1, $2, $3)`,
				brandID, model.name, model.rangeKm,
			)
			if err != nil {
				return fmt.Errorf("db: seed model %s: %w", model.name, err)
			}
		}
	}

	return tx.Commit()
}
