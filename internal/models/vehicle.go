package models

// VehicleBrand is a catalog entry grouping models by manufacturer.
type VehicleBrand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// VehicleModel belongs to a brand.
type VehicleModel struct {
	ID      int64  `json:"id"`
	BrandID int64  `json:"brand_id"`
	Name    string `json:"name"`
	RangeKm int    `json:"range_km"`
}
