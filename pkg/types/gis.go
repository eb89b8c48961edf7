package types

import "github.com/shopspring/decimal"

// MapPoint is a coordinate-bearing housing record projected for map display.
type MapPoint struct {
	ID                 string             `db:"id" json:"id"`
	HeadOfHousehold    string             `db:"head_of_household" json:"head_of_household"`
	HousingStatus      HousingStatus      `db:"housing_status" json:"housing_status"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	DistrictID         string             `db:"district_id" json:"district_id"`
	VillageID          string             `db:"village_id" json:"village_id"`
	Latitude           decimal.Decimal    `db:"latitude" json:"latitude"`
	Longitude          decimal.Decimal    `db:"longitude" json:"longitude"`
}

// MapFilter narrows map data with AND semantics; empty fields are ignored.
type MapFilter struct {
	DistrictID    string        `form:"district_id"`
	VillageID     string        `form:"village_id"`
	HousingStatus HousingStatus `form:"housing_status"`
}

// HeatmapCell is one occupied ~100m grid cell: coordinates rounded to three
// decimal places, intensity the number of records in the cell.
type HeatmapCell struct {
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
	Intensity int             `json:"intensity"`
}

// Boundary is a closed polygon for a district or village. The built-in
// provider returns synthetic placeholder geometry.
type Boundary struct {
	LocationID   string       `json:"location_id"`
	LocationName string       `json:"location_name"`
	Coordinates  [][2]float64 `json:"coordinates"`
}
