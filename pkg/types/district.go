package types

import "time"

// District is the root of the geographic hierarchy.
type District struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Village belongs to exactly one district. Village codes are unique only
// within their district.
type Village struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Code       string    `db:"code" json:"code"`
	DistrictID string    `db:"district_id" json:"district_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type CreateDistrictInput struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

type CreateVillageInput struct {
	Name       string `json:"name" validate:"required"`
	Code       string `json:"code" validate:"required"`
	DistrictID string `json:"district_id" validate:"required"`
}
