package types

import "time"

type BacklogType string

const (
	BacklogNoHouse            BacklogType = "NO_HOUSE"
	BacklogUninhabitableHouse BacklogType = "UNINHABITABLE_HOUSE"
)

func (t BacklogType) Valid() bool {
	return t == BacklogNoHouse || t == BacklogUninhabitableHouse
}

// Backlog counts families lacking adequate housing for one
// (district, village, type, year, month) tuple. The tuple is unique.
type Backlog struct {
	ID          string      `db:"id" json:"id"`
	DistrictID  string      `db:"district_id" json:"district_id"`
	VillageID   string      `db:"village_id" json:"village_id"`
	BacklogType BacklogType `db:"backlog_type" json:"backlog_type"`
	FamilyCount int         `db:"family_count" json:"family_count"`
	Year        int         `db:"year" json:"year"`
	Month       int         `db:"month" json:"month"`
	CreatedBy   string      `db:"created_by" json:"created_by"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

type CreateBacklogInput struct {
	DistrictID  string      `json:"district_id" validate:"required"`
	VillageID   string      `json:"village_id" validate:"required"`
	BacklogType BacklogType `json:"backlog_type" validate:"required"`
	FamilyCount int         `json:"family_count" validate:"gte=0"`
	Year        int         `json:"year" validate:"required,gte=2000"`
	Month       int         `json:"month" validate:"required,gte=1,lte=12"`
}

// Period is a (year, month) pair. Periods compare lexicographically; there
// is no day component.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Before reports whether p precedes q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

// Within reports whether p lies in [from, to], inclusive on both ends.
func (p Period) Within(from, to Period) bool {
	return !p.Before(from) && !to.Before(p)
}
