package types

type DashboardStats struct {
	TotalHouses         int64 `json:"total_houses"`
	RTLHCount           int64 `json:"rtlh_count"`
	RLHCount            int64 `json:"rlh_count"`
	PendingVerification int64 `json:"pending_verification"`
	DistrictsCount      int64 `json:"districts_count"`
	VillagesCount       int64 `json:"villages_count"`
}

// LocationStats is one row of the per-district or per-village rollup.
// Locations without any housing record still appear with zero counts.
type LocationStats struct {
	LocationID    string `db:"location_id" json:"location_id"`
	LocationName  string `db:"location_name" json:"location_name"`
	TotalHouses   int64  `db:"total_houses" json:"total_houses"`
	RTLHCount     int64  `db:"rtlh_count" json:"rtlh_count"`
	RLHCount      int64  `db:"rlh_count" json:"rlh_count"`
	VerifiedCount int64  `db:"verified_count" json:"verified_count"`
}

type VerificationStats struct {
	Pending  int64 `json:"pending"`
	Verified int64 `json:"verified"`
	Rejected int64 `json:"rejected"`
}

// EligibilitySlice is one row of the eligibility distribution. Categories
// with zero records are not synthesized.
type EligibilitySlice struct {
	Category   EligibilityCategory `json:"category"`
	Count      int64               `json:"count"`
	Percentage int                 `json:"percentage"`
}

// MonthlyTrend is one of exactly twelve rows returned for a year; months
// with no records carry zero counts.
type MonthlyTrend struct {
	Month     int   `json:"month"`
	Total     int64 `json:"total"`
	RTLHCount int64 `json:"rtlh_count"`
	RLHCount  int64 `json:"rlh_count"`
}
