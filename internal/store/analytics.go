package store

import (
	"context"
	"fmt"

	"rutilahu/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository serves the read-only aggregation queries. Nothing in
// this repository writes.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// HousingCounts is the housing-record slice of the dashboard.
type HousingCounts struct {
	TotalHouses         int64 `db:"total_houses"`
	RTLHCount           int64 `db:"rtlh_count"`
	RLHCount            int64 `db:"rlh_count"`
	PendingVerification int64 `db:"pending_verification"`
}

func (r *AnalyticsRepository) HousingCounts(ctx context.Context) (*HousingCounts, error) {
	query, args, err := psql().
		Select(
			"count(*) as total_houses",
			"count(*) filter (where housing_status = 'RTLH') as rtlh_count",
			"count(*) filter (where housing_status = 'RLH') as rlh_count",
			"count(*) filter (where verification_status = 'PENDING') as pending_verification",
		).
		From(housingTableName).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate housing counts query: %w", err)
	}

	var counts HousingCounts
	if err := pgxscan.Get(ctx, r.pool, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch housing counts: %w", err)
	}

	return &counts, nil
}

// StatsByDistrict rolls housing records up per district. The LEFT JOIN is
// load-bearing: districts without records must appear with zero counts.
func (r *AnalyticsRepository) StatsByDistrict(ctx context.Context) ([]*types.LocationStats, error) {
	query, args, err := psql().
		Select(
			"d.id as location_id",
			"d.name as location_name",
			"count(hr.id) as total_houses",
			"count(hr.id) filter (where hr.housing_status = 'RTLH') as rtlh_count",
			"count(hr.id) filter (where hr.housing_status = 'RLH') as rlh_count",
			"count(hr.id) filter (where hr.verification_status = 'VERIFIED') as verified_count",
		).
		From(districtTableName + " d").
		LeftJoin(housingTableName + " hr on hr.district_id = d.id").
		GroupBy("d.id", "d.name").
		OrderBy("d.name asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate stats-by-district query: %w", err)
	}

	stats := make([]*types.LocationStats, 0)
	if err := pgxscan.Select(ctx, r.pool, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch stats by district: %w", err)
	}

	return stats, nil
}

// StatsByVillage rolls housing records up per village, optionally limited
// to one district. Same outer-join semantics as StatsByDistrict.
func (r *AnalyticsRepository) StatsByVillage(ctx context.Context, districtID string) ([]*types.LocationStats, error) {
	builder := psql().
		Select(
			"v.id as location_id",
			"v.name as location_name",
			"count(hr.id) as total_houses",
			"count(hr.id) filter (where hr.housing_status = 'RTLH') as rtlh_count",
			"count(hr.id) filter (where hr.housing_status = 'RLH') as rlh_count",
			"count(hr.id) filter (where hr.verification_status = 'VERIFIED') as verified_count",
		).
		From(villageTableName + " v").
		LeftJoin(housingTableName + " hr on hr.village_id = v.id").
		GroupBy("v.id", "v.name").
		OrderBy("v.name asc")

	if districtID != "" {
		builder = builder.Where(sq.Eq{"v.district_id": districtID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate stats-by-village query: %w", err)
	}

	stats := make([]*types.LocationStats, 0)
	if err := pgxscan.Select(ctx, r.pool, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch stats by village: %w", err)
	}

	return stats, nil
}

// StatusCount is one group-by row keyed by verification status.
type StatusCount struct {
	Status types.VerificationStatus `db:"verification_status"`
	Count  int64                    `db:"count"`
}

func (r *AnalyticsRepository) VerificationCounts(ctx context.Context) ([]*StatusCount, error) {
	query, args, err := psql().
		Select("verification_status", "count(*) as count").
		From(housingTableName).
		GroupBy("verification_status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification counts query: %w", err)
	}

	counts := make([]*StatusCount, 0)
	if err := pgxscan.Select(ctx, r.pool, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch verification counts: %w", err)
	}

	return counts, nil
}

// CategoryCount is one group-by row keyed by eligibility category. Only
// categories present in the data come back.
type CategoryCount struct {
	Category types.EligibilityCategory `db:"eligibility_category"`
	Count    int64                     `db:"count"`
}

func (r *AnalyticsRepository) EligibilityCounts(ctx context.Context) ([]*CategoryCount, error) {
	query, args, err := psql().
		Select("eligibility_category", "count(*) as count").
		From(housingTableName).
		GroupBy("eligibility_category").
		OrderBy("count desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate eligibility counts query: %w", err)
	}

	counts := make([]*CategoryCount, 0)
	if err := pgxscan.Select(ctx, r.pool, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch eligibility counts: %w", err)
	}

	return counts, nil
}

// MonthCount is one group-by row for a calendar month of the queried year.
// Missing months are zero-filled by the service, not here.
type MonthCount struct {
	Month     int   `db:"month"`
	Total     int64 `db:"total"`
	RTLHCount int64 `db:"rtlh_count"`
	RLHCount  int64 `db:"rlh_count"`
}

func (r *AnalyticsRepository) MonthlyCounts(ctx context.Context, year int) ([]*MonthCount, error) {
	query, args, err := psql().
		Select(
			"extract(month from created_at)::int as month",
			"count(*) as total",
			"count(*) filter (where housing_status = 'RTLH') as rtlh_count",
			"count(*) filter (where housing_status = 'RLH') as rlh_count",
		).
		From(housingTableName).
		Where("extract(year from created_at)::int = ?", year).
		GroupBy("1").
		OrderBy("1").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate monthly counts query: %w", err)
	}

	counts := make([]*MonthCount, 0)
	if err := pgxscan.Select(ctx, r.pool, &counts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch monthly counts: %w", err)
	}

	return counts, nil
}
