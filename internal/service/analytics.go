package service

import (
	"context"
	"math"

	"rutilahu/internal/store"
	"rutilahu/pkg/types"
)

type AnalyticsStore interface {
	HousingCounts(ctx context.Context) (*store.HousingCounts, error)
	StatsByDistrict(ctx context.Context) ([]*types.LocationStats, error)
	StatsByVillage(ctx context.Context, districtID string) ([]*types.LocationStats, error)
	VerificationCounts(ctx context.Context) ([]*store.StatusCount, error)
	EligibilityCounts(ctx context.Context) ([]*store.CategoryCount, error)
	MonthlyCounts(ctx context.Context, year int) ([]*store.MonthCount, error)
}

// AnalyticsService assembles the read-only aggregates. Every result is
// zero-valued on empty data, never nil.
type AnalyticsService struct {
	analytics AnalyticsStore
	districts DistrictStore
	villages  VillageStore
}

func NewAnalyticsService(analytics AnalyticsStore, districts DistrictStore, villages VillageStore) *AnalyticsService {
	return &AnalyticsService{analytics: analytics, districts: districts, villages: villages}
}

func (s *AnalyticsService) DashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	counts, err := s.analytics.HousingCounts(ctx)
	if err != nil {
		return nil, err
	}

	districtsCount, err := s.districts.Count(ctx)
	if err != nil {
		return nil, err
	}

	villagesCount, err := s.villages.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &types.DashboardStats{
		TotalHouses:         counts.TotalHouses,
		RTLHCount:           counts.RTLHCount,
		RLHCount:            counts.RLHCount,
		PendingVerification: counts.PendingVerification,
		DistrictsCount:      districtsCount,
		VillagesCount:       villagesCount,
	}, nil
}

func (s *AnalyticsService) HousingByDistrict(ctx context.Context) ([]*types.LocationStats, error) {
	return s.analytics.StatsByDistrict(ctx)
}

func (s *AnalyticsService) HousingByVillage(ctx context.Context, districtID string) ([]*types.LocationStats, error) {
	return s.analytics.StatsByVillage(ctx, districtID)
}

func (s *AnalyticsService) VerificationStats(ctx context.Context) (*types.VerificationStats, error) {
	counts, err := s.analytics.VerificationCounts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &types.VerificationStats{}
	for _, c := range counts {
		switch c.Status {
		case types.VerificationPending:
			stats.Pending = c.Count
		case types.VerificationVerified:
			stats.Verified = c.Count
		case types.VerificationRejected:
			stats.Rejected = c.Count
		}
	}

	return stats, nil
}

// EligibilityDistribution reports count and rounded percentage per
// category present in the data. Zero-count categories are not synthesized
// and an empty store yields an empty result, not a padded one.
func (s *AnalyticsService) EligibilityDistribution(ctx context.Context) ([]*types.EligibilitySlice, error) {
	counts, err := s.analytics.EligibilityCounts(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c.Count
	}

	slices := make([]*types.EligibilitySlice, 0, len(counts))
	if total == 0 {
		return slices, nil
	}

	for _, c := range counts {
		slices = append(slices, &types.EligibilitySlice{
			Category:   c.Category,
			Count:      c.Count,
			Percentage: int(math.Round(float64(c.Count) / float64(total) * 100)),
		})
	}

	return slices, nil
}

// MonthlyTrends always returns exactly twelve rows for the year; the
// query only reports occupied months and the gaps are filled here.
func (s *AnalyticsService) MonthlyTrends(ctx context.Context, year int) ([]*types.MonthlyTrend, error) {
	counts, err := s.analytics.MonthlyCounts(ctx, year)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[int]*store.MonthCount, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c
	}

	trends := make([]*types.MonthlyTrend, 0, 12)
	for month := 1; month <= 12; month++ {
		trend := &types.MonthlyTrend{Month: month}
		if c, ok := byMonth[month]; ok {
			trend.Total = c.Total
			trend.RTLHCount = c.RTLHCount
			trend.RLHCount = c.RLHCount
		}
		trends = append(trends, trend)
	}

	return trends, nil
}
