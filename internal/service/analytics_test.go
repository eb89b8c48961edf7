package service

import (
	"context"
	"testing"

	"rutilahu/internal/store"
	"rutilahu/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsCombinesSources(t *testing.T) {
	analytics := &fakeAnalyticsStore{
		counts: &store.HousingCounts{
			TotalHouses:         120,
			RTLHCount:           80,
			RLHCount:            40,
			PendingVerification: 25,
		},
	}
	districts := newFakeDistrictStore(
		&types.District{ID: "district_1"},
		&types.District{ID: "district_2"},
	)
	villages := newFakeVillageStore(
		&types.Village{ID: "village_1", DistrictID: "district_1"},
	)

	svc := NewAnalyticsService(analytics, districts, villages)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &types.DashboardStats{
		TotalHouses:         120,
		RTLHCount:           80,
		RLHCount:            40,
		PendingVerification: 25,
		DistrictsCount:      2,
		VillagesCount:       1,
	}, stats)
}

func TestVerificationStatsZeroValuedOnEmpty(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsStore{}, newFakeDistrictStore(), newFakeVillageStore())

	stats, err := svc.VerificationStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &types.VerificationStats{}, stats)
}

func TestVerificationStatsMapsStatuses(t *testing.T) {
	analytics := &fakeAnalyticsStore{
		verification: []*store.StatusCount{
			{Status: types.VerificationPending, Count: 5},
			{Status: types.VerificationVerified, Count: 30},
			{Status: types.VerificationRejected, Count: 2},
		},
	}
	svc := NewAnalyticsService(analytics, newFakeDistrictStore(), newFakeVillageStore())

	stats, err := svc.VerificationStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.Pending)
	assert.Equal(t, int64(30), stats.Verified)
	assert.Equal(t, int64(2), stats.Rejected)
}

func TestEligibilityDistributionPercentages(t *testing.T) {
	analytics := &fakeAnalyticsStore{
		eligibility: []*store.CategoryCount{
			{Category: types.EligibilityPoor, Count: 1},
			{Category: types.EligibilityVeryPoor, Count: 1},
			{Category: types.EligibilityModerate, Count: 1},
		},
	}
	svc := NewAnalyticsService(analytics, newFakeDistrictStore(), newFakeVillageStore())

	slices, err := svc.EligibilityDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, slices, 3)

	// Percentages round independently; with thirds they land on 33 each
	// and deliberately do not sum to 100.
	for _, slice := range slices {
		assert.Equal(t, 33, slice.Percentage)
		assert.Equal(t, int64(1), slice.Count)
	}
}

func TestEligibilityDistributionEmpty(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsStore{}, newFakeDistrictStore(), newFakeVillageStore())

	slices, err := svc.EligibilityDistribution(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, slices)
	assert.Empty(t, slices)
}

func TestMonthlyTrendsZeroFillsTwelveMonths(t *testing.T) {
	analytics := &fakeAnalyticsStore{
		monthly: []*store.MonthCount{
			{Month: 3, Total: 10, RTLHCount: 7, RLHCount: 3},
			{Month: 11, Total: 4, RTLHCount: 4},
		},
	}
	svc := NewAnalyticsService(analytics, newFakeDistrictStore(), newFakeVillageStore())

	trends, err := svc.MonthlyTrends(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, trends, 12)

	for i, trend := range trends {
		assert.Equal(t, i+1, trend.Month)
	}

	assert.Equal(t, int64(10), trends[2].Total)
	assert.Equal(t, int64(7), trends[2].RTLHCount)
	assert.Equal(t, int64(4), trends[10].Total)
	assert.Equal(t, int64(0), trends[0].Total)
	assert.Equal(t, int64(0), trends[11].Total)
}

func TestLocationRollupsPassThrough(t *testing.T) {
	analytics := &fakeAnalyticsStore{
		byDistrict: []*types.LocationStats{
			{LocationID: "district_1", LocationName: "Sleman", TotalHouses: 9},
			{LocationID: "district_2", LocationName: "Bantul"},
		},
		byVillage: []*types.LocationStats{
			{LocationID: "village_1", LocationName: "Caturtunggal", TotalHouses: 9},
		},
	}
	svc := NewAnalyticsService(analytics, newFakeDistrictStore(), newFakeVillageStore())

	districts, err := svc.HousingByDistrict(context.Background())
	require.NoError(t, err)
	require.Len(t, districts, 2)
	// Districts without records still appear, zero-valued.
	assert.Equal(t, int64(0), districts[1].TotalHouses)

	villages, err := svc.HousingByVillage(context.Background(), "district_1")
	require.NoError(t, err)
	assert.Len(t, villages, 1)
}
