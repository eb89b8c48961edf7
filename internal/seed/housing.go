package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"rutilahu/internal/store"
	"rutilahu/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var fakeHouseholdNames = []string{
	"Budi Santoso",
	"Siti Aminah",
	"Agus Wibowo",
	"Dewi Lestari",
	"Joko Susilo",
	"Rina Wulandari",
	"Slamet Riyadi",
	"Sri Rahayu",
	"Bambang Hartono",
	"Endang Suryani",
}

type weightedVerification struct {
	Status types.VerificationStatus
	Weight int
}

var weightedVerifications = []weightedVerification{
	{Status: types.VerificationPending, Weight: 45},
	{Status: types.VerificationVerified, Weight: 40},
	{Status: types.VerificationRejected, Weight: 15},
}

// SeedFakeHousingRecords creates randomized records spread over the seeded
// hierarchy. Seeded rows are tagged in head_of_household so a reset can
// find them without touching real data.
func SeedFakeHousingRecords(
	ctx context.Context,
	pool *pgxpool.Pool,
	housingRepo *store.HousingRepository,
	districtRepo *store.DistrictRepository,
	villageRepo *store.VillageRepository,
	userRepo *store.UserRepository,
	count int,
	reset bool,
) error {
	if count <= 0 {
		fmt.Println("Skipping fake housing seed because count <= 0")
		return nil
	}

	if reset {
		result, err := pool.Exec(ctx, `DELETE FROM rutilahu.housing_records WHERE head_of_household LIKE '[seed] %'`)
		if err != nil {
			return fmt.Errorf("failed to reset seeded housing records: %w", err)
		}
		fmt.Printf("Reset seeded housing records: %d deleted\n", result.RowsAffected())
	}

	districts, err := districtRepo.Districts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load districts for housing seed: %w", err)
	}
	if len(districts) == 0 {
		return fmt.Errorf("no districts found; run the reference seed first")
	}

	creator, err := userRepo.UserByUsername(ctx, "pupr.admin")
	if err != nil {
		return fmt.Errorf("failed to load seed creator account: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := 0
	for i := 0; i < count; i++ {
		district := districts[rng.Intn(len(districts))]
		villages, err := villageRepo.VillagesByDistrict(ctx, district.ID)
		if err != nil {
			return fmt.Errorf("failed to load villages for district %s: %w", district.Name, err)
		}
		if len(villages) == 0 {
			continue
		}
		village := villages[rng.Intn(len(villages))]

		status := types.HousingStatusRTLH
		if rng.Intn(100) < 30 {
			status = types.HousingStatusRLH
		}

		categories := []types.EligibilityCategory{
			types.EligibilityVeryPoor,
			types.EligibilityPoor,
			types.EligibilityModerate,
			types.EligibilityNotEligible,
		}

		// Yogyakarta-area coordinates.
		lat := decimal.NewFromFloat(-7.7 - rng.Float64()*0.3).Round(8)
		lon := decimal.NewFromFloat(110.2 + rng.Float64()*0.4).Round(8)
		income := decimal.NewFromInt(int64(rng.Intn(2500)+500) * 1000)
		score := rng.Intn(101)

		record := &types.HousingRecord{
			HeadOfHousehold:     fmt.Sprintf("[seed] %s", fakeHouseholdNames[rng.Intn(len(fakeHouseholdNames))]),
			NIK:                 fmt.Sprintf("34%02d%012d", rng.Intn(5)+1, rng.Int63n(1_000_000_000_000)),
			HousingStatus:       status,
			EligibilityCategory: categories[rng.Intn(len(categories))],
			VerificationStatus:  pickWeightedVerification(rng),
			DistrictID:          district.ID,
			VillageID:           village.ID,
			Latitude:            &lat,
			Longitude:           &lon,
			Address:             fmt.Sprintf("Jl. %s No. %d, %s", village.Name, rng.Intn(200)+1, district.Name),
			FamilyMembers:       rng.Intn(7) + 1,
			MonthlyIncome:       &income,
			HouseConditionScore: &score,
			CreatedBy:           creator.ID,
		}

		if record.VerificationStatus != types.VerificationPending {
			verifiedAt := time.Now().Add(-time.Duration(rng.Intn(30*24)) * time.Hour)
			record.VerifiedBy = &creator.ID
			record.VerifiedAt = &verifiedAt
		}

		if err := housingRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create fake housing record %d: %w", i+1, err)
		}

		created++
	}

	fmt.Printf("Fake housing records seeded: %d created\n", created)
	return nil
}

func pickWeightedVerification(rng *rand.Rand) types.VerificationStatus {
	total := 0
	for _, item := range weightedVerifications {
		total += item.Weight
	}

	roll := rng.Intn(total)
	running := 0
	for _, item := range weightedVerifications {
		running += item.Weight
		if roll < running {
			return item.Status
		}
	}

	return types.VerificationPending
}
