// Package seed loads development fixtures: the geographic hierarchy, a
// handful of accounts per role, and randomized housing records.
package seed

import (
	"context"
	"fmt"

	"rutilahu/internal/store"
	"rutilahu/pkg/types"
)

type seedVillage struct {
	Name string
	Code string
}

type seedDistrict struct {
	Name     string
	Code     string
	Villages []seedVillage
}

var seedDistricts = []seedDistrict{
	{
		Name: "Sleman",
		Code: "34.04",
		Villages: []seedVillage{
			{Name: "Caturtunggal", Code: "001"},
			{Name: "Condongcatur", Code: "002"},
			{Name: "Maguwoharjo", Code: "003"},
		},
	},
	{
		Name: "Bantul",
		Code: "34.02",
		Villages: []seedVillage{
			{Name: "Bangunharjo", Code: "001"},
			{Name: "Panggungharjo", Code: "002"},
			{Name: "Timbulharjo", Code: "003"},
		},
	},
	{
		Name: "Kulon Progo",
		Code: "34.01",
		Villages: []seedVillage{
			{Name: "Wates", Code: "001"},
			{Name: "Bendungan", Code: "002"},
		},
	},
	{
		Name: "Gunungkidul",
		Code: "34.03",
		Villages: []seedVillage{
			{Name: "Wonosari", Code: "001"},
			{Name: "Baleharjo", Code: "002"},
		},
	},
}

// SeedReferenceData creates the district and village hierarchy. Existing
// data short-circuits the seed so it stays safe to re-run.
func SeedReferenceData(ctx context.Context, districtRepo *store.DistrictRepository, villageRepo *store.VillageRepository) error {
	existing, err := districtRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count districts: %w", err)
	}
	if existing > 0 {
		fmt.Printf("Skipping reference seed: %d districts already present\n", existing)
		return nil
	}

	created := 0
	for _, sd := range seedDistricts {
		district := &types.District{Name: sd.Name, Code: sd.Code}
		if err := districtRepo.Create(ctx, district); err != nil {
			return fmt.Errorf("failed to create district %s: %w", sd.Name, err)
		}

		for _, sv := range sd.Villages {
			village := &types.Village{
				Name:       sv.Name,
				Code:       sv.Code,
				DistrictID: district.ID,
			}
			if err := villageRepo.Create(ctx, village); err != nil {
				return fmt.Errorf("failed to create village %s in %s: %w", sv.Name, sd.Name, err)
			}
			created++
		}
	}

	fmt.Printf("Reference data seeded: %d districts, %d villages\n", len(seedDistricts), created)
	return nil
}
