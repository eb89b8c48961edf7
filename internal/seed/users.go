package seed

import (
	"context"
	"errors"
	"fmt"

	"rutilahu/internal/auth"
	"rutilahu/internal/store"
	"rutilahu/internal/utils"
	"rutilahu/pkg/types"

	"github.com/k0kubun/pp/v3"
)

type seedUser struct {
	Username string
	Email    string
	Role     types.Role
}

var seedUsers = []seedUser{
	{Username: "pupr.admin", Email: "pupr.admin@rutilahu.local", Role: types.RolePUPRAdmin},
	{Username: "kominfo.admin", Email: "kominfo.admin@rutilahu.local", Role: types.RoleKominfoAdmin},
	{Username: "operator.sleman", Email: "operator.sleman@rutilahu.local", Role: types.RoleDistrictOperator},
	{Username: "operator.caturtunggal", Email: "operator.caturtunggal@rutilahu.local", Role: types.RoleVillageOperator},
}

// SeedUsers creates one account per role with a random throwaway password,
// printed once so a developer can log in.
func SeedUsers(ctx context.Context, userRepo *store.UserRepository, districtRepo *store.DistrictRepository, villageRepo *store.VillageRepository) error {
	districts, err := districtRepo.Districts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load districts for user seed: %w", err)
	}
	if len(districts) == 0 {
		return fmt.Errorf("no districts found; run the reference seed first")
	}

	villages, err := villageRepo.VillagesByDistrict(ctx, districts[0].ID)
	if err != nil {
		return fmt.Errorf("failed to load villages for user seed: %w", err)
	}
	if len(villages) == 0 {
		return fmt.Errorf("no villages found; run the reference seed first")
	}

	credentials := make(map[string]string, len(seedUsers))
	for _, su := range seedUsers {
		password := utils.NanoIDSize(16)
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}

		user := &types.User{
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: hash,
			Role:         su.Role,
			IsActive:     true,
		}

		switch su.Role {
		case types.RoleDistrictOperator:
			user.DistrictID = &districts[0].ID
		case types.RoleVillageOperator:
			user.DistrictID = &districts[0].ID
			user.VillageID = &villages[0].ID
		}

		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, types.ErrDuplicateUser) {
				fmt.Printf("Skipping existing user %s\n", su.Username)
				continue
			}
			return fmt.Errorf("failed to create seed user %s: %w", su.Username, err)
		}

		credentials[su.Username] = password
	}

	if len(credentials) > 0 {
		fmt.Println("Seeded credentials (development only):")
		pp.Println(credentials)
	}

	return nil
}
