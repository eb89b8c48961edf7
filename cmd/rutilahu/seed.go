package main

import (
	"context"
	"fmt"

	"rutilahu/internal/db"
	"rutilahu/internal/seed"
	"rutilahu/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with development data",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of fake housing records to create",
			Value:   50,
		},
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Delete previously seeded housing records first",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		districtRepo := store.NewDistrictRepository(pool)
		villageRepo := store.NewVillageRepository(pool)
		userRepo := store.NewUserRepository(pool)
		housingRepo := store.NewHousingRepository(pool)

		logrus.Info("Seeding reference data...")
		if err := seed.SeedReferenceData(ctx, districtRepo, villageRepo); err != nil {
			return fmt.Errorf("failed to seed reference data: %w", err)
		}

		logrus.Info("Seeding users...")
		if err := seed.SeedUsers(ctx, userRepo, districtRepo, villageRepo); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		logrus.Info("Seeding housing records...")
		if err := seed.SeedFakeHousingRecords(ctx, pool, housingRepo, districtRepo, villageRepo, userRepo, c.Int("count"), c.Bool("reset")); err != nil {
			return fmt.Errorf("failed to seed housing records: %w", err)
		}

		logrus.Info("Seed complete")

		return nil
	},
}
