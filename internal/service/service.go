// Package service holds the business rules between the HTTP surface and
// the repositories: referential checks, the verification state machine,
// audit emission and the aggregate/report assembly.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rutilahu/pkg/types"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput maps the first validator failure to a ValidationError so
// callers can distinguish malformed input from storage failures.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := strings.ToLower(verrs[0].Field())
		return types.NewValidationError(field, fmt.Sprintf("failed %q validation", verrs[0].Tag()))
	}

	return err
}

// Recorder receives audit events after successful mutations. Recording is
// best-effort: implementations must never fail the primary operation.
type Recorder interface {
	Record(ctx context.Context, event types.AuditEvent)
}

type DistrictStore interface {
	District(ctx context.Context, districtID string) (*types.District, error)
	Districts(ctx context.Context) ([]*types.District, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, district *types.District) error
}

type VillageStore interface {
	Village(ctx context.Context, villageID string) (*types.Village, error)
	VillagesByDistrict(ctx context.Context, districtID string) ([]*types.Village, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, village *types.Village) error
}

// checkVillageInDistrict is the compound referential check shared by
// housing records and backlog entries: the village must exist and belong
// to the supplied district.
func checkVillageInDistrict(ctx context.Context, districts DistrictStore, villages VillageStore, districtID, villageID string) error {
	if _, err := districts.District(ctx, districtID); err != nil {
		return err
	}

	village, err := villages.Village(ctx, villageID)
	if err != nil {
		return err
	}

	if village.DistrictID != districtID {
		return types.ErrVillageMismatch
	}

	return nil
}
