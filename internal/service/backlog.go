package service

import (
	"context"

	"rutilahu/pkg/types"

	"github.com/sirupsen/logrus"
)

type BacklogStore interface {
	Backlog(ctx context.Context, backlogID string) (*types.Backlog, error)
	TupleExists(ctx context.Context, districtID, villageID string, backlogType types.BacklogType, year, month int) (bool, error)
	Create(ctx context.Context, backlog *types.Backlog) error
	UpdateFamilyCount(ctx context.Context, backlogID string, familyCount int) error
	BacklogsByPeriodRange(ctx context.Context, from, to types.Period) ([]*types.Backlog, error)
}

// BacklogService tracks families lacking adequate housing per
// (district, village, type, year, month). No verification workflow here;
// entries are created once and only their family count changes.
type BacklogService struct {
	backlogs  BacklogStore
	districts DistrictStore
	villages  VillageStore
	audit     Recorder
	logger    *logrus.Logger
}

func NewBacklogService(backlogs BacklogStore, districts DistrictStore, villages VillageStore, audit Recorder, logger *logrus.Logger) *BacklogService {
	return &BacklogService{
		backlogs:  backlogs,
		districts: districts,
		villages:  villages,
		audit:     audit,
		logger:    logger,
	}
}

func (s *BacklogService) Create(ctx context.Context, input types.CreateBacklogInput, actor types.Actor) (*types.Backlog, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.BacklogType.Valid() {
		return nil, types.NewValidationError("backlog_type", "unknown backlog type")
	}

	if err := checkVillageInDistrict(ctx, s.districts, s.villages, input.DistrictID, input.VillageID); err != nil {
		return nil, err
	}

	// Explicit pre-check so the caller gets a precise already-exists
	// signal; the storage constraint still closes the race.
	exists, err := s.backlogs.TupleExists(ctx, input.DistrictID, input.VillageID, input.BacklogType, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, types.ErrDuplicateBacklog
	}

	backlog := &types.Backlog{
		DistrictID:  input.DistrictID,
		VillageID:   input.VillageID,
		BacklogType: input.BacklogType,
		FamilyCount: input.FamilyCount,
		Year:        input.Year,
		Month:       input.Month,
		CreatedBy:   actor.UserID,
	}

	if err := s.backlogs.Create(ctx, backlog); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionCreate,
		ResourceType: "backlog",
		ResourceID:   backlog.ID,
		IPAddress:    actor.IPAddress,
	})

	return backlog, nil
}

func (s *BacklogService) UpdateFamilyCount(ctx context.Context, backlogID string, familyCount int, actor types.Actor) (*types.Backlog, error) {
	if familyCount < 0 {
		return nil, types.NewValidationError("family_count", "must not be negative")
	}

	if err := s.backlogs.UpdateFamilyCount(ctx, backlogID, familyCount); err != nil {
		return nil, err
	}

	backlog, err := s.backlogs.Backlog(ctx, backlogID)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionUpdate,
		ResourceType: "backlog",
		ResourceID:   backlogID,
		IPAddress:    actor.IPAddress,
	})

	return backlog, nil
}

// BacklogsByDateRange returns entries whose (year, month) lies in the
// inclusive range. Periods compare lexicographically on the pair.
func (s *BacklogService) BacklogsByDateRange(ctx context.Context, startYear, startMonth, endYear, endMonth int) ([]*types.Backlog, error) {
	if startMonth < 1 || startMonth > 12 {
		return nil, types.NewValidationError("start_month", "must be between 1 and 12")
	}
	if endMonth < 1 || endMonth > 12 {
		return nil, types.NewValidationError("end_month", "must be between 1 and 12")
	}

	from := types.Period{Year: startYear, Month: startMonth}
	to := types.Period{Year: endYear, Month: endMonth}
	if to.Before(from) {
		return nil, types.NewValidationError("range", "end period precedes start period")
	}

	return s.backlogs.BacklogsByPeriodRange(ctx, from, to)
}
