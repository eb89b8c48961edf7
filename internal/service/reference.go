package service

import (
	"context"

	"rutilahu/pkg/types"

	"github.com/sirupsen/logrus"
)

// ReferenceService manages the geographic master data.
type ReferenceService struct {
	districts DistrictStore
	villages  VillageStore
	audit     Recorder
	logger    *logrus.Logger
}

func NewReferenceService(districts DistrictStore, villages VillageStore, audit Recorder, logger *logrus.Logger) *ReferenceService {
	return &ReferenceService{districts: districts, villages: villages, audit: audit, logger: logger}
}

func (s *ReferenceService) Districts(ctx context.Context) ([]*types.District, error) {
	return s.districts.Districts(ctx)
}

func (s *ReferenceService) District(ctx context.Context, districtID string) (*types.District, error) {
	return s.districts.District(ctx, districtID)
}

func (s *ReferenceService) VillagesByDistrict(ctx context.Context, districtID string) ([]*types.Village, error) {
	if _, err := s.districts.District(ctx, districtID); err != nil {
		return nil, err
	}
	return s.villages.VillagesByDistrict(ctx, districtID)
}

func (s *ReferenceService) CreateDistrict(ctx context.Context, input types.CreateDistrictInput, actor types.Actor) (*types.District, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	district := &types.District{Name: input.Name, Code: input.Code}
	if err := s.districts.Create(ctx, district); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionCreate,
		ResourceType: "district",
		ResourceID:   district.ID,
		IPAddress:    actor.IPAddress,
	})

	return district, nil
}

func (s *ReferenceService) CreateVillage(ctx context.Context, input types.CreateVillageInput, actor types.Actor) (*types.Village, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.districts.District(ctx, input.DistrictID); err != nil {
		return nil, err
	}

	village := &types.Village{Name: input.Name, Code: input.Code, DistrictID: input.DistrictID}
	if err := s.villages.Create(ctx, village); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionCreate,
		ResourceType: "village",
		ResourceID:   village.ID,
		IPAddress:    actor.IPAddress,
	})

	return village, nil
}
