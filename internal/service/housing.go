package service

import (
	"context"
	"time"

	"rutilahu/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	coordinatePlaces = 8
	currencyPlaces   = 2
)

type HousingStore interface {
	HousingRecord(ctx context.Context, recordID string) (*types.HousingRecord, error)
	HousingRecords(ctx context.Context) ([]*types.HousingRecord, error)
	HousingRecordsByDistrict(ctx context.Context, districtID string) ([]*types.HousingRecord, error)
	HousingRecordsByVillage(ctx context.Context, villageID string) ([]*types.HousingRecord, error)
	NIKExists(ctx context.Context, nik string) (bool, error)
	Create(ctx context.Context, record *types.HousingRecord) error
	Save(ctx context.Context, record *types.HousingRecord) error
	UpdateCoordinates(ctx context.Context, recordID string, lat, lon decimal.Decimal) error
	Delete(ctx context.Context, recordID string) error
}

// HousingService owns the housing-record lifecycle and its verification
// state machine: PENDING -> VERIFIED | REJECTED, and any state -> PENDING
// through an edit that touches a significant field.
type HousingService struct {
	records   HousingStore
	districts DistrictStore
	villages  VillageStore
	audit     Recorder
	logger    *logrus.Logger
}

func NewHousingService(records HousingStore, districts DistrictStore, villages VillageStore, audit Recorder, logger *logrus.Logger) *HousingService {
	return &HousingService{
		records:   records,
		districts: districts,
		villages:  villages,
		audit:     audit,
		logger:    logger,
	}
}

func (s *HousingService) Create(ctx context.Context, input types.CreateHousingRecordInput, actor types.Actor) (*types.HousingRecord, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.HousingStatus.Valid() {
		return nil, types.NewValidationError("housing_status", "unknown housing status")
	}
	if !input.EligibilityCategory.Valid() {
		return nil, types.NewValidationError("eligibility_category", "unknown eligibility category")
	}
	if input.MonthlyIncome != nil && input.MonthlyIncome.IsNegative() {
		return nil, types.NewValidationError("monthly_income", "must not be negative")
	}
	if input.HouseConditionScore != nil && (*input.HouseConditionScore < 0 || *input.HouseConditionScore > 100) {
		return nil, types.NewValidationError("house_condition_score", "must be between 0 and 100")
	}

	if err := checkVillageInDistrict(ctx, s.districts, s.villages, input.DistrictID, input.VillageID); err != nil {
		return nil, err
	}

	exists, err := s.records.NIKExists(ctx, input.NIK)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, types.ErrDuplicateNIK
	}

	record := &types.HousingRecord{
		HeadOfHousehold:     input.HeadOfHousehold,
		NIK:                 input.NIK,
		HousingStatus:       input.HousingStatus,
		EligibilityCategory: input.EligibilityCategory,
		VerificationStatus:  types.VerificationPending,
		DistrictID:          input.DistrictID,
		VillageID:           input.VillageID,
		Latitude:            roundDecimalPtr(input.Latitude, coordinatePlaces),
		Longitude:           roundDecimalPtr(input.Longitude, coordinatePlaces),
		Address:             input.Address,
		Phone:               input.Phone,
		FamilyMembers:       input.FamilyMembers,
		MonthlyIncome:       roundDecimalPtr(input.MonthlyIncome, currencyPlaces),
		HouseConditionScore: input.HouseConditionScore,
		Notes:               input.Notes,
		CreatedBy:           actor.UserID,
	}

	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionCreate,
		ResourceType: "housing_record",
		ResourceID:   record.ID,
		IPAddress:    actor.IPAddress,
	})

	return record, nil
}

func (s *HousingService) HousingRecord(ctx context.Context, recordID string) (*types.HousingRecord, error) {
	return s.records.HousingRecord(ctx, recordID)
}

func (s *HousingService) HousingRecords(ctx context.Context) ([]*types.HousingRecord, error) {
	return s.records.HousingRecords(ctx)
}

func (s *HousingService) HousingRecordsByDistrict(ctx context.Context, districtID string) ([]*types.HousingRecord, error) {
	return s.records.HousingRecordsByDistrict(ctx, districtID)
}

func (s *HousingService) HousingRecordsByVillage(ctx context.Context, villageID string) ([]*types.HousingRecord, error) {
	return s.records.HousingRecordsByVillage(ctx, villageID)
}

// Update applies a partial edit. If any significant field is included the
// record drops back to PENDING and loses its verifier, whatever state it
// was in before.
func (s *HousingService) Update(ctx context.Context, recordID string, input types.UpdateHousingRecordInput, actor types.Actor) (*types.HousingRecord, error) {
	record, err := s.records.HousingRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	switch {
	case input.DistrictID.Present && input.VillageID.Present:
		if err := checkVillageInDistrict(ctx, s.districts, s.villages, input.DistrictID.Value, input.VillageID.Value); err != nil {
			return nil, err
		}
	case input.DistrictID.Present:
		if _, err := s.districts.District(ctx, input.DistrictID.Value); err != nil {
			return nil, err
		}
	case input.VillageID.Present:
		if _, err := s.villages.Village(ctx, input.VillageID.Value); err != nil {
			return nil, err
		}
	}

	if err := applyHousingUpdate(record, input); err != nil {
		return nil, err
	}

	if input.TouchesSignificantField() {
		record.VerificationStatus = types.VerificationPending
		record.VerifiedBy = nil
		record.VerifiedAt = nil
	}

	if err := s.records.Save(ctx, record); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionUpdate,
		ResourceType: "housing_record",
		ResourceID:   record.ID,
		IPAddress:    actor.IPAddress,
	})

	return record, nil
}

// Verify moves the record to VERIFIED or REJECTED. Re-verifying an already
// decided record is allowed and simply overwrites the verifier and
// timestamp.
func (s *HousingService) Verify(ctx context.Context, recordID string, input types.VerifyHousingRecordInput, actor types.Actor) (*types.HousingRecord, error) {
	if input.Status != types.VerificationVerified && input.Status != types.VerificationRejected {
		return nil, types.NewValidationError("status", "must be VERIFIED or REJECTED")
	}

	record, err := s.records.HousingRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record.VerificationStatus = input.Status
	record.VerifiedBy = &actor.UserID
	record.VerifiedAt = &now
	if input.Notes != nil {
		record.Notes = input.Notes
	}

	if err := s.records.Save(ctx, record); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionVerify,
		ResourceType: "housing_record",
		ResourceID:   record.ID,
		Details:      string(input.Status),
		IPAddress:    actor.IPAddress,
	})

	return record, nil
}

func (s *HousingService) Delete(ctx context.Context, recordID string, actor types.Actor) error {
	if _, err := s.records.HousingRecord(ctx, recordID); err != nil {
		return err
	}

	if err := s.records.Delete(ctx, recordID); err != nil {
		return err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionDelete,
		ResourceType: "housing_record",
		ResourceID:   recordID,
		IPAddress:    actor.IPAddress,
	})

	return nil
}

func applyHousingUpdate(record *types.HousingRecord, input types.UpdateHousingRecordInput) error {
	if input.HeadOfHousehold.Present {
		if input.HeadOfHousehold.Null || input.HeadOfHousehold.Value == "" {
			return types.NewValidationError("head_of_household", "must not be empty")
		}
		record.HeadOfHousehold = input.HeadOfHousehold.Value
	}

	if input.HousingStatus.Present {
		if !input.HousingStatus.Value.Valid() {
			return types.NewValidationError("housing_status", "unknown housing status")
		}
		record.HousingStatus = input.HousingStatus.Value
	}

	if input.EligibilityCategory.Present {
		if !input.EligibilityCategory.Value.Valid() {
			return types.NewValidationError("eligibility_category", "unknown eligibility category")
		}
		record.EligibilityCategory = input.EligibilityCategory.Value
	}

	if input.DistrictID.Present {
		if input.DistrictID.Null {
			return types.NewValidationError("district_id", "must not be null")
		}
		record.DistrictID = input.DistrictID.Value
	}

	if input.VillageID.Present {
		if input.VillageID.Null {
			return types.NewValidationError("village_id", "must not be null")
		}
		record.VillageID = input.VillageID.Value
	}

	if input.Address.Present {
		if input.Address.Null || input.Address.Value == "" {
			return types.NewValidationError("address", "must not be empty")
		}
		record.Address = input.Address.Value
	}

	if input.FamilyMembers.Present {
		if input.FamilyMembers.Null || input.FamilyMembers.Value <= 0 {
			return types.NewValidationError("family_members", "must be greater than zero")
		}
		record.FamilyMembers = input.FamilyMembers.Value
	}

	if input.Latitude.Present {
		record.Latitude = roundDecimalPtr(input.Latitude.Ptr(), coordinatePlaces)
	}
	if input.Longitude.Present {
		record.Longitude = roundDecimalPtr(input.Longitude.Ptr(), coordinatePlaces)
	}

	if input.MonthlyIncome.Present {
		if !input.MonthlyIncome.Null && input.MonthlyIncome.Value.IsNegative() {
			return types.NewValidationError("monthly_income", "must not be negative")
		}
		record.MonthlyIncome = roundDecimalPtr(input.MonthlyIncome.Ptr(), currencyPlaces)
	}

	if input.HouseConditionScore.Present {
		if !input.HouseConditionScore.Null && (input.HouseConditionScore.Value < 0 || input.HouseConditionScore.Value > 100) {
			return types.NewValidationError("house_condition_score", "must be between 0 and 100")
		}
		record.HouseConditionScore = input.HouseConditionScore.Ptr()
	}

	if input.Phone.Present {
		record.Phone = input.Phone.Ptr()
	}
	if input.Notes.Present {
		record.Notes = input.Notes.Ptr()
	}

	return nil
}

func roundDecimalPtr(d *decimal.Decimal, places int32) *decimal.Decimal {
	if d == nil {
		return nil
	}
	rounded := d.Round(places)
	return &rounded
}
