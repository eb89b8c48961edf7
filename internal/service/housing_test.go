package service

import (
	"context"
	"testing"
	"time"

	"rutilahu/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHousingFixture() (*HousingService, *fakeHousingStore, *recorderSpy) {
	districts := newFakeDistrictStore(
		&types.District{ID: "district_1", Name: "Sleman", Code: "34.04"},
		&types.District{ID: "district_2", Name: "Bantul", Code: "34.02"},
	)
	villages := newFakeVillageStore(
		&types.Village{ID: "village_1", Name: "Caturtunggal", Code: "001", DistrictID: "district_1"},
		&types.Village{ID: "village_2", Name: "Bangunharjo", Code: "001", DistrictID: "district_2"},
	)
	records := newFakeHousingStore()
	audit := &recorderSpy{}

	return NewHousingService(records, districts, villages, audit, testLogger()), records, audit
}

func validHousingInput() types.CreateHousingRecordInput {
	return types.CreateHousingRecordInput{
		HeadOfHousehold:     "Budi Santoso",
		NIK:                 "3404012345678901",
		HousingStatus:       types.HousingStatusRTLH,
		EligibilityCategory: types.EligibilityPoor,
		DistrictID:          "district_1",
		VillageID:           "village_1",
		Address:             "Jl. Kaliurang KM 5",
		FamilyMembers:       4,
	}
}

func TestHousingCreateStartsPending(t *testing.T) {
	svc, _, audit := newHousingFixture()

	record, err := svc.Create(context.Background(), validHousingInput(), types.Actor{UserID: "user_1"})
	require.NoError(t, err)

	assert.Equal(t, types.VerificationPending, record.VerificationStatus)
	assert.Nil(t, record.VerifiedBy)
	assert.Nil(t, record.VerifiedAt)
	assert.Equal(t, "user_1", record.CreatedBy)
	assert.NotEmpty(t, record.ID)

	require.Len(t, audit.events, 1)
	assert.Equal(t, types.AuditActionCreate, audit.last().Action)
	assert.Equal(t, "housing_record", audit.last().ResourceType)
}

func TestHousingCreateRejectsDuplicateNIK(t *testing.T) {
	svc, _, _ := newHousingFixture()

	_, err := svc.Create(context.Background(), validHousingInput(), types.Actor{UserID: "user_1"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validHousingInput(), types.Actor{UserID: "user_1"})
	assert.ErrorIs(t, err, types.ErrDuplicateNIK)
}

func TestHousingCreateRejectsVillageOutsideDistrict(t *testing.T) {
	svc, _, _ := newHousingFixture()

	input := validHousingInput()
	input.VillageID = "village_2"

	_, err := svc.Create(context.Background(), input, types.Actor{UserID: "user_1"})
	assert.ErrorIs(t, err, types.ErrVillageMismatch)
}

func TestHousingCreateRejectsUnknownDistrict(t *testing.T) {
	svc, _, _ := newHousingFixture()

	input := validHousingInput()
	input.DistrictID = "district_99"

	_, err := svc.Create(context.Background(), input, types.Actor{UserID: "user_1"})
	assert.ErrorIs(t, err, types.ErrDistrictNotFound)
}

func TestHousingCreateValidatesNIK(t *testing.T) {
	svc, _, _ := newHousingFixture()

	input := validHousingInput()
	input.NIK = "12345"

	_, err := svc.Create(context.Background(), input, types.Actor{UserID: "user_1"})
	assert.True(t, types.IsValidation(err))
}

func TestHousingCreateValidatesConditionScore(t *testing.T) {
	svc, _, _ := newHousingFixture()

	score := 140
	input := validHousingInput()
	input.HouseConditionScore = &score

	_, err := svc.Create(context.Background(), input, types.Actor{UserID: "user_1"})
	assert.True(t, types.IsValidation(err))
}

func verifiedRecord(t *testing.T, svc *HousingService) *types.HousingRecord {
	t.Helper()

	record, err := svc.Create(context.Background(), validHousingInput(), types.Actor{UserID: "operator_1"})
	require.NoError(t, err)

	record, err = svc.Verify(context.Background(), record.ID, types.VerifyHousingRecordInput{Status: types.VerificationVerified}, types.Actor{UserID: "verifier_1"})
	require.NoError(t, err)
	require.Equal(t, types.VerificationVerified, record.VerificationStatus)

	return record
}

func TestHousingUpdateSignificantFieldResetsVerification(t *testing.T) {
	svc, _, _ := newHousingFixture()
	record := verifiedRecord(t, svc)

	updated, err := svc.Update(context.Background(), record.ID, types.UpdateHousingRecordInput{
		Address: types.Some("Jl. Kaliurang KM 7"),
	}, types.Actor{UserID: "operator_1"})
	require.NoError(t, err)

	assert.Equal(t, types.VerificationPending, updated.VerificationStatus)
	assert.Nil(t, updated.VerifiedBy)
	assert.Nil(t, updated.VerifiedAt)
	assert.Equal(t, "Jl. Kaliurang KM 7", updated.Address)
}

func TestHousingUpdateInsignificantFieldKeepsVerification(t *testing.T) {
	svc, _, _ := newHousingFixture()
	record := verifiedRecord(t, svc)

	updated, err := svc.Update(context.Background(), record.ID, types.UpdateHousingRecordInput{
		Phone: types.Some("081234567890"),
		Notes: types.Some("revisit in June"),
	}, types.Actor{UserID: "operator_1"})
	require.NoError(t, err)

	assert.Equal(t, types.VerificationVerified, updated.VerificationStatus)
	require.NotNil(t, updated.VerifiedBy)
	assert.Equal(t, "verifier_1", *updated.VerifiedBy)
	assert.NotNil(t, updated.VerifiedAt)
}

func TestHousingUpdateExplicitNullClearsNullableField(t *testing.T) {
	svc, _, _ := newHousingFixture()

	notes := "initial survey"
	input := validHousingInput()
	input.Notes = &notes

	record, err := svc.Create(context.Background(), input, types.Actor{UserID: "operator_1"})
	require.NoError(t, err)
	require.NotNil(t, record.Notes)

	updated, err := svc.Update(context.Background(), record.ID, types.UpdateHousingRecordInput{
		Notes: types.Null[string](),
	}, types.Actor{UserID: "operator_1"})
	require.NoError(t, err)

	assert.Nil(t, updated.Notes)
}

func TestHousingUpdateRejectsNullOnRequiredField(t *testing.T) {
	svc, _, _ := newHousingFixture()

	record, err := svc.Create(context.Background(), validHousingInput(), types.Actor{UserID: "operator_1"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), record.ID, types.UpdateHousingRecordInput{
		HeadOfHousehold: types.Null[string](),
	}, types.Actor{UserID: "operator_1"})
	assert.True(t, types.IsValidation(err))
}

func TestHousingUpdateChecksRelocationTarget(t *testing.T) {
	svc, _, _ := newHousingFixture()

	record, err := svc.Create(context.Background(), validHousingInput(), types.Actor{UserID: "operator_1"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), record.ID, types.UpdateHousingRecordInput{
		DistrictID: types.Some("district_2"),
		VillageID:  types.Some("village_1"),
	}, types.Actor{UserID: "operator_1"})
	assert.ErrorIs(t, err, types.ErrVillageMismatch)
}

func TestHousingVerifySetsVerifierAndTimestamp(t *testing.T) {
	svc, _, audit := newHousingFixture()

	record, err := svc.Create(context.Background(), validHousingInput(), types.Actor{UserID: "operator_1"})
	require.NoError(t, err)

	before := time.Now()
	verified, err := svc.Verify(context.Background(), record.ID, types.VerifyHousingRecordInput{Status: types.VerificationRejected}, types.Actor{UserID: "verifier_1"})
	require.NoError(t, err)

	assert.Equal(t, types.VerificationRejected, verified.VerificationStatus)
	require.NotNil(t, verified.VerifiedBy)
	assert.Equal(t, "verifier_1", *verified.VerifiedBy)
	require.NotNil(t, verified.VerifiedAt)
	assert.False(t, verified.VerifiedAt.Before(before))

	assert.Equal(t, types.AuditActionVerify, audit.last().Action)
	assert.Equal(t, string(types.VerificationRejected), audit.last().Details)
}

func TestHousingVerifyRejectsPendingTarget(t *testing.T) {
	svc, _, _ := newHousingFixture()

	record, err := svc.Create(context.Background(), validHousingInput(), types.Actor{UserID: "operator_1"})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), record.ID, types.VerifyHousingRecordInput{Status: types.VerificationPending}, types.Actor{UserID: "verifier_1"})
	assert.True(t, types.IsValidation(err))
}

func TestHousingVerifyOverwritesPriorDecision(t *testing.T) {
	svc, _, _ := newHousingFixture()
	record := verifiedRecord(t, svc)

	again, err := svc.Verify(context.Background(), record.ID, types.VerifyHousingRecordInput{Status: types.VerificationRejected}, types.Actor{UserID: "verifier_2"})
	require.NoError(t, err)

	assert.Equal(t, types.VerificationRejected, again.VerificationStatus)
	require.NotNil(t, again.VerifiedBy)
	assert.Equal(t, "verifier_2", *again.VerifiedBy)
}

func TestHousingDeleteRemovesRecord(t *testing.T) {
	svc, records, audit := newHousingFixture()

	record, err := svc.Create(context.Background(), validHousingInput(), types.Actor{UserID: "operator_1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), record.ID, types.Actor{UserID: "operator_1"}))

	_, err = records.HousingRecord(context.Background(), record.ID)
	assert.ErrorIs(t, err, types.ErrHousingRecordNotFound)
	assert.Equal(t, types.AuditActionDelete, audit.last().Action)
}

func TestHousingDeleteUnknownRecord(t *testing.T) {
	svc, _, _ := newHousingFixture()

	err := svc.Delete(context.Background(), "record_404", types.Actor{UserID: "operator_1"})
	assert.ErrorIs(t, err, types.ErrHousingRecordNotFound)
}
