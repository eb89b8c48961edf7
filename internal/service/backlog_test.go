package service

import (
	"context"
	"testing"

	"rutilahu/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBacklogFixture() (*BacklogService, *fakeBacklogStore, *recorderSpy) {
	districts := newFakeDistrictStore(
		&types.District{ID: "district_1", Name: "Sleman", Code: "34.04"},
	)
	villages := newFakeVillageStore(
		&types.Village{ID: "village_1", Name: "Caturtunggal", Code: "001", DistrictID: "district_1"},
	)
	backlogs := newFakeBacklogStore()
	audit := &recorderSpy{}

	return NewBacklogService(backlogs, districts, villages, audit, testLogger()), backlogs, audit
}

func validBacklogInput() types.CreateBacklogInput {
	return types.CreateBacklogInput{
		DistrictID:  "district_1",
		VillageID:   "village_1",
		BacklogType: types.BacklogNoHouse,
		FamilyCount: 12,
		Year:        2025,
		Month:       3,
	}
}

func TestBacklogCreate(t *testing.T) {
	svc, _, audit := newBacklogFixture()

	backlog, err := svc.Create(context.Background(), validBacklogInput(), types.Actor{UserID: "user_1"})
	require.NoError(t, err)

	assert.NotEmpty(t, backlog.ID)
	assert.Equal(t, 12, backlog.FamilyCount)
	assert.Equal(t, "user_1", backlog.CreatedBy)
	assert.Equal(t, types.AuditActionCreate, audit.last().Action)
}

func TestBacklogCreateRejectsDuplicateTuple(t *testing.T) {
	svc, _, _ := newBacklogFixture()

	_, err := svc.Create(context.Background(), validBacklogInput(), types.Actor{UserID: "user_1"})
	require.NoError(t, err)

	input := validBacklogInput()
	input.FamilyCount = 99
	_, err = svc.Create(context.Background(), input, types.Actor{UserID: "user_1"})
	assert.ErrorIs(t, err, types.ErrDuplicateBacklog)
}

func TestBacklogCreateAllowsDifferentType(t *testing.T) {
	svc, _, _ := newBacklogFixture()

	_, err := svc.Create(context.Background(), validBacklogInput(), types.Actor{UserID: "user_1"})
	require.NoError(t, err)

	input := validBacklogInput()
	input.BacklogType = types.BacklogUninhabitableHouse
	_, err = svc.Create(context.Background(), input, types.Actor{UserID: "user_1"})
	assert.NoError(t, err)
}

func TestBacklogUpdateFamilyCount(t *testing.T) {
	svc, backlogs, audit := newBacklogFixture()

	backlog, err := svc.Create(context.Background(), validBacklogInput(), types.Actor{UserID: "user_1"})
	require.NoError(t, err)

	updated, err := svc.UpdateFamilyCount(context.Background(), backlog.ID, 7, types.Actor{UserID: "user_1"})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.FamilyCount)
	assert.Equal(t, types.AuditActionUpdate, audit.last().Action)

	_, err = svc.UpdateFamilyCount(context.Background(), backlog.ID, -1, types.Actor{UserID: "user_1"})
	assert.True(t, types.IsValidation(err))

	stored, err := backlogs.Backlog(context.Background(), backlog.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.FamilyCount)
}

func TestBacklogsByDateRange(t *testing.T) {
	svc, backlogs, _ := newBacklogFixture()

	seed := []struct {
		year  int
		month int
	}{
		{2024, 11},
		{2024, 12},
		{2025, 1},
		{2025, 6},
		{2026, 2},
	}
	for i, p := range seed {
		require.NoError(t, backlogs.Create(context.Background(), &types.Backlog{
			DistrictID:  "district_1",
			VillageID:   "village_1",
			BacklogType: types.BacklogNoHouse,
			FamilyCount: i + 1,
			Year:        p.year,
			Month:       p.month,
		}))
	}

	// Range spanning a year boundary: months outside [start, end] on the
	// edge years must still be included when the (year, month) pair fits.
	out, err := svc.BacklogsByDateRange(context.Background(), 2024, 12, 2025, 6)
	require.NoError(t, err)
	assert.Len(t, out, 3)

	out, err = svc.BacklogsByDateRange(context.Background(), 2025, 1, 2025, 12)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = svc.BacklogsByDateRange(context.Background(), 2024, 11, 2026, 2)
	require.NoError(t, err)
	assert.Len(t, out, 5)
}

func TestBacklogsByDateRangeValidation(t *testing.T) {
	svc, _, _ := newBacklogFixture()

	_, err := svc.BacklogsByDateRange(context.Background(), 2025, 0, 2025, 6)
	assert.True(t, types.IsValidation(err))

	_, err = svc.BacklogsByDateRange(context.Background(), 2025, 1, 2025, 13)
	assert.True(t, types.IsValidation(err))

	_, err = svc.BacklogsByDateRange(context.Background(), 2025, 6, 2025, 1)
	assert.True(t, types.IsValidation(err))
}
