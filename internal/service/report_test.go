package service

import (
	"context"
	"testing"

	"rutilahu/internal/report"
	"rutilahu/internal/store"
	"rutilahu/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exporterSpy struct {
	lastReq  types.ReportRequest
	lastRows types.RowSet
}

func (e *exporterSpy) Export(_ context.Context, req types.ReportRequest, rows types.RowSet) (*types.ReportFile, error) {
	e.lastReq = req
	e.lastRows = rows
	return &types.ReportFile{FileURL: "https://blobs.test/reports/out.csv", Filename: "out.csv"}, nil
}

func newReportFixture(records ...*types.HousingRecord) (*ReportService, *exporterSpy, *fakeBacklogStore, *recorderSpy) {
	housing := newFakeHousingStore(records...)
	backlogs := newFakeBacklogStore()
	analytics := &fakeAnalyticsStore{
		verification: []*store.StatusCount{
			{Status: types.VerificationPending, Count: 3},
			{Status: types.VerificationVerified, Count: 9},
		},
	}
	spy := &exporterSpy{}
	audit := &recorderSpy{}

	exporters := map[types.ReportFormat]report.Exporter{
		types.ReportFormatCSV: spy,
	}

	svc := NewReportService(housing, backlogs, analytics, exporters, audit, testLogger())
	return svc, spy, backlogs, audit
}

func TestGenerateHousingReport(t *testing.T) {
	svc, spy, _, audit := newReportFixture(
		&types.HousingRecord{ID: "record_1", NIK: "3404012345678901", DistrictID: "district_1", VillageID: "village_1", FamilyMembers: 4},
		&types.HousingRecord{ID: "record_2", NIK: "3404012345678902", DistrictID: "district_2", VillageID: "village_9", FamilyMembers: 2},
	)

	file, err := svc.Generate(context.Background(), types.ReportRequest{
		Kind:       types.ReportHousing,
		Format:     types.ReportFormatCSV,
		DistrictID: "district_1",
	}, types.Actor{UserID: "admin_1", IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, "out.csv", file.Filename)
	require.Len(t, spy.lastRows.Rows, 1)
	assert.Equal(t, "record_1", spy.lastRows.Rows[0][0])
	assert.Len(t, spy.lastRows.Rows[0], len(spy.lastRows.Columns))

	require.Len(t, audit.events, 1)
	assert.Equal(t, types.AuditActionExport, audit.last().Action)
	assert.Equal(t, "housing/csv", audit.last().Details)
}

func TestGenerateBacklogReportScopesYearAndMonth(t *testing.T) {
	svc, spy, backlogs, _ := newReportFixture()

	seed := []*types.Backlog{
		{DistrictID: "district_1", VillageID: "village_1", BacklogType: types.BacklogNoHouse, FamilyCount: 3, Year: 2025, Month: 2},
		{DistrictID: "district_1", VillageID: "village_1", BacklogType: types.BacklogNoHouse, FamilyCount: 5, Year: 2025, Month: 7},
		{DistrictID: "district_2", VillageID: "village_9", BacklogType: types.BacklogNoHouse, FamilyCount: 8, Year: 2025, Month: 7},
		{DistrictID: "district_1", VillageID: "village_1", BacklogType: types.BacklogNoHouse, FamilyCount: 2, Year: 2024, Month: 7},
	}
	for _, b := range seed {
		require.NoError(t, backlogs.Create(context.Background(), b))
	}

	_, err := svc.Generate(context.Background(), types.ReportRequest{
		Kind:       types.ReportBacklog,
		Format:     types.ReportFormatCSV,
		DistrictID: "district_1",
		Year:       2025,
		Month:      7,
	}, types.Actor{UserID: "admin_1"})
	require.NoError(t, err)

	require.Len(t, spy.lastRows.Rows, 1)
	assert.Equal(t, "5", spy.lastRows.Rows[0][4])
}

func TestGenerateVerificationReport(t *testing.T) {
	svc, spy, _, _ := newReportFixture()

	_, err := svc.Generate(context.Background(), types.ReportRequest{
		Kind:   types.ReportVerification,
		Format: types.ReportFormatCSV,
	}, types.Actor{UserID: "admin_1"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Status", "Count"}, spy.lastRows.Columns)
	assert.Len(t, spy.lastRows.Rows, 2)
}

func TestGenerateRejectsUnknownKindAndFormat(t *testing.T) {
	svc, _, _, audit := newReportFixture()

	_, err := svc.Generate(context.Background(), types.ReportRequest{
		Kind:   "census",
		Format: types.ReportFormatCSV,
	}, types.Actor{UserID: "admin_1"})
	assert.True(t, types.IsValidation(err))

	_, err = svc.Generate(context.Background(), types.ReportRequest{
		Kind:   types.ReportHousing,
		Format: "xlsx",
	}, types.Actor{UserID: "admin_1"})
	assert.True(t, types.IsValidation(err))

	_, err = svc.Generate(context.Background(), types.ReportRequest{
		Kind:   types.ReportHousing,
		Format: types.ReportFormatPDF,
	}, types.Actor{UserID: "admin_1"})
	assert.True(t, types.IsValidation(err))

	// Nothing exported, nothing audited.
	assert.Empty(t, audit.events)
}
