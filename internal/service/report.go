package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"rutilahu/internal/report"
	"rutilahu/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ReportService turns the live dataset into downloadable exports. Every
// export lands in the audit trail; the security report counts on that.
type ReportService struct {
	records   HousingStore
	backlogs  BacklogStore
	analytics AnalyticsStore
	exporters map[types.ReportFormat]report.Exporter
	audit     Recorder
	logger    *logrus.Logger
}

func NewReportService(records HousingStore, backlogs BacklogStore, analytics AnalyticsStore, exporters map[types.ReportFormat]report.Exporter, audit Recorder, logger *logrus.Logger) *ReportService {
	return &ReportService{
		records:   records,
		backlogs:  backlogs,
		analytics: analytics,
		exporters: exporters,
		audit:     audit,
		logger:    logger,
	}
}

func (s *ReportService) Generate(ctx context.Context, req types.ReportRequest, actor types.Actor) (*types.ReportFile, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if !req.Kind.Valid() {
		return nil, types.NewValidationError("kind", "unknown report kind")
	}
	if !req.Format.Valid() {
		return nil, types.NewValidationError("format", "unknown report format")
	}

	exporter, ok := s.exporters[req.Format]
	if !ok {
		return nil, types.NewValidationError("format", "no exporter registered for format")
	}

	var (
		rows *types.RowSet
		err  error
	)
	switch req.Kind {
	case types.ReportHousing:
		rows, err = s.housingRows(ctx, req)
	case types.ReportBacklog:
		rows, err = s.backlogRows(ctx, req)
	case types.ReportVerification:
		rows, err = s.verificationRows(ctx)
	}
	if err != nil {
		return nil, err
	}

	file, err := exporter.Export(ctx, req, *rows)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionExport,
		ResourceType: "report",
		Details:      fmt.Sprintf("%s/%s", req.Kind, req.Format),
		IPAddress:    actor.IPAddress,
	})

	return file, nil
}

func (s *ReportService) housingRows(ctx context.Context, req types.ReportRequest) (*types.RowSet, error) {
	var (
		records []*types.HousingRecord
		err     error
	)
	switch {
	case req.DistrictID != "":
		records, err = s.records.HousingRecordsByDistrict(ctx, req.DistrictID)
	case req.VillageID != "":
		records, err = s.records.HousingRecordsByVillage(ctx, req.VillageID)
	default:
		records, err = s.records.HousingRecords(ctx)
	}
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID,
			r.HeadOfHousehold,
			r.NIK,
			string(r.HousingStatus),
			string(r.EligibilityCategory),
			string(r.VerificationStatus),
			r.DistrictID,
			r.VillageID,
			r.Address,
			strconv.Itoa(r.FamilyMembers),
			decimalOrEmpty(r.MonthlyIncome),
			r.CreatedAt.Format("2006-01-02"),
		})
	}

	return &types.RowSet{
		Title:   "Housing Records",
		Columns: []string{"ID", "Head of Household", "NIK", "Status", "Eligibility", "Verification", "District", "Village", "Address", "Family Members", "Monthly Income", "Created"},
		Rows:    rows,
	}, nil
}

func (s *ReportService) backlogRows(ctx context.Context, req types.ReportRequest) (*types.RowSet, error) {
	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	from := types.Period{Year: year, Month: 1}
	to := types.Period{Year: year, Month: 12}
	if req.Month >= 1 && req.Month <= 12 {
		from.Month = req.Month
		to.Month = req.Month
	}

	backlogs, err := s.backlogs.BacklogsByPeriodRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(backlogs))
	for _, b := range backlogs {
		if req.DistrictID != "" && b.DistrictID != req.DistrictID {
			continue
		}
		if req.VillageID != "" && b.VillageID != req.VillageID {
			continue
		}
		rows = append(rows, []string{
			b.ID,
			b.DistrictID,
			b.VillageID,
			string(b.BacklogType),
			strconv.Itoa(b.FamilyCount),
			strconv.Itoa(b.Year),
			strconv.Itoa(b.Month),
		})
	}

	return &types.RowSet{
		Title:   fmt.Sprintf("Housing Backlog %d", year),
		Columns: []string{"ID", "District", "Village", "Type", "Family Count", "Year", "Month"},
		Rows:    rows,
	}, nil
}

func (s *ReportService) verificationRows(ctx context.Context) (*types.RowSet, error) {
	counts, err := s.analytics.VerificationCounts(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{string(c.Status), strconv.FormatInt(c.Count, 10)})
	}

	return &types.RowSet{
		Title:   "Verification Summary",
		Columns: []string{"Status", "Count"},
		Rows:    rows,
	}, nil
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(currencyPlaces)
}
