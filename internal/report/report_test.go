package report

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"rutilahu/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploaderSpy struct {
	key         string
	contentType string
	body        string
}

func (u *uploaderSpy) Upload(_ context.Context, key, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	u.key = key
	u.contentType = contentType
	u.body = string(data)
	return nil
}

func (u *uploaderSpy) URL(key string) string {
	return "https://blobs.test/" + key
}

func TestFilename(t *testing.T) {
	date := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		kind       types.ReportKind
		districtID string
		villageID  string
		month      int
		ext        string
		want       string
	}{
		{
			name: "bare",
			kind: types.ReportHousing,
			ext:  "csv",
			want: "housing_2025-06-15.csv",
		},
		{
			name:       "district scoped",
			kind:       types.ReportHousing,
			districtID: "district_1",
			ext:        "pdf",
			want:       "housing_2025-06-15_district_district_1.pdf",
		},
		{
			name:      "village scoped with month",
			kind:      types.ReportBacklog,
			villageID: "village_7",
			month:     3,
			ext:       "csv",
			want:      "backlog_2025-06-15_village_village_7_03.csv",
		},
		{
			name:       "district wins over village",
			kind:       types.ReportVerification,
			districtID: "district_1",
			villageID:  "village_7",
			ext:        "csv",
			want:       "verification_2025-06-15_district_district_1.csv",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Filename(tc.kind, date, tc.districtID, tc.villageID, tc.month, tc.ext)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCSVExporter(t *testing.T) {
	uploader := &uploaderSpy{}
	exporter := NewCSVExporter(uploader, "reports")

	rows := types.RowSet{
		Title:   "Housing Records",
		Columns: []string{"ID", "Name"},
		Rows: [][]string{
			{"record_1", "Budi Santoso"},
			{"record_2", "Siti Aminah"},
		},
	}

	file, err := exporter.Export(context.Background(), types.ReportRequest{
		Kind:   types.ReportHousing,
		Format: types.ReportFormatCSV,
	}, rows)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", uploader.contentType)
	assert.True(t, strings.HasPrefix(uploader.key, "reports/housing_"))
	assert.Equal(t, "https://blobs.test/"+uploader.key, file.FileURL)

	lines := strings.Split(strings.TrimSpace(uploader.body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name", lines[0])
	assert.Equal(t, "record_1,Budi Santoso", lines[1])
}

func TestPDFExporter(t *testing.T) {
	uploader := &uploaderSpy{}
	exporter := NewPDFExporter(uploader, "reports")

	rows := types.RowSet{
		Title:   "Verification Summary",
		Columns: []string{"Status", "Count"},
		Rows:    [][]string{{"PENDING", "3"}},
	}

	file, err := exporter.Export(context.Background(), types.ReportRequest{
		Kind:   types.ReportVerification,
		Format: types.ReportFormatPDF,
	}, rows)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", uploader.contentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(uploader.body, "%PDF"))
}
