package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"rutilahu/pkg/types"
)

type CSVExporter struct {
	uploader  Uploader
	keyPrefix string
}

func NewCSVExporter(uploader Uploader, keyPrefix string) *CSVExporter {
	return &CSVExporter{uploader: uploader, keyPrefix: keyPrefix}
}

func (e *CSVExporter) Export(ctx context.Context, req types.ReportRequest, rows types.RowSet) (*types.ReportFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(rows.Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	filename := Filename(req.Kind, time.Now(), req.DistrictID, req.VillageID, req.Month, "csv")
	key := e.keyPrefix + "/" + filename

	if err := e.uploader.Upload(ctx, key, "text/csv", &buf); err != nil {
		return nil, fmt.Errorf("upload csv report: %w", err)
	}

	return &types.ReportFile{FileURL: e.uploader.URL(key), Filename: filename}, nil
}
