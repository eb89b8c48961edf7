// Package report renders row-sets into downloadable files. The filename
// layout is a contract with downstream consumers; change it and their
// ingest jobs break.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"rutilahu/pkg/types"
)

// Exporter consumes a tabular row-set and returns a file descriptor for
// the rendered report.
type Exporter interface {
	Export(ctx context.Context, req types.ReportRequest, rows types.RowSet) (*types.ReportFile, error)
}

// Uploader stores a rendered file and resolves its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	URL(key string) string
}

// Filename builds
// <kind>_<YYYY-MM-DD>[_district_<id>|_village_<id>][_<month2>].<ext>.
// District takes precedence over village when both are set.
func Filename(kind types.ReportKind, date time.Time, districtID, villageID string, month int, ext string) string {
	name := fmt.Sprintf("%s_%s", kind, date.Format("2006-01-02"))

	switch {
	case districtID != "":
		name += "_district_" + districtID
	case villageID != "":
		name += "_village_" + villageID
	}

	if month >= 1 && month <= 12 {
		name += fmt.Sprintf("_%02d", month)
	}

	return name + "." + ext
}
