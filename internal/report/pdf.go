package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"rutilahu/pkg/types"

	"github.com/go-pdf/fpdf"
)

type PDFExporter struct {
	uploader  Uploader
	keyPrefix string
}

func NewPDFExporter(uploader Uploader, keyPrefix string) *PDFExporter {
	return &PDFExporter{uploader: uploader, keyPrefix: keyPrefix}
}

func (e *PDFExporter) Export(ctx context.Context, req types.ReportRequest, rows types.RowSet) (*types.ReportFile, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, rows.Title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	colWidth := usable
	if len(rows.Columns) > 0 {
		colWidth = usable / float64(len(rows.Columns))
	}

	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range rows.Columns {
		pdf.CellFormat(colWidth, 7, col, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows.Rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf report: %w", err)
	}

	filename := Filename(req.Kind, time.Now(), req.DistrictID, req.VillageID, req.Month, "pdf")
	key := e.keyPrefix + "/" + filename

	if err := e.uploader.Upload(ctx, key, "application/pdf", &buf); err != nil {
		return nil, fmt.Errorf("upload pdf report: %w", err)
	}

	return &types.ReportFile{FileURL: e.uploader.URL(key), Filename: filename}, nil
}
