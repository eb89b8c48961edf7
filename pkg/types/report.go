package types

type ReportKind string

const (
	ReportHousing      ReportKind = "housing"
	ReportBacklog      ReportKind = "backlog"
	ReportVerification ReportKind = "verification"
)

func (k ReportKind) Valid() bool {
	return k == ReportHousing || k == ReportBacklog || k == ReportVerification
}

type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

func (f ReportFormat) Valid() bool {
	return f == ReportFormatCSV || f == ReportFormatPDF
}

type ReportRequest struct {
	Kind       ReportKind   `json:"kind" validate:"required"`
	Format     ReportFormat `json:"format" validate:"required"`
	DistrictID string       `json:"district_id"`
	VillageID  string       `json:"village_id"`
	Year       int          `json:"year" validate:"gte=0"`
	Month      int          `json:"month" validate:"gte=0,lte=12"`
}

// RowSet is the tabular payload handed to a report exporter.
type RowSet struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// ReportFile describes a rendered report for downstream consumers.
type ReportFile struct {
	FileURL  string `json:"file_url"`
	Filename string `json:"filename"`
}
