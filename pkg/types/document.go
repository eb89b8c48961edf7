package types

import "time"

type DocumentType string

const (
	DocTypeLandCertificate  DocumentType = "LAND_CERTIFICATE"
	DocTypeIDCard           DocumentType = "ID_CARD"
	DocTypeFamilyCard       DocumentType = "FAMILY_CARD"
	DocTypeHousePhotoBefore DocumentType = "HOUSE_PHOTO_BEFORE"
	DocTypeHousePhotoAfter  DocumentType = "HOUSE_PHOTO_AFTER"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocTypeLandCertificate, DocTypeIDCard, DocTypeFamilyCard, DocTypeHousePhotoBefore, DocTypeHousePhotoAfter:
		return true
	}
	return false
}

// Document is a file attachment owned by exactly one housing record.
// Documents are created and deleted, never updated.
type Document struct {
	ID              string       `db:"id" json:"id"`
	HousingRecordID string       `db:"housing_record_id" json:"housing_record_id"`
	DocumentType    DocumentType `db:"document_type" json:"document_type"`
	Filename        string       `db:"filename" json:"filename"`
	FilePath        string       `db:"file_path" json:"file_path"`
	FileSize        int64        `db:"file_size" json:"file_size"`
	MimeType        string       `db:"mime_type" json:"mime_type"`
	UploadedBy      string       `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
}

type UploadDocumentInput struct {
	HousingRecordID string       `validate:"required"`
	DocumentType    DocumentType `validate:"required"`
	Filename        string       `validate:"required"`
	MimeType        string       `validate:"required"`
}
