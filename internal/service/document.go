package service

import (
	"context"
	"fmt"
	"io"

	"rutilahu/internal/utils"
	"rutilahu/pkg/types"

	"github.com/sirupsen/logrus"
)

type DocumentStore interface {
	Document(ctx context.Context, documentID string) (*types.Document, error)
	DocumentsByRecord(ctx context.Context, recordID string) ([]*types.Document, error)
	Create(ctx context.Context, doc *types.Document) error
	Delete(ctx context.Context, documentID string) error
}

// BlobStore is the opaque file store behind document uploads.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// DocumentService links uploaded files to housing records. Documents are
// immutable: create and delete only.
type DocumentService struct {
	documents DocumentStore
	records   HousingStore
	blobs     BlobStore
	keyPrefix string
	audit     Recorder
	logger    *logrus.Logger
}

func NewDocumentService(documents DocumentStore, records HousingStore, blobs BlobStore, keyPrefix string, audit Recorder, logger *logrus.Logger) *DocumentService {
	return &DocumentService{
		documents: documents,
		records:   records,
		blobs:     blobs,
		keyPrefix: keyPrefix,
		audit:     audit,
		logger:    logger,
	}
}

func (s *DocumentService) Upload(ctx context.Context, input types.UploadDocumentInput, content io.Reader, size int64, actor types.Actor) (*types.Document, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.DocumentType.Valid() {
		return nil, types.NewValidationError("document_type", "unknown document type")
	}

	if _, err := s.records.HousingRecord(ctx, input.HousingRecordID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/%s_%s", s.keyPrefix, input.HousingRecordID, utils.NanoIDSize(8), input.Filename)
	if err := s.blobs.Upload(ctx, key, input.MimeType, content); err != nil {
		return nil, fmt.Errorf("upload document blob: %w", err)
	}

	doc := &types.Document{
		HousingRecordID: input.HousingRecordID,
		DocumentType:    input.DocumentType,
		Filename:        input.Filename,
		FilePath:        key,
		FileSize:        size,
		MimeType:        input.MimeType,
		UploadedBy:      actor.UserID,
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		// Row insert failed after the blob landed; remove the orphan.
		if cleanupErr := s.blobs.Delete(ctx, key); cleanupErr != nil {
			s.logger.WithError(cleanupErr).WithField("key", key).Warn("failed to clean up orphaned blob")
		}
		return nil, err
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionCreate,
		ResourceType: "document",
		ResourceID:   doc.ID,
		Details:      string(doc.DocumentType),
		IPAddress:    actor.IPAddress,
	})

	return doc, nil
}

func (s *DocumentService) DocumentsByRecord(ctx context.Context, recordID string) ([]*types.Document, error) {
	if _, err := s.records.HousingRecord(ctx, recordID); err != nil {
		return nil, err
	}
	return s.documents.DocumentsByRecord(ctx, recordID)
}

func (s *DocumentService) Delete(ctx context.Context, documentID string, actor types.Actor) error {
	doc, err := s.documents.Document(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.documents.Delete(ctx, documentID); err != nil {
		return err
	}

	// Blob removal is best-effort once the row is gone.
	if err := s.blobs.Delete(ctx, doc.FilePath); err != nil {
		s.logger.WithError(err).WithField("key", doc.FilePath).Warn("failed to delete document blob")
	}

	s.audit.Record(ctx, types.AuditEvent{
		UserID:       actor.UserID,
		Action:       types.AuditActionDelete,
		ResourceType: "document",
		ResourceID:   documentID,
		IPAddress:    actor.IPAddress,
	})

	return nil
}
