package server

import (
	"net/http"

	"rutilahu/pkg/types"

	"github.com/alexedwards/flow"
)

// Upload payloads are capped well above any survey photo or scan.
const maxUploadBytes = 32 << 20

func (s *Service) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	recordID := flow.Param(r.Context(), "recordID")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, r, types.NewValidationError("body", "malformed multipart payload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, types.NewValidationError("file", "file part is required"))
		return
	}
	defer file.Close()

	input := types.UploadDocumentInput{
		HousingRecordID: recordID,
		DocumentType:    types.DocumentType(r.FormValue("document_type")),
		Filename:        header.Filename,
		MimeType:        header.Header.Get("Content-Type"),
	}

	doc, err := s.documentSvc.Upload(r.Context(), input, file, header.Size, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Service) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	recordID := flow.Param(r.Context(), "recordID")

	docs, err := s.documentSvc.DocumentsByRecord(r.Context(), recordID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, docs)
}

func (s *Service) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID := flow.Param(r.Context(), "documentID")

	if err := s.documentSvc.Delete(r.Context(), documentID, s.actorFromRequest(r)); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
