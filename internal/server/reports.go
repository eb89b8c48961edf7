package server

import (
	"net/http"

	"rutilahu/pkg/types"
)

func (s *Service) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req types.ReportRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	file, err := s.reportSvc.Generate(r.Context(), req, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, file)
}
