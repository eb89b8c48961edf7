package server

import (
	"net/http"

	"rutilahu/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleQueryAudit(w http.ResponseWriter, r *http.Request) {
	var filter types.AuditFilter
	if err := s.decodeQuery(r, &filter); err != nil {
		s.respondError(w, r, err)
		return
	}

	entries, err := s.auditSvc.Query(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, entries)
}

func (s *Service) handleAuditByResource(w http.ResponseWriter, r *http.Request) {
	resourceType := flow.Param(r.Context(), "resourceType")
	resourceID := flow.Param(r.Context(), "resourceID")

	entries, err := s.auditSvc.ByResource(r.Context(), resourceType, resourceID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, entries)
}

func (s *Service) handleSecurityReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.auditSvc.SecurityReport(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}
