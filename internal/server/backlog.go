package server

import (
	"net/http"

	"rutilahu/pkg/types"

	"github.com/alexedwards/flow"
)

type backlogRangeQuery struct {
	StartYear  int `form:"start_year"`
	StartMonth int `form:"start_month"`
	EndYear    int `form:"end_year"`
	EndMonth   int `form:"end_month"`
}

func (s *Service) handleCreateBacklog(w http.ResponseWriter, r *http.Request) {
	var input types.CreateBacklogInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	backlog, err := s.backlogSvc.Create(r.Context(), input, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, backlog)
}

func (s *Service) handleListBacklogs(w http.ResponseWriter, r *http.Request) {
	var query backlogRangeQuery
	if err := s.decodeQuery(r, &query); err != nil {
		s.respondError(w, r, err)
		return
	}

	backlogs, err := s.backlogSvc.BacklogsByDateRange(r.Context(), query.StartYear, query.StartMonth, query.EndYear, query.EndMonth)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, backlogs)
}

type backlogCountInput struct {
	FamilyCount int `json:"family_count"`
}

func (s *Service) handleUpdateBacklogCount(w http.ResponseWriter, r *http.Request) {
	backlogID := flow.Param(r.Context(), "backlogID")

	var input backlogCountInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	backlog, err := s.backlogSvc.UpdateFamilyCount(r.Context(), backlogID, input.FamilyCount, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, backlog)
}
