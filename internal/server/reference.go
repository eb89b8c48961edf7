package server

import (
	"net/http"

	"rutilahu/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleListDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := s.referenceSvc.Districts(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, districts)
}

func (s *Service) handleListVillages(w http.ResponseWriter, r *http.Request) {
	districtID := flow.Param(r.Context(), "districtID")

	villages, err := s.referenceSvc.VillagesByDistrict(r.Context(), districtID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, villages)
}

func (s *Service) handleCreateDistrict(w http.ResponseWriter, r *http.Request) {
	var input types.CreateDistrictInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	district, err := s.referenceSvc.CreateDistrict(r.Context(), input, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, district)
}

func (s *Service) handleCreateVillage(w http.ResponseWriter, r *http.Request) {
	var input types.CreateVillageInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}
	input.DistrictID = flow.Param(r.Context(), "districtID")

	village, err := s.referenceSvc.CreateVillage(r.Context(), input, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, village)
}
