package server

import (
	"net/http"

	"rutilahu/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/shopspring/decimal"
)

type housingListQuery struct {
	DistrictID string `form:"district_id"`
	VillageID  string `form:"village_id"`
}

func (s *Service) handleCreateHousingRecord(w http.ResponseWriter, r *http.Request) {
	var input types.CreateHousingRecordInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	record, err := s.housingSvc.Create(r.Context(), input, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, record)
}

func (s *Service) handleListHousingRecords(w http.ResponseWriter, r *http.Request) {
	var query housingListQuery
	if err := s.decodeQuery(r, &query); err != nil {
		s.respondError(w, r, err)
		return
	}

	var (
		records []*types.HousingRecord
		err     error
	)
	switch {
	case query.DistrictID != "":
		records, err = s.housingSvc.HousingRecordsByDistrict(r.Context(), query.DistrictID)
	case query.VillageID != "":
		records, err = s.housingSvc.HousingRecordsByVillage(r.Context(), query.VillageID)
	default:
		records, err = s.housingSvc.HousingRecords(r.Context())
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, records)
}

func (s *Service) handleGetHousingRecord(w http.ResponseWriter, r *http.Request) {
	recordID := flow.Param(r.Context(), "recordID")

	record, err := s.housingSvc.HousingRecord(r.Context(), recordID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, record)
}

func (s *Service) handleUpdateHousingRecord(w http.ResponseWriter, r *http.Request) {
	recordID := flow.Param(r.Context(), "recordID")

	var input types.UpdateHousingRecordInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	record, err := s.housingSvc.Update(r.Context(), recordID, input, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, record)
}

func (s *Service) handleVerifyHousingRecord(w http.ResponseWriter, r *http.Request) {
	recordID := flow.Param(r.Context(), "recordID")

	var input types.VerifyHousingRecordInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	record, err := s.housingSvc.Verify(r.Context(), recordID, input, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, record)
}

func (s *Service) handleDeleteHousingRecord(w http.ResponseWriter, r *http.Request) {
	recordID := flow.Param(r.Context(), "recordID")

	if err := s.housingSvc.Delete(r.Context(), recordID, s.actorFromRequest(r)); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type coordinatesInput struct {
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
}

func (s *Service) handleUpdateCoordinates(w http.ResponseWriter, r *http.Request) {
	recordID := flow.Param(r.Context(), "recordID")

	var input coordinatesInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.gisSvc.UpdateCoordinates(r.Context(), recordID, input.Latitude, input.Longitude, s.actorFromRequest(r)); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
