package server

import (
	"net/http"

	"rutilahu/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleMapPoints(w http.ResponseWriter, r *http.Request) {
	var filter types.MapFilter
	if err := s.decodeQuery(r, &filter); err != nil {
		s.respondError(w, r, err)
		return
	}

	points, err := s.gisSvc.MapData(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, points)
}

func (s *Service) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	cells, err := s.gisSvc.HeatmapData(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, cells)
}

func (s *Service) handleDistrictBoundary(w http.ResponseWriter, r *http.Request) {
	districtID := flow.Param(r.Context(), "districtID")

	boundary, err := s.gisSvc.DistrictBoundary(r.Context(), districtID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, boundary)
}

func (s *Service) handleVillageBoundary(w http.ResponseWriter, r *http.Request) {
	villageID := flow.Param(r.Context(), "villageID")

	boundary, err := s.gisSvc.VillageBoundary(r.Context(), villageID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, boundary)
}
