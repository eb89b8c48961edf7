package server

import (
	"net/http"
	"time"

	"github.com/alexedwards/flow"
)

func (s *Service) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analyticsSvc.DashboardStats(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Service) handleStatsByDistrict(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analyticsSvc.HousingByDistrict(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Service) handleStatsByVillage(w http.ResponseWriter, r *http.Request) {
	districtID := flow.Param(r.Context(), "districtID")

	stats, err := s.analyticsSvc.HousingByVillage(r.Context(), districtID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Service) handleVerificationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.analyticsSvc.VerificationStats(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Service) handleEligibilityDistribution(w http.ResponseWriter, r *http.Request) {
	slices, err := s.analyticsSvc.EligibilityDistribution(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, slices)
}

type trendsQuery struct {
	Year int `form:"year"`
}

func (s *Service) handleMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	var query trendsQuery
	if err := s.decodeQuery(r, &query); err != nil {
		s.respondError(w, r, err)
		return
	}
	if query.Year == 0 {
		query.Year = time.Now().Year()
	}

	trends, err := s.analyticsSvc.MonthlyTrends(r.Context(), query.Year)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, trends)
}
