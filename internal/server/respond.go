package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"rutilahu/pkg/types"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses. Anything
// unrecognized is a 500 with the detail kept out of the response body.
func (s *Service) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Message, Field: ve.Field})
		return
	}

	switch {
	case types.IsNotFound(err):
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case types.IsConflict(err):
		s.respondJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrInvalidCredentials), errors.Is(err, types.ErrInvalidToken):
		s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, types.ErrAccountInactive), errors.Is(err, types.ErrForbidden):
		s.respondJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (s *Service) decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return types.NewValidationError("body", "malformed JSON payload")
	}
	return nil
}

func (s *Service) decodeQuery(r *http.Request, dst any) error {
	if err := decoder.Decode(dst, r.URL.Query()); err != nil {
		return types.NewValidationError("query", "malformed query parameters")
	}
	return nil
}
