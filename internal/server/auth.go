package server

import (
	"net/http"
	"time"

	"rutilahu/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	var input types.LoginInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	session, err := s.authSvc.Login(r.Context(), input, clientIP(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	encoded, err := s.cookie.Encode(s.config.CookieName, session.Token)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    encoded,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.config.Environment != "development",
		SameSite: http.SameSiteLaxMode,
	})

	s.respondJSON(w, http.StatusOK, session)
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Service) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input types.CreateUserInput
	if err := s.decodeBody(r, &input); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.authSvc.CreateUser(r.Context(), input, s.actorFromRequest(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, user)
}

func (s *Service) handleDeactivateUser(w http.ResponseWriter, r *http.Request) {
	userID := flow.Param(r.Context(), "userID")

	if err := s.authSvc.DeactivateUser(r.Context(), userID, s.actorFromRequest(r)); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
