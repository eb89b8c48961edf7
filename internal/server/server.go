// Package server is the JSON HTTP surface. Handlers decode, call the
// service layer and respond; no business rule lives here.
package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"rutilahu/internal/auth"
	"rutilahu/internal/service"
	"rutilahu/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	cookie *securecookie.SecureCookie
	tokens *auth.TokenIssuer

	authSvc      *service.AuthService
	referenceSvc *service.ReferenceService
	housingSvc   *service.HousingService
	documentSvc  *service.DocumentService
	backlogSvc   *service.BacklogService
	auditSvc     *service.AuditService
	analyticsSvc *service.AnalyticsService
	gisSvc       *service.GISService
	reportSvc    *service.ReportService

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	tokens *auth.TokenIssuer,
	authSvc *service.AuthService,
	referenceSvc *service.ReferenceService,
	housingSvc *service.HousingService,
	documentSvc *service.DocumentService,
	backlogSvc *service.BacklogService,
	auditSvc *service.AuditService,
	analyticsSvc *service.AnalyticsService,
	gisSvc *service.GISService,
	reportSvc *service.ReportService,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie hash key: %w", err)
	}
	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("decode cookie block key: %w", err)
	}

	s := &Service{
		logger: logger,
		config: config,
		cookie: securecookie.New(hashKey, blockKey),
		tokens: tokens,

		authSvc:      authSvc,
		referenceSvc: referenceSvc,
		housingSvc:   housingSvc,
		documentSvc:  documentSvc,
		backlogSvc:   backlogSvc,
		auditSvc:     auditSvc,
		analyticsSvc: analyticsSvc,
		gisSvc:       gisSvc,
		reportSvc:    reportSvc,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/v1/auth/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/v1/auth/logout", s.handleLogout, http.MethodPost)

	// Public read surface: reference data, aggregates and the map.
	r.HandleFunc("/v1/districts", s.handleListDistricts, http.MethodGet)
	r.HandleFunc("/v1/districts/:districtID/villages", s.handleListVillages, http.MethodGet)

	r.HandleFunc("/v1/analytics/dashboard", s.handleDashboardStats, http.MethodGet)
	r.HandleFunc("/v1/analytics/districts", s.handleStatsByDistrict, http.MethodGet)
	r.HandleFunc("/v1/analytics/districts/:districtID/villages", s.handleStatsByVillage, http.MethodGet)
	r.HandleFunc("/v1/analytics/verification", s.handleVerificationStats, http.MethodGet)
	r.HandleFunc("/v1/analytics/eligibility", s.handleEligibilityDistribution, http.MethodGet)
	r.HandleFunc("/v1/analytics/trends", s.handleMonthlyTrends, http.MethodGet)

	r.HandleFunc("/v1/map/points", s.handleMapPoints, http.MethodGet)
	r.HandleFunc("/v1/map/heatmap", s.handleHeatmap, http.MethodGet)
	r.HandleFunc("/v1/map/districts/:districtID/boundary", s.handleDistrictBoundary, http.MethodGet)
	r.HandleFunc("/v1/map/villages/:villageID/boundary", s.handleVillageBoundary, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/v1/housing", s.handleCreateHousingRecord, http.MethodPost)
		r.HandleFunc("/v1/housing", s.handleListHousingRecords, http.MethodGet)
		r.HandleFunc("/v1/housing/:recordID", s.handleGetHousingRecord, http.MethodGet)
		r.HandleFunc("/v1/housing/:recordID", s.handleUpdateHousingRecord, http.MethodPatch)
		r.HandleFunc("/v1/housing/:recordID", s.handleDeleteHousingRecord, http.MethodDelete)
		r.HandleFunc("/v1/housing/:recordID/coordinates", s.handleUpdateCoordinates, http.MethodPut)

		r.HandleFunc("/v1/housing/:recordID/documents", s.handleUploadDocument, http.MethodPost)
		r.HandleFunc("/v1/housing/:recordID/documents", s.handleListDocuments, http.MethodGet)
		r.HandleFunc("/v1/documents/:documentID", s.handleDeleteDocument, http.MethodDelete)

		r.HandleFunc("/v1/backlogs", s.handleCreateBacklog, http.MethodPost)
		r.HandleFunc("/v1/backlogs", s.handleListBacklogs, http.MethodGet)
		r.HandleFunc("/v1/backlogs/:backlogID/count", s.handleUpdateBacklogCount, http.MethodPut)

		r.HandleFunc("/v1/reports", s.handleGenerateReport, http.MethodPost)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireRole(types.RolePUPRAdmin, types.RoleDistrictOperator))

		r.HandleFunc("/v1/housing/:recordID/verify", s.handleVerifyHousingRecord, http.MethodPut)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireRole(types.RolePUPRAdmin, types.RoleKominfoAdmin))

		r.HandleFunc("/v1/districts", s.handleCreateDistrict, http.MethodPost)
		r.HandleFunc("/v1/districts/:districtID/villages", s.handleCreateVillage, http.MethodPost)

		r.HandleFunc("/v1/users", s.handleCreateUser, http.MethodPost)
		r.HandleFunc("/v1/users/:userID/deactivate", s.handleDeactivateUser, http.MethodPut)

		r.HandleFunc("/v1/audit", s.handleQueryAudit, http.MethodGet)
		r.HandleFunc("/v1/audit/security-report", s.handleSecurityReport, http.MethodGet)
		r.HandleFunc("/v1/audit/:resourceType/:resourceID", s.handleAuditByResource, http.MethodGet)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) principalFromContext(ctx context.Context) (*types.Principal, error) {
	principal, ok := ctx.Value(contextKeyPrincipal).(*types.Principal)
	if !ok {
		return nil, fmt.Errorf("principal not found in context")
	}
	return principal, nil
}

func (s *Service) actorFromRequest(r *http.Request) types.Actor {
	actor := types.Actor{IPAddress: clientIP(r)}
	if principal, err := s.principalFromContext(r.Context()); err == nil {
		actor.UserID = principal.UserID
	}
	return actor
}
