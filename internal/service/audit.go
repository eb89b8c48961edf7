package service

import (
	"context"
	"math"
	"time"

	"rutilahu/pkg/types"

	"github.com/sirupsen/logrus"
)

type AuditStore interface {
	Append(ctx context.Context, entry *types.AuditLog) error
	Query(ctx context.Context, filter types.AuditFilter) ([]*types.AuditLog, error)
	ByResource(ctx context.Context, resourceType, resourceID string) ([]*types.AuditLog, error)
	CountSince(ctx context.Context, since time.Time, action types.AuditAction) (int64, error)
}

// AuditService owns the append-only forensic trail. Appends never reject a
// dangling user id, and a failed append never propagates to the mutation
// that emitted the event.
type AuditService struct {
	store  AuditStore
	logger *logrus.Logger
	now    func() time.Time
}

func NewAuditService(store AuditStore, logger *logrus.Logger) *AuditService {
	return &AuditService{store: store, logger: logger, now: time.Now}
}

// Record persists one audit event, best-effort. Errors are surfaced in the
// logs only.
func (s *AuditService) Record(ctx context.Context, event types.AuditEvent) {
	entry := &types.AuditLog{
		UserID:       event.UserID,
		Action:       event.Action,
		ResourceType: event.ResourceType,
	}
	if event.ResourceID != "" {
		entry.ResourceID = &event.ResourceID
	}
	if event.Details != "" {
		entry.Details = &event.Details
	}
	if event.IPAddress != "" {
		entry.IPAddress = &event.IPAddress
	}

	if err := s.store.Append(ctx, entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"action":        event.Action,
			"resource_type": event.ResourceType,
			"resource_id":   event.ResourceID,
		}).Error("failed to append audit entry")
	}
}

func (s *AuditService) Query(ctx context.Context, filter types.AuditFilter) ([]*types.AuditLog, error) {
	return s.store.Query(ctx, filter)
}

func (s *AuditService) ByResource(ctx context.Context, resourceType, resourceID string) ([]*types.AuditLog, error) {
	if resourceType == "" || resourceID == "" {
		return nil, types.NewValidationError("resource", "resource_type and resource_id are required")
	}
	return s.store.ByResource(ctx, resourceType, resourceID)
}

// SecurityReport derives counts over fixed windows: seven days for the
// login/export/change counters, one day for the suspicious-activity
// sample. The suspicious metric is floor(0.1 * yesterday's volume).
func (s *AuditService) SecurityReport(ctx context.Context) (*types.SecurityReport, error) {
	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)
	dayAgo := now.AddDate(0, 0, -1)

	failedLogins, err := s.store.CountSince(ctx, weekAgo, types.AuditActionLogin)
	if err != nil {
		return nil, err
	}

	dataExports, err := s.store.CountSince(ctx, weekAgo, types.AuditActionExport)
	if err != nil {
		return nil, err
	}

	recentChanges, err := s.store.CountSince(ctx, weekAgo, "")
	if err != nil {
		return nil, err
	}

	lastDay, err := s.store.CountSince(ctx, dayAgo, "")
	if err != nil {
		return nil, err
	}

	return &types.SecurityReport{
		FailedLogins:         failedLogins,
		DataExports:          dataExports,
		RecentChanges:        recentChanges,
		SuspiciousActivities: int64(math.Floor(0.1 * float64(lastDay))),
	}, nil
}
