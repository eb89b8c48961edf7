package store

import (
	"context"
	"fmt"
	"time"

	"rutilahu/internal/utils"
	"rutilahu/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditTableName = "rutilahu.audit_logs"

var auditColumns = utils.StructTagValues(types.AuditLog{})

// AuditRepository is append-only. There is no update or delete path and
// user_id carries no foreign key.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Append(ctx context.Context, entry *types.AuditLog) error {
	entry.ID = utils.NanoID()
	entry.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(auditTableName).
		SetMap(utils.StructToMap(entry)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate append audit query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to append audit entry")
}

func (r *AuditRepository) Query(ctx context.Context, filter types.AuditFilter) ([]*types.AuditLog, error) {
	builder := psql().
		Select(auditColumns...).
		From(auditTableName).
		OrderBy("created_at desc")

	if filter.UserID != "" {
		builder = builder.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.DateFrom != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *filter.DateTo})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate audit query: %w", err)
	}

	entries := make([]*types.AuditLog, 0)
	if err := pgxscan.Select(ctx, r.pool, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch audit entries: %w", err)
	}

	return entries, nil
}

func (r *AuditRepository) ByResource(ctx context.Context, resourceType, resourceID string) ([]*types.AuditLog, error) {
	query, args, err := psql().
		Select(auditColumns...).
		From(auditTableName).
		Where(sq.Eq{"resource_type": resourceType, "resource_id": resourceID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate audit-by-resource query: %w", err)
	}

	entries := make([]*types.AuditLog, 0)
	if err := pgxscan.Select(ctx, r.pool, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch audit entries by resource: %w", err)
	}

	return entries, nil
}

// CountSince counts entries created at or after since, optionally limited
// to a single action.
func (r *AuditRepository) CountSince(ctx context.Context, since time.Time, action types.AuditAction) (int64, error) {
	builder := psql().
		Select("count(*)").
		From(auditTableName).
		Where(sq.GtOrEq{"created_at": since})

	if action != "" {
		builder = builder.Where(sq.Eq{"action": action})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate audit count query: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	return count, nil
}
