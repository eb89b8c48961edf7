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

const backlogTableName = "rutilahu.backlogs"

var backlogColumns = utils.StructTagValues(types.Backlog{})

type BacklogRepository struct {
	pool *pgxpool.Pool
}

func NewBacklogRepository(pool *pgxpool.Pool) *BacklogRepository {
	return &BacklogRepository{pool: pool}
}

func (r *BacklogRepository) Backlog(ctx context.Context, backlogID string) (*types.Backlog, error) {
	query, args, err := psql().
		Select(backlogColumns...).
		From(backlogTableName).
		Where(sq.Eq{"id": backlogID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate backlog query: %w", err)
	}

	var backlog types.Backlog
	err = pgxscan.Get(ctx, r.pool, &backlog, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrBacklogNotFound
		}
		return nil, fmt.Errorf("failed to fetch backlog: %w", err)
	}

	return &backlog, nil
}

// TupleExists checks the five-tuple uniqueness constraint ahead of the
// insert so the caller gets a precise already-exists signal.
func (r *BacklogRepository) TupleExists(ctx context.Context, districtID, villageID string, backlogType types.BacklogType, year, month int) (bool, error) {
	query, args, err := psql().
		Select("count(*)").
		From(backlogTableName).
		Where(sq.Eq{
			"district_id":  districtID,
			"village_id":   villageID,
			"backlog_type": backlogType,
			"year":         year,
			"month":        month,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate backlog tuple query: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check backlog tuple: %w", err)
	}

	return count > 0, nil
}

func (r *BacklogRepository) Create(ctx context.Context, backlog *types.Backlog) error {
	now := time.Now()
	backlog.ID = utils.NanoID()
	backlog.CreatedAt = now
	backlog.UpdatedAt = now

	query, args, err := psql().
		Insert(backlogTableName).
		SetMap(utils.StructToMap(backlog)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create backlog query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "backlogs_location_type_period_key") {
			return types.ErrDuplicateBacklog
		}
		return fmt.Errorf("failed to create backlog: %w", err)
	}

	return nil
}

func (r *BacklogRepository) UpdateFamilyCount(ctx context.Context, backlogID string, familyCount int) error {
	query, args, err := psql().
		Update(backlogTableName).
		Set("family_count", familyCount).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": backlogID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update family count query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update family count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrBacklogNotFound
	}

	return nil
}

// BacklogsByPeriodRange returns entries with (year, month) inside the
// inclusive range, compared lexicographically on the pair.
func (r *BacklogRepository) BacklogsByPeriodRange(ctx context.Context, from, to types.Period) ([]*types.Backlog, error) {
	lowerBound := sq.Or{
		sq.Gt{"year": from.Year},
		sq.And{sq.Eq{"year": from.Year}, sq.GtOrEq{"month": from.Month}},
	}
	upperBound := sq.Or{
		sq.Lt{"year": to.Year},
		sq.And{sq.Eq{"year": to.Year}, sq.LtOrEq{"month": to.Month}},
	}

	query, args, err := psql().
		Select(backlogColumns...).
		From(backlogTableName).
		Where(sq.And{lowerBound, upperBound}).
		OrderBy("year asc", "month asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate backlog range query: %w", err)
	}

	backlogs := make([]*types.Backlog, 0)
	if err := pgxscan.Select(ctx, r.pool, &backlogs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch backlogs by range: %w", err)
	}

	return backlogs, nil
}
