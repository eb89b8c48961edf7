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

const districtTableName = "rutilahu.districts"

var districtColumns = utils.StructTagValues(types.District{})

type DistrictRepository struct {
	pool *pgxpool.Pool
}

func NewDistrictRepository(pool *pgxpool.Pool) *DistrictRepository {
	return &DistrictRepository{pool: pool}
}

func (r *DistrictRepository) District(ctx context.Context, districtID string) (*types.District, error) {
	query, args, err := psql().
		Select(districtColumns...).
		From(districtTableName).
		Where(sq.Eq{"id": districtID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate district query: %w", err)
	}

	var district types.District
	err = pgxscan.Get(ctx, r.pool, &district, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrDistrictNotFound
		}
		return nil, fmt.Errorf("failed to fetch district: %w", err)
	}

	return &district, nil
}

func (r *DistrictRepository) Districts(ctx context.Context) ([]*types.District, error) {
	query, args, err := psql().
		Select(districtColumns...).
		From(districtTableName).
		OrderBy("name asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate districts query: %w", err)
	}

	districts := make([]*types.District, 0)
	if err := pgxscan.Select(ctx, r.pool, &districts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch districts: %w", err)
	}

	return districts, nil
}

func (r *DistrictRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := psql().
		Select("count(*)").
		From(districtTableName).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate district count query: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count districts: %w", err)
	}

	return count, nil
}

func (r *DistrictRepository) Create(ctx context.Context, district *types.District) error {
	now := time.Now()
	district.ID = utils.NanoID()
	district.CreatedAt = now
	district.UpdatedAt = now

	query, args, err := psql().
		Insert(districtTableName).
		SetMap(utils.StructToMap(district)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create district query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create district")
}
