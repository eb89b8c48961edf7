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

const villageTableName = "rutilahu.villages"

var villageColumns = utils.StructTagValues(types.Village{})

type VillageRepository struct {
	pool *pgxpool.Pool
}

func NewVillageRepository(pool *pgxpool.Pool) *VillageRepository {
	return &VillageRepository{pool: pool}
}

func (r *VillageRepository) Village(ctx context.Context, villageID string) (*types.Village, error) {
	query, args, err := psql().
		Select(villageColumns...).
		From(villageTableName).
		Where(sq.Eq{"id": villageID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate village query: %w", err)
	}

	var village types.Village
	err = pgxscan.Get(ctx, r.pool, &village, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrVillageNotFound
		}
		return nil, fmt.Errorf("failed to fetch village: %w", err)
	}

	return &village, nil
}

func (r *VillageRepository) VillagesByDistrict(ctx context.Context, districtID string) ([]*types.Village, error) {
	query, args, err := psql().
		Select(villageColumns...).
		From(villageTableName).
		Where(sq.Eq{"district_id": districtID}).
		OrderBy("name asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate villages-by-district query: %w", err)
	}

	villages := make([]*types.Village, 0)
	if err := pgxscan.Select(ctx, r.pool, &villages, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch villages: %w", err)
	}

	return villages, nil
}

func (r *VillageRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := psql().
		Select("count(*)").
		From(villageTableName).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate village count query: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count villages: %w", err)
	}

	return count, nil
}

func (r *VillageRepository) Create(ctx context.Context, village *types.Village) error {
	now := time.Now()
	village.ID = utils.NanoID()
	village.CreatedAt = now
	village.UpdatedAt = now

	query, args, err := psql().
		Insert(villageTableName).
		SetMap(utils.StructToMap(village)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create village query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "villages_code_district_id_key") {
			return types.ErrDuplicateVillageCode
		}
		return fmt.Errorf("failed to create village: %w", err)
	}

	return nil
}
