package store

import (
	"context"
	"fmt"

	"rutilahu/internal/utils"
	"rutilahu/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var mapPointColumns = utils.StructTagValues(types.MapPoint{})

// GISRepository projects coordinate-bearing housing records for the map
// and heatmap views. Read-only.
type GISRepository struct {
	pool *pgxpool.Pool
}

func NewGISRepository(pool *pgxpool.Pool) *GISRepository {
	return &GISRepository{pool: pool}
}

func (r *GISRepository) MapPoints(ctx context.Context, filter types.MapFilter) ([]*types.MapPoint, error) {
	builder := psql().
		Select(mapPointColumns...).
		From(housingTableName).
		Where("latitude is not null and longitude is not null").
		OrderBy("created_at desc")

	if filter.DistrictID != "" {
		builder = builder.Where(sq.Eq{"district_id": filter.DistrictID})
	}
	if filter.VillageID != "" {
		builder = builder.Where(sq.Eq{"village_id": filter.VillageID})
	}
	if filter.HousingStatus != "" {
		builder = builder.Where(sq.Eq{"housing_status": filter.HousingStatus})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate map points query: %w", err)
	}

	points := make([]*types.MapPoint, 0)
	if err := pgxscan.Select(ctx, r.pool, &points, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch map points: %w", err)
	}

	return points, nil
}
