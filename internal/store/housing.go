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
	"github.com/shopspring/decimal"
)

const housingTableName = "rutilahu.housing_records"

var housingColumns = utils.StructTagValues(types.HousingRecord{})

type HousingRepository struct {
	pool *pgxpool.Pool
}

func NewHousingRepository(pool *pgxpool.Pool) *HousingRepository {
	return &HousingRepository{pool: pool}
}

func (r *HousingRepository) HousingRecord(ctx context.Context, recordID string) (*types.HousingRecord, error) {
	query, args, err := psql().
		Select(housingColumns...).
		From(housingTableName).
		Where(sq.Eq{"id": recordID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate housing record query: %w", err)
	}

	var record types.HousingRecord
	err = pgxscan.Get(ctx, r.pool, &record, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrHousingRecordNotFound
		}
		return nil, fmt.Errorf("failed to fetch housing record: %w", err)
	}

	return &record, nil
}

func (r *HousingRepository) HousingRecords(ctx context.Context) ([]*types.HousingRecord, error) {
	return r.housingRecordsWhere(ctx, nil)
}

func (r *HousingRepository) HousingRecordsByDistrict(ctx context.Context, districtID string) ([]*types.HousingRecord, error) {
	return r.housingRecordsWhere(ctx, sq.Eq{"district_id": districtID})
}

func (r *HousingRepository) HousingRecordsByVillage(ctx context.Context, villageID string) ([]*types.HousingRecord, error) {
	return r.housingRecordsWhere(ctx, sq.Eq{"village_id": villageID})
}

func (r *HousingRepository) housingRecordsWhere(ctx context.Context, where sq.Eq) ([]*types.HousingRecord, error) {
	builder := psql().
		Select(housingColumns...).
		From(housingTableName).
		OrderBy("created_at desc")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate housing records query: %w", err)
	}

	records := make([]*types.HousingRecord, 0)
	if err := pgxscan.Select(ctx, r.pool, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch housing records: %w", err)
	}

	return records, nil
}

func (r *HousingRepository) NIKExists(ctx context.Context, nik string) (bool, error) {
	query, args, err := psql().
		Select("count(*)").
		From(housingTableName).
		Where(sq.Eq{"nik": nik}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate nik existence query: %w", err)
	}

	var count int64
	if err := pgxscan.Get(ctx, r.pool, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check nik existence: %w", err)
	}

	return count > 0, nil
}

func (r *HousingRepository) Create(ctx context.Context, record *types.HousingRecord) error {
	now := time.Now()
	record.ID = utils.NanoID()
	record.CreatedAt = now
	record.UpdatedAt = now

	query, args, err := psql().
		Insert(housingTableName).
		SetMap(utils.StructToMap(record)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create housing record query: %w", err)
	}

	// The pre-insert NIK check runs in the service; the unique constraint
	// closes the race between check and insert.
	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, "housing_records_nik_key") {
			return types.ErrDuplicateNIK
		}
		return fmt.Errorf("failed to create housing record: %w", err)
	}

	return nil
}

// Save persists the full record row. Callers mutate a fetched record and
// hand it back; UpdatedAt always advances.
func (r *HousingRepository) Save(ctx context.Context, record *types.HousingRecord) error {
	record.UpdatedAt = time.Now()

	query, args, err := psql().
		Update(housingTableName).
		SetMap(utils.StructToMap(record)).
		Where(sq.Eq{"id": record.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update housing record query for record %s: %w", record.ID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update housing record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrHousingRecordNotFound
	}

	return nil
}

func (r *HousingRepository) UpdateCoordinates(ctx context.Context, recordID string, lat, lon decimal.Decimal) error {
	query, args, err := psql().
		Update(housingTableName).
		Set("latitude", lat).
		Set("longitude", lon).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": recordID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update coordinates query for record %s: %w", recordID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update coordinates: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrHousingRecordNotFound
	}

	return nil
}

// Delete hard-deletes the record and cascades its documents in the same
// transaction.
func (r *HousingRepository) Delete(ctx context.Context, recordID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	docQuery, docArgs, err := psql().
		Delete(documentTableName).
		Where(sq.Eq{"housing_record_id": recordID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate cascade document delete query: %w", err)
	}

	if _, err := tx.Exec(ctx, docQuery, docArgs...); err != nil {
		return fmt.Errorf("failed to delete documents for record %s: %w", recordID, err)
	}

	query, args, err := psql().
		Delete(housingTableName).
		Where(sq.Eq{"id": recordID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete housing record query: %w", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete housing record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrHousingRecordNotFound
	}

	return tx.Commit(ctx)
}
