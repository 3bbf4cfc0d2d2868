package unmatchedrepo

import (
	"context"

	"go.uber.org/zap"

	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

// Save stores an uncorrelated fiscal or gateway row. Replays of the same
// external record are silently dropped by the (kind, external_id) key.
func (r *Repository) Save(ctx context.Context, record *domain.UnmatchedRecord) error {
	query := `
        INSERT INTO unmatched_records (kind, external_id, record_time, amount, payload, batch_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (kind, external_id) DO NOTHING
    `
	_, err := r.db.Exec(ctx, query,
		record.Kind, record.ExternalID, record.RecordTime, record.Amount, record.Payload, record.BatchID)
	if err != nil {
		zap.L().Error("can't save unmatched record", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByBatch(ctx context.Context, batchID string) ([]domain.UnmatchedRecord, error) {
	query := `
        SELECT id, kind, external_id, record_time, amount, payload, batch_id, created_at
        FROM unmatched_records
        WHERE batch_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query, batchID)
	if err != nil {
		zap.L().Error("can't get unmatched records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var records []domain.UnmatchedRecord
	for rows.Next() {
		var rec domain.UnmatchedRecord
		err := rows.Scan(&rec.ID, &rec.Kind, &rec.ExternalID, &rec.RecordTime,
			&rec.Amount, &rec.Payload, &rec.BatchID, &rec.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan unmatched record row", zap.Error(err))
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM unmatched_records`).Scan(&count)
	if err != nil {
		zap.L().Error("can't count unmatched records", zap.Error(err))
		return 0, err
	}
	return count, nil
}
