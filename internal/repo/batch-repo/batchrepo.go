package batchrepo

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

// MarkDirty registers the batch if needed and flags it for the next
// reconciliation sweep.
func (r *Repository) MarkDirty(ctx context.Context, batchID string) error {
	query := `
        INSERT INTO batches (id, dirty)
        VALUES ($1, TRUE)
        ON CONFLICT (id) DO UPDATE SET dirty = TRUE, updated_at = CURRENT_TIMESTAMP
    `
	_, err := r.db.Exec(ctx, query, batchID)
	if err != nil {
		zap.L().Error("can't mark batch dirty", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ClearDirty(ctx context.Context, batchID string) error {
	query := `
        UPDATE batches
        SET dirty = FALSE, updated_at = CURRENT_TIMESTAMP
        WHERE ($1 = '' OR id = $1)
    `
	_, err := r.db.Exec(ctx, query, batchID)
	if err != nil {
		zap.L().Error("can't clear batch dirty flag", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindDirty(ctx context.Context, limit uint32) ([]domain.Batch, error) {
	query := `
        SELECT id, dirty, created_at, updated_at
        FROM batches
        WHERE dirty = TRUE
        ORDER BY updated_at ASC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get dirty batches", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var batches []domain.Batch
	for rows.Next() {
		var b domain.Batch
		if err := rows.Scan(&b.ID, &b.Dirty, &b.CreatedAt, &b.UpdatedAt); err != nil {
			zap.L().Error("can't scan batch row", zap.Error(err))
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, nil
}
