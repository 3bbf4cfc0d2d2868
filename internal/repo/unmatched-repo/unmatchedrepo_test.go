package unmatchedrepo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nazimov/vmrecon/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()
	return repo, mockDB
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	record := &domain.UnmatchedRecord{
		Kind:       domain.SourceFiscal,
		ExternalID: "FD-991",
		RecordTime: &now,
		Amount:     decimal.RequireFromString("12000"),
		Payload:    json.RawMessage(`{"amount":"12000"}`),
		BatchID:    "batch-1",
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Success",
			mockSetup: func() {
				mock.ExpectExec("INSERT INTO unmatched_records (.+) ON CONFLICT \\(kind, external_id\\) DO NOTHING").
					WithArgs(record.Kind, record.ExternalID, record.RecordTime, record.Amount, record.Payload, record.BatchID).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "Duplicate is a no-op",
			mockSetup: func() {
				mock.ExpectExec("INSERT INTO unmatched_records (.+) ON CONFLICT \\(kind, external_id\\) DO NOTHING").
					WithArgs(record.Kind, record.ExternalID, record.RecordTime, record.Amount, record.Payload, record.BatchID).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec("INSERT INTO unmatched_records").
					WithArgs(record.Kind, record.ExternalID, record.RecordTime, record.Amount, record.Payload, record.BatchID).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Save(context.Background(), record)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_FindByBatch(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "kind", "external_id", "record_time", "amount", "payload", "batch_id", "created_at"}).
		AddRow(1, domain.SourcePayme, "TX-1", &now, decimal.RequireFromString("5000"),
			json.RawMessage(`{}`), "batch-1", now)
	mock.ExpectQuery("SELECT (.+) FROM unmatched_records WHERE batch_id = \\$1").
		WithArgs("batch-1").
		WillReturnRows(rows)

	records, err := repo.FindByBatch(context.Background(), "batch-1")
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "TX-1", records[0].ExternalID)
	assert.Equal(t, domain.SourcePayme, records[0].Kind)
}

func TestRepository_Count(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM unmatched_records").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 7, count)
}
