package ingestservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/schema"
)

func NewMock(t *testing.T) (*Service, *MockOrderRepo, *MockUnmatchedRepo, *MockBatchRepo) {
	ctrl := gomock.NewController(t)
	orders := NewMockOrderRepo(ctrl)
	unmatched := NewMockUnmatchedRepo(ctrl)
	batches := NewMockBatchRepo(ctrl)
	policy := domain.Policy{
		TimeTolerance:   time.Minute,
		AmountTolerance: decimal.New(1, -2),
		ExemptTypes: map[domain.PaymentType]bool{
			domain.PaymentTest: true,
			domain.PaymentVIP:  true,
		},
	}
	service := New(orders, unmatched, batches, policy)
	defer ctrl.Finish()
	return service, orders, unmatched, batches
}

func primaryHeaders() []string {
	return []string{
		"Order number", "Machine code", "Goods name", "Order price",
		"Payment status", "Payment type", "Creation time", "Paying time",
		"Delivery time", "Refund time",
	}
}

func enrichmentHeaders() []string {
	return []string{"Order number", "Machine code", "Time", "Order price", "Payment type"}
}

func fiscalHeaders() []string {
	return []string{"Fiscal ID", "Time", "Amount", "Taxpayer ID"}
}

func TestIngestPrimary(t *testing.T) {
	service, orders, _, batches := NewMock(t)

	rows := []domain.Row{
		{
			"Order number":  "1001",
			"Machine code":  "M1",
			"Goods name":    "Latte",
			"Order price":   "15000",
			"Payment type":  "Cash",
			"Creation time": "2024-01-01T10:00:00",
			"Paying time":   "2024-01-01T10:00:40",
		},
		{
			// Refunded rows are excluded entirely.
			"Order number":  "1002",
			"Machine code":  "M1",
			"Order price":   "9000",
			"Creation time": "2024-01-01T11:00:00",
			"Refund time":   "2024-01-01T11:05:00",
		},
		{
			// Blank trailer row.
			"Order number": "",
		},
	}

	var captured *domain.Order
	orders.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order *domain.Order) error {
			captured = order
			return nil
		})
	batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)

	result, err := service.Ingest(context.Background(), "batch-1", domain.SourceUnknown, primaryHeaders(), rows)

	require.NoError(t, err)
	assert.Equal(t, domain.SourcePrimary, result.DetectedKind)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 2, result.Skipped)

	require.NotNil(t, captured)
	assert.Equal(t, "1001", captured.OrderNumber)
	assert.Equal(t, "M1", captured.MachineCode)
	assert.Equal(t, domain.PaymentCash, captured.PaymentType)
	assert.Equal(t, domain.StatusPrimaryOnly, captured.MatchStatus)
	assert.True(t, captured.OrderPrice.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, []string{string(domain.SourcePrimary)}, captured.MatchedSources)
	assert.Contains(t, captured.SourcePayloads, string(domain.SourcePrimary))
}

func TestIngestUnrecognizedSchema(t *testing.T) {
	service, _, _, _ := NewMock(t)

	_, err := service.Ingest(context.Background(), "batch-1", domain.SourceUnknown,
		[]string{"Foo", "Bar", "Baz"}, []domain.Row{{"Foo": "1"}})

	assert.ErrorIs(t, err, schema.ErrUnrecognized)
}

func TestIngestEnrichment(t *testing.T) {
	creation := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	delivery := creation.Add(2 * time.Minute)

	existing := func() *domain.Order {
		return &domain.Order{
			ID:             5,
			OrderNumber:    "1001",
			MachineCode:    "M1",
			OrderPrice:     decimal.NewFromInt(15000),
			CreationTime:   &creation,
			DeliveryTime:   &delivery,
			MatchedSources: []string{string(domain.SourcePrimary)},
			MatchStatus:    domain.StatusPrimaryOnly,
		}
	}

	row := func(eventTime, price string) domain.Row {
		return domain.Row{
			"Order number": "1001",
			"Machine code": "M1",
			"Time":         eventTime,
			"Order price":  price,
			"Payment type": "Cash",
		}
	}

	tests := []struct {
		name        string
		row         domain.Row
		prepareMock func(orders *MockOrderRepo, batches *MockBatchRepo)
	}{
		{
			name: "Window and price agree, order becomes matched",
			row:  row("2024-01-01T10:00:30", "15000"),
			prepareMock: func(orders *MockOrderRepo, batches *MockBatchRepo) {
				orders.EXPECT().FindByKey(gomock.Any(), "1001", "M1").Return(existing(), nil)
				orders.EXPECT().Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) error {
						assert.Equal(t, domain.StatusMatched, order.MatchStatus)
						assert.Equal(t, []string{string(domain.SourceEnrichment)}, order.MatchedSources)
						assert.NotNil(t, order.EventTime)
						return nil
					})
				batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)
			},
		},
		{
			name: "Event time far outside window is terminal",
			row:  row("2024-01-01T10:22:00", "15000"),
			prepareMock: func(orders *MockOrderRepo, batches *MockBatchRepo) {
				orders.EXPECT().FindByKey(gomock.Any(), "1001", "M1").Return(existing(), nil)
				orders.EXPECT().UpdateStatus(gomock.Any(), 5, domain.StatusTimeOutOfRange, gomock.Any()).Return(nil)
				batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)
			},
		},
		{
			name: "Price disagreement is terminal",
			row:  row("2024-01-01T10:00:30", "15002"),
			prepareMock: func(orders *MockOrderRepo, batches *MockBatchRepo) {
				orders.EXPECT().FindByKey(gomock.Any(), "1001", "M1").Return(existing(), nil)
				orders.EXPECT().UpdateStatus(gomock.Any(), 5, domain.StatusPriceMismatch, gomock.Any()).Return(nil)
				batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)
			},
		},
		{
			name: "No primary order creates enrichment-only order",
			row:  row("2024-01-01T10:00:30", "15000"),
			prepareMock: func(orders *MockOrderRepo, batches *MockBatchRepo) {
				orders.EXPECT().FindByKey(gomock.Any(), "1001", "M1").Return(nil, nil)
				orders.EXPECT().Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) error {
						assert.Equal(t, domain.StatusEnrichmentOnly, order.MatchStatus)
						return nil
					})
				batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, orders, _, batches := NewMock(t)
			tt.prepareMock(orders, batches)

			result, err := service.Ingest(context.Background(), "batch-1",
				domain.SourceEnrichment, enrichmentHeaders(), []domain.Row{tt.row})

			require.NoError(t, err)
			assert.Equal(t, 1, result.Processed)
		})
	}
}

func TestCorrelateFiscal(t *testing.T) {
	paying := time.Date(2024, 1, 1, 10, 4, 50, 0, time.UTC)
	candidate := &domain.Order{
		ID:          5,
		OrderNumber: "1001",
		MachineCode: "M1",
		PaymentType: domain.PaymentCash,
		OrderPrice:  decimal.NewFromInt(15000),
		PayingTime:  &paying,
	}

	row := domain.Row{
		"Fiscal ID":   "FD-991",
		"Time":        "2024-01-01T10:05:00",
		"Amount":      "15000",
		"Taxpayer ID": "307123456",
	}

	tests := []struct {
		name        string
		prepareMock func(orders *MockOrderRepo, unmatched *MockUnmatchedRepo, batches *MockBatchRepo)
	}{
		{
			name: "Receipt attaches to nearest cash order",
			prepareMock: func(orders *MockOrderRepo, unmatched *MockUnmatchedRepo, batches *MockBatchRepo) {
				orders.EXPECT().FindByFiscalCheck(gomock.Any(), "FD-991").Return(nil, nil)
				orders.EXPECT().FindFiscalCandidate(gomock.Any(), gomock.Any(), time.Minute, gomock.Any(), gomock.Any()).
					Return(candidate, nil)
				orders.EXPECT().Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order) error {
						assert.Equal(t, "1001", order.OrderNumber)
						assert.True(t, order.FiscalMatched)
						assert.Equal(t, "FD-991", order.FiscalCheckNumber)
						assert.Equal(t, "307123456", order.TaxpayerID)
						return nil
					})
				batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)
			},
		},
		{
			name: "Replayed receipt is a no-op",
			prepareMock: func(orders *MockOrderRepo, unmatched *MockUnmatchedRepo, batches *MockBatchRepo) {
				orders.EXPECT().FindByFiscalCheck(gomock.Any(), "FD-991").Return(candidate, nil)
				batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)
			},
		},
		{
			name: "Uncorrelated receipt is retained for audit",
			prepareMock: func(orders *MockOrderRepo, unmatched *MockUnmatchedRepo, batches *MockBatchRepo) {
				orders.EXPECT().FindByFiscalCheck(gomock.Any(), "FD-991").Return(nil, nil)
				orders.EXPECT().FindFiscalCandidate(gomock.Any(), gomock.Any(), time.Minute, gomock.Any(), gomock.Any()).
					Return(nil, nil)
				unmatched.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, record *domain.UnmatchedRecord) error {
						assert.Equal(t, domain.SourceFiscal, record.Kind)
						assert.Equal(t, "FD-991", record.ExternalID)
						return nil
					})
				batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, orders, unmatched, batches := NewMock(t)
			tt.prepareMock(orders, unmatched, batches)

			result, err := service.Ingest(context.Background(), "batch-1",
				domain.SourceFiscal, fiscalHeaders(), []domain.Row{row})

			require.NoError(t, err)
			assert.Equal(t, domain.SourceFiscal, result.DetectedKind)
			assert.Equal(t, 1, result.Processed)
		})
	}
}

func TestCorrelateGateway(t *testing.T) {
	service, orders, _, batches := NewMock(t)

	candidate := &domain.Order{
		ID:          7,
		OrderNumber: "2002",
		MachineCode: "M2",
		PaymentType: domain.PaymentCustom,
		OrderPrice:  decimal.NewFromInt(22000),
	}

	headers := []string{"Transaction ID", "Transaction Time", "Amount", "Card Number"}
	rows := []domain.Row{{
		"Transaction ID":   "CLK-55",
		"Transaction Time": "2024-01-01T12:00:10",
		"Amount":           "22000",
		"Card Number":      "8600 **** **** 1234",
	}}

	orders.EXPECT().FindByTransactionID(gomock.Any(), "CLK-55").Return(nil, nil)
	orders.EXPECT().FindGatewayCandidate(gomock.Any(), gomock.Any(), time.Minute, gomock.Any(), gomock.Any()).
		Return(candidate, nil)
	orders.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order *domain.Order) error {
			assert.Equal(t, "2002", order.OrderNumber)
			assert.True(t, order.GatewayMatched)
			assert.Equal(t, string(domain.SourceClick), order.PaymentGateway)
			assert.Equal(t, "CLK-55", order.TransactionID)
			assert.Equal(t, "8600 **** **** 1234", order.CardNumber)
			return nil
		})
	batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)

	result, err := service.Ingest(context.Background(), "batch-1", domain.SourceUnknown, headers, rows)

	require.NoError(t, err)
	assert.Equal(t, domain.SourceClick, result.DetectedKind)
	assert.Equal(t, 1, result.Processed)
}

func TestCorrelateFiscalWithoutCheckNumber(t *testing.T) {
	paying := time.Date(2024, 1, 1, 10, 4, 50, 0, time.UTC)
	candidate := &domain.Order{
		ID:          5,
		OrderNumber: "1001",
		MachineCode: "M1",
		PaymentType: domain.PaymentCash,
		OrderPrice:  decimal.NewFromInt(15000),
		PayingTime:  &paying,
	}

	row := domain.Row{
		"Fiscal ID":   "",
		"Time":        "2024-01-01T10:05:00",
		"Amount":      "15000",
		"Taxpayer ID": "307123456",
	}

	t.Run("Id-less receipt stores a payload digest as its check number", func(t *testing.T) {
		service, orders, _, batches := NewMock(t)

		var digest string
		orders.EXPECT().FindByFiscalCheck(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, checkNumber string) (*domain.Order, error) {
				digest = checkNumber
				return nil, nil
			})
		orders.EXPECT().FindFiscalCandidate(gomock.Any(), gomock.Any(), time.Minute, gomock.Any(), gomock.Any()).
			Return(candidate, nil)
		orders.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *domain.Order) error {
				assert.NotEmpty(t, order.FiscalCheckNumber)
				assert.Equal(t, digest, order.FiscalCheckNumber)
				return nil
			})
		batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)

		result, err := service.Ingest(context.Background(), "batch-1",
			domain.SourceFiscal, fiscalHeaders(), []domain.Row{row})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Processed)
		assert.Len(t, digest, 16)
	})

	t.Run("Replayed id-less receipt is a no-op", func(t *testing.T) {
		service, orders, _, batches := NewMock(t)

		// The digest lands in the check-number slot on first ingest, so
		// the replay lookup finds the order and nothing is re-correlated
		// or written to the audit table.
		orders.EXPECT().FindByFiscalCheck(gomock.Any(), gomock.Not(gomock.Eq(""))).
			Return(candidate, nil)
		batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)

		result, err := service.Ingest(context.Background(), "batch-1",
			domain.SourceFiscal, fiscalHeaders(), []domain.Row{row})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Processed)
	})
}

func TestCorrelateGatewayWithoutTransactionID(t *testing.T) {
	candidate := &domain.Order{
		ID:          7,
		OrderNumber: "2002",
		MachineCode: "M2",
		PaymentType: domain.PaymentCustom,
		OrderPrice:  decimal.NewFromInt(22000),
	}

	headers := []string{"Transaction ID", "Transaction Time", "Amount", "Card Number"}
	row := domain.Row{
		"Transaction ID":   "",
		"Transaction Time": "2024-01-01T12:00:10",
		"Amount":           "22000",
		"Card Number":      "8600 **** **** 1234",
	}

	t.Run("Id-less settlement stores a payload digest as its transaction id", func(t *testing.T) {
		service, orders, _, batches := NewMock(t)

		var digest string
		orders.EXPECT().FindByTransactionID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, transactionID string) (*domain.Order, error) {
				digest = transactionID
				return nil, nil
			})
		orders.EXPECT().FindGatewayCandidate(gomock.Any(), gomock.Any(), time.Minute, gomock.Any(), gomock.Any()).
			Return(candidate, nil)
		orders.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *domain.Order) error {
				assert.NotEmpty(t, order.TransactionID)
				assert.Equal(t, digest, order.TransactionID)
				return nil
			})
		batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)

		result, err := service.Ingest(context.Background(), "batch-1", domain.SourceUnknown, headers, []domain.Row{row})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Processed)
		assert.Len(t, digest, 16)
	})

	t.Run("Replayed id-less settlement is a no-op", func(t *testing.T) {
		service, orders, _, batches := NewMock(t)

		orders.EXPECT().FindByTransactionID(gomock.Any(), gomock.Not(gomock.Eq(""))).
			Return(candidate, nil)
		batches.EXPECT().MarkDirty(gomock.Any(), "batch-1").Return(nil)

		result, err := service.Ingest(context.Background(), "batch-1", domain.SourceUnknown, headers, []domain.Row{row})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Processed)
	})
}

func TestIngestStoreFailureAbortsFile(t *testing.T) {
	service, orders, _, _ := NewMock(t)

	orders.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

	_, err := service.Ingest(context.Background(), "batch-1", domain.SourcePrimary, primaryHeaders(),
		[]domain.Row{{
			"Order number":  "1001",
			"Machine code":  "M1",
			"Order price":   "15000",
			"Creation time": "2024-01-01T10:00:00",
		}})

	assert.Error(t, err)
}
