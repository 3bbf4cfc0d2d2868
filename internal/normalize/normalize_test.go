package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/schema"
)

func primaryMapping(t *testing.T) *schema.Mapping {
	t.Helper()
	m, err := schema.NewMapper().Detect([]string{
		"Order Number", "Machine Code", "Goods Name", "Order Price",
		"Payment Type", "Creation Time", "Paying Time", "Refund Time",
	}, domain.SourcePrimary)
	require.NoError(t, err)
	return m
}

func TestNormalizePrimary(t *testing.T) {
	rec, err := Normalize(domain.Row{
		"Order Number":  "ORD-1001",
		"Machine Code":  "VM-07",
		"Goods Name":    "Latte",
		"Order Price":   "15 000,50",
		"Payment Type":  "Cash",
		"Creation Time": "2026-03-01 10:15:00",
		"Paying Time":   "01.03.2026 10:15:42",
	}, primaryMapping(t))
	require.NoError(t, err)

	assert.Equal(t, domain.SourcePrimary, rec.Kind)
	assert.Equal(t, "ORD-1001", rec.Str("order_number"))
	assert.Equal(t, "VM-07", rec.Str("machine_code"))
	assert.True(t, rec.Amount("order_price").Equal(decimal.RequireFromString("15000.50")))

	created := rec.Time("creation_time")
	require.NotNil(t, created)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC), *created)

	paid := rec.Time("paying_time")
	require.NotNil(t, paid)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 15, 42, 0, time.UTC), *paid)

	assert.Nil(t, rec.Time("refund_time"))
}

func TestNormalizeRejections(t *testing.T) {
	mapping := primaryMapping(t)

	tests := []struct {
		name    string
		row     domain.Row
		wantErr error
	}{
		{
			name: "missing order number",
			row: domain.Row{
				"Order Price":   "10.00",
				"Creation Time": "2026-03-01 10:00:00",
			},
			wantErr: ErrMissingOrderNumber,
		},
		{
			name: "unparsable creation time",
			row: domain.Row{
				"Order Number":  "ORD-1",
				"Order Price":   "10.00",
				"Creation Time": "first of march",
			},
			wantErr: ErrMissingEventTime,
		},
		{
			name: "zero amount",
			row: domain.Row{
				"Order Number":  "ORD-1",
				"Order Price":   "0",
				"Creation Time": "2026-03-01 10:00:00",
			},
			wantErr: ErrBadAmount,
		},
		{
			name: "garbage amount",
			row: domain.Row{
				"Order Number":  "ORD-1",
				"Order Price":   "n/a",
				"Creation Time": "2026-03-01 10:00:00",
			},
			wantErr: ErrBadAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.row, mapping)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"15000.50", "15000.5"},
		{"15 000,50", "15000.5"},
		{"1,234.56", "1234.56"},
		{"12,5", "12.5"},
		{" 42 ", "42"},
		{"abc", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseAmount(tt.in).String())
		})
	}
}

func TestParseTimeFormats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-01T10:15:00", time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)},
		{"2026-03-01 10:15:00", time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)},
		{"01.03.2026 10:15:00", time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)},
		{"01/03/2026 10:15:00", time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)},
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseTime(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := parseTime("yesterday")
	assert.False(t, ok)
}

func TestPaymentType(t *testing.T) {
	tests := []struct {
		in   string
		want domain.PaymentType
	}{
		{"Cash", domain.PaymentCash},
		{"CASH PAYMENT", domain.PaymentCash},
		{"CustomPayment", domain.PaymentCustom},
		{"Test", domain.PaymentTest},
		{"VIP", domain.PaymentVIP},
		{"", domain.PaymentUnknown},
		{"PayPass", domain.PaymentCustom},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentType(tt.in))
		})
	}
}
