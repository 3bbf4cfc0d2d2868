package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nazimov/vmrecon/internal/domain"
)

func primaryHeaders() []string {
	return []string{
		"Order number", "Machine code", "Address", "Goods name", "Taste name",
		"Order type", "Order resource", "Order price", "Creation time",
		"Paying time", "Brewing time", "Delivery time", "Refund time",
		"Payment status", "Brew status", "Reason",
	}
}

func TestDetectPrimary(t *testing.T) {
	mapper := NewMapper()

	mapping, err := mapper.Detect(primaryHeaders(), domain.SourceUnknown)

	assert.NoError(t, err)
	assert.Equal(t, domain.SourcePrimary, mapping.Kind)
	assert.Equal(t, "Order number", mapping.Fields["order_number"])
	assert.Equal(t, "Machine code", mapping.Fields["machine_code"])
	assert.Equal(t, "Creation time", mapping.Fields["creation_time"])
	assert.Equal(t, "Refund time", mapping.Fields["refund_time"])
	assert.Equal(t, "Order resource", mapping.Fields["order_resource"])
}

func TestDetectEnrichment(t *testing.T) {
	mapper := NewMapper()
	headers := []string{
		"Order number", "Time", "Goods name", "Order price", "Machine Code",
		"Machine category", "Payment type", "Goods id", "Username",
		"Amount of accrued bonus",
	}

	mapping, err := mapper.Detect(headers, domain.SourceUnknown)

	assert.NoError(t, err)
	assert.Equal(t, domain.SourceEnrichment, mapping.Kind)
	assert.Equal(t, "Time", mapping.Fields["event_time"])
	assert.Equal(t, "Amount of accrued bonus", mapping.Fields["bonus_amount"])
}

func TestDetectGateways(t *testing.T) {
	mapper := NewMapper()

	tests := []struct {
		name    string
		headers []string
		hint    domain.SourceKind
		want    domain.SourceKind
	}{
		{
			name:    "Payme by auto-detection",
			headers: []string{"transaction_id", "transaction_time", "amount", "masked_pan", "terminal_id", "phone_number", "reference_number"},
			hint:    domain.SourceUnknown,
			want:    domain.SourcePayme,
		},
		{
			name:    "Click by auto-detection",
			headers: []string{"transaction_id", "transaction_time", "amount", "card_number", "click_trans_id", "service_id", "error_code"},
			hint:    domain.SourceUnknown,
			want:    domain.SourceClick,
		},
		{
			name:    "Uzum with explicit hint",
			headers: []string{"transaction_id", "transaction_time", "amount", "masked_pan", "shop_id", "cashback_amount", "order_id"},
			hint:    domain.SourceUzum,
			want:    domain.SourceUzum,
		},
		{
			name:    "Fiscal bills",
			headers: []string{"fiscal_check_number", "fiscal_time", "amount", "taxpayer_id", "cash_register_id", "shift_number"},
			hint:    domain.SourceUnknown,
			want:    domain.SourceFiscal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapping, err := mapper.Detect(tt.headers, tt.hint)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, mapping.Kind)
		})
	}
}

func TestDetectUnrecognized(t *testing.T) {
	mapper := NewMapper()
	headers := []string{"Employee", "Salary", "Department", "Hired at"}

	mapping, err := mapper.Detect(headers, domain.SourceUnknown)

	assert.ErrorIs(t, err, ErrUnrecognized)
	assert.Nil(t, mapping)
}

func TestDetectHintedBelowThreshold(t *testing.T) {
	mapper := NewMapper()
	headers := []string{"Order number", "Machine code"}

	_, err := mapper.Detect(headers, domain.SourcePrimary)

	assert.ErrorIs(t, err, ErrUnrecognized)
}

// Fiscal requires 4 columns at threshold 0.8: three required matches score
// exactly 0.75 and must be rejected, three required plus one optional
// score 0.85 and must pass.
func TestScoreThresholdBoundary(t *testing.T) {
	mapper := NewMapper()

	below := []string{"fiscal_check_number", "fiscal_time", "amount"}
	_, err := mapper.Detect(below, domain.SourceFiscal)
	assert.ErrorIs(t, err, ErrUnrecognized)

	atThreshold := []string{"fiscal_check_number", "fiscal_time", "amount", "receipt_type"}
	mapping, err := mapper.Detect(atThreshold, domain.SourceFiscal)
	assert.NoError(t, err)
	assert.InDelta(t, 0.85, mapping.Score, 1e-9)

	full := []string{"fiscal_check_number", "fiscal_time", "amount", "taxpayer_id"}
	mapping, err = mapper.Detect(full, domain.SourceFiscal)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, mapping.Score, 0.8)
}

func TestOptionalBonusCapped(t *testing.T) {
	mapper := NewMapper()
	// All required plus every optional column: bonus must cap, score at 1.0.
	headers := []string{
		"transaction_id", "transaction_time", "amount", "masked_pan",
		"terminal_id", "merchant_id", "phone_number", "reference_number",
		"commission", "status", "username",
	}

	mapping, err := mapper.Detect(headers, domain.SourcePayme)

	assert.NoError(t, err)
	assert.Equal(t, 1.0, mapping.Score)
}

func TestFieldType(t *testing.T) {
	mapping := &Mapping{Kind: domain.SourcePrimary}

	assert.Equal(t, FieldTime, mapping.FieldType("creation_time"))
	assert.Equal(t, FieldAmount, mapping.FieldType("order_price"))
	assert.Equal(t, FieldString, mapping.FieldType("goods_name"))
	assert.Equal(t, FieldString, mapping.FieldType("no_such_field"))
}
