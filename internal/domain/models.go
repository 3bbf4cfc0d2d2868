package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind identifies which upstream export a record came from.
type SourceKind string

const (
	SourcePrimary    SourceKind = "primary_log"
	SourceEnrichment SourceKind = "enrichment"
	SourceFiscal     SourceKind = "fiscal_receipt"
	SourcePayme      SourceKind = "payme"
	SourceClick      SourceKind = "click"
	SourceUzum       SourceKind = "uzum"
	SourceUnknown    SourceKind = "unknown"
)

func (k SourceKind) IsGateway() bool {
	return k == SourcePayme || k == SourceClick || k == SourceUzum
}

// PaymentType is the normalized payment classification of an order.
type PaymentType string

const (
	PaymentCash    PaymentType = "Cash"
	PaymentCustom  PaymentType = "CustomPayment"
	PaymentTest    PaymentType = "Test"
	PaymentVIP     PaymentType = "VIP"
	PaymentUnknown PaymentType = "Unknown"
)

// Match statuses. Single-source and MATCHED statuses are intermediate,
// the rest are assigned by the final classification pass.
// TIME_OUT_OF_RANGE and PRICE_MISMATCH are terminal and never re-evaluated.
const (
	StatusPrimaryOnly     string = "PRIMARY_ONLY"
	StatusEnrichmentOnly  string = "ENRICHMENT_ONLY"
	StatusPaymeOnly       string = "PAYME_ONLY"
	StatusClickOnly       string = "CLICK_ONLY"
	StatusUzumOnly        string = "UZUM_ONLY"
	StatusMatched         string = "MATCHED"
	StatusFullyMatched    string = "FULLY_MATCHED"
	StatusFiscalMismatch  string = "FISCAL_MISMATCH"
	StatusGatewayMismatch string = "GATEWAY_MISMATCH"
	StatusTimeOutOfRange  string = "TIME_OUT_OF_RANGE"
	StatusPriceMismatch   string = "PRICE_MISMATCH"
	StatusUnmatched       string = "UNMATCHED"
)

// Order is the canonical merged record, one per real-world transaction.
// Natural key: (OrderNumber, MachineCode). Amount fields use zero to mean
// "not set"; every source requires positive amounts, so zero is never a
// legitimate domain value.
type Order struct {
	ID          int    `db:"id"`
	OrderNumber string `db:"order_number"`
	MachineCode string `db:"machine_code"`

	Address       string `db:"address"`
	GoodsName     string `db:"goods_name"`
	OrderResource string `db:"order_resource"`

	PaymentType PaymentType `db:"payment_type"`

	OrderPrice     decimal.Decimal `db:"order_price"`
	BonusAmount    decimal.Decimal `db:"bonus_amount"`
	FiscalAmount   decimal.Decimal `db:"fiscal_amount"`
	GatewayAmount  decimal.Decimal `db:"gateway_amount"`
	CashbackAmount decimal.Decimal `db:"cashback_amount"`

	CreationTime *time.Time `db:"creation_time"`
	PayingTime   *time.Time `db:"paying_time"`
	BrewingTime  *time.Time `db:"brewing_time"`
	DeliveryTime *time.Time `db:"delivery_time"`
	RefundTime   *time.Time `db:"refund_time"`
	EventTime    *time.Time `db:"event_time"`
	FiscalTime   *time.Time `db:"fiscal_time"`
	GatewayTime  *time.Time `db:"gateway_time"`

	PaymentGateway    string `db:"payment_gateway"`
	FiscalCheckNumber string `db:"fiscal_check_number"`
	TaxpayerID        string `db:"taxpayer_id"`
	CashRegisterID    string `db:"cash_register_id"`
	TransactionID     string `db:"transaction_id"`
	CardNumber        string `db:"card_number"`
	MerchantID        string `db:"merchant_id"`
	TerminalID        string `db:"terminal_id"`
	ShopID            string `db:"shop_id"`

	FiscalMatched  bool     `db:"fiscal_matched"`
	GatewayMatched bool     `db:"gateway_matched"`
	MatchedSources []string `db:"matched_sources"`

	MatchStatus     string `db:"match_status"`
	MismatchDetails string `db:"mismatch_details"`

	// SourcePayloads keeps the raw row from each source verbatim for audit.
	// Write-only data, never queried structurally.
	SourcePayloads map[string]json.RawMessage `db:"source_payloads"`

	BatchID   string    `db:"batch_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (o *Order) HasSource(kind SourceKind) bool {
	for _, s := range o.MatchedSources {
		if s == string(kind) {
			return true
		}
	}
	return false
}

// Row is one caller-decoded tabular row: original header -> raw cell value.
type Row map[string]any

// UnmatchedRecord is a fiscal or gateway row that correlated with no order.
// Retained for audit, never attached to an Order.
type UnmatchedRecord struct {
	ID         int             `db:"id"`
	Kind       SourceKind      `db:"kind"`
	ExternalID string          `db:"external_id"`
	RecordTime *time.Time      `db:"record_time"`
	Amount     decimal.Decimal `db:"amount"`
	Payload    json.RawMessage `db:"payload"`
	BatchID    string          `db:"batch_id"`
	CreatedAt  time.Time       `db:"created_at"`
}

// Batch is one upload session. Dirty batches have ingested rows that the
// classifier has not seen yet.
type Batch struct {
	ID        string    `db:"id"`
	Dirty     bool      `db:"dirty"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IngestResult reports per-file ingest counts. Row-level problems are
// counted in Skipped, never returned as errors.
type IngestResult struct {
	Processed    int
	Skipped      int
	DetectedKind SourceKind
}

// ReconciliationStats is the status histogram over all orders.
type ReconciliationStats struct {
	ByStatus map[string]int
	Total    int
}

// OrderFilter narrows QueryOrders results. Zero values mean "any".
type OrderFilter struct {
	MatchStatus string
	MachineCode string
	From        *time.Time
	To          *time.Time
}

// Policy carries the reconciliation tolerances and the payment types that
// need no fiscal/gateway corroboration. Built from configuration.
type Policy struct {
	TimeTolerance   time.Duration
	AmountTolerance decimal.Decimal
	ExemptTypes     map[PaymentType]bool
}

// FallbackWindow bounds the enrichment check when delivery was never
// recorded.
const FallbackWindow = 10 * time.Minute

// Window returns the order's activity interval used by the enrichment
// stage: creation to refund, else delivery, else creation plus the
// fallback window.
func (o *Order) Window() (start, end time.Time, ok bool) {
	if o.CreationTime == nil {
		return time.Time{}, time.Time{}, false
	}
	start = *o.CreationTime
	switch {
	case o.RefundTime != nil:
		end = *o.RefundTime
	case o.DeliveryTime != nil:
		end = *o.DeliveryTime
	default:
		end = start.Add(FallbackWindow)
	}
	return start, end, true
}
