package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/schema"
)

// Row-level rejection reasons. All of them mean "drop the row and count
// it", never "fail the file".
var (
	ErrMissingOrderNumber = errors.New("missing order number")
	ErrMissingEventTime   = errors.New("missing required event time")
	ErrBadAmount          = errors.New("amount missing or not positive")
)

// Datetime formats tried in order; first parse wins.
var timeFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006 15:04:05",
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
}

// requiredTime names the temporal field a row of the given kind cannot do
// without.
var requiredTime = map[domain.SourceKind]string{
	domain.SourcePrimary:    "creation_time",
	domain.SourceEnrichment: "event_time",
	domain.SourceFiscal:     "fiscal_time",
	domain.SourcePayme:      "transaction_time",
	domain.SourceClick:      "transaction_time",
	domain.SourceUzum:       "transaction_time",
}

// amountField names the field whose value must be a positive amount.
var amountField = map[domain.SourceKind]string{
	domain.SourcePrimary:    "order_price",
	domain.SourceEnrichment: "order_price",
	domain.SourceFiscal:     "amount",
	domain.SourcePayme:      "amount",
	domain.SourceClick:      "amount",
	domain.SourceUzum:       "amount",
}

// Record is one normalized input row: canonical names to typed values.
type Record struct {
	Kind    domain.SourceKind
	strings map[string]string
	times   map[string]time.Time
	amounts map[string]decimal.Decimal
}

func (r *Record) Str(name string) string {
	return r.strings[name]
}

func (r *Record) Time(name string) *time.Time {
	if t, ok := r.times[name]; ok {
		return &t
	}
	return nil
}

func (r *Record) Amount(name string) decimal.Decimal {
	return r.amounts[name]
}

// Normalize converts a raw row under a resolved mapping into a typed
// Record, or reports why the row must be dropped.
func Normalize(row domain.Row, mapping *schema.Mapping) (*Record, error) {
	rec := &Record{
		Kind:    mapping.Kind,
		strings: make(map[string]string),
		times:   make(map[string]time.Time),
		amounts: make(map[string]decimal.Decimal),
	}

	for field, header := range mapping.Fields {
		raw := cellString(row[header])
		if raw == "" {
			continue
		}
		switch mapping.FieldType(field) {
		case schema.FieldTime:
			if t, ok := parseTime(raw); ok {
				rec.times[field] = t
			}
		case schema.FieldAmount:
			rec.amounts[field] = parseAmount(raw)
		default:
			rec.strings[field] = raw
		}
	}

	kind := mapping.Kind
	if kind == domain.SourcePrimary || kind == domain.SourceEnrichment {
		if rec.Str("order_number") == "" {
			return nil, ErrMissingOrderNumber
		}
	}
	if field := requiredTime[kind]; field != "" && rec.Time(field) == nil {
		return nil, ErrMissingEventTime
	}
	if field := amountField[kind]; field != "" && !rec.Amount(field).IsPositive() {
		return nil, ErrBadAmount
	}

	return rec, nil
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		// JSON numbers decode as float64; render integral values without
		// the trailing fraction so "1001" does not become "1001.000000".
		d := decimal.NewFromFloat(s)
		return d.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, format := range timeFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount strips locale punctuation and coerces to a decimal.
// Unparsable values yield zero; validity is for the per-kind rules to
// decide.
func parseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, " ", "")
	raw = strings.ReplaceAll(raw, " ", "")
	if strings.Contains(raw, ",") {
		if strings.Contains(raw, ".") {
			// Both present: comma is a thousands separator.
			raw = strings.ReplaceAll(raw, ",", "")
		} else {
			raw = strings.ReplaceAll(raw, ",", ".")
		}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// PaymentType folds free-text payment labels into the canonical enum.
// Unknown gateways are card-like custom payments, so that is the default.
func PaymentType(raw string) domain.PaymentType {
	label := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case label == "":
		return domain.PaymentUnknown
	case strings.Contains(label, "cash"):
		return domain.PaymentCash
	case strings.Contains(label, "custom"):
		return domain.PaymentCustom
	case strings.Contains(label, "test"):
		return domain.PaymentTest
	case strings.Contains(label, "vip"):
		return domain.PaymentVIP
	default:
		return domain.PaymentCustom
	}
}
