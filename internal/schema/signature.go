package schema

import "github.com/nazimov/vmrecon/internal/domain"

// FieldType tells the normalizer how to parse a mapped cell.
type FieldType int

const (
	FieldString FieldType = iota
	FieldTime
	FieldAmount
)

// Field is one canonical column of a source kind. Keywords are matched
// against normalized file headers; the first header containing (or
// contained in) a keyword wins.
type Field struct {
	Name     string
	Type     FieldType
	Keywords []string
}

// Signature describes the expected header set of one source kind. New
// source kinds are added here, not in code.
type Signature struct {
	Kind      domain.SourceKind
	Required  []Field
	Optional  []Field
	Threshold float64
}

// Detection priority. On equal scores the earlier kind wins.
var priority = []domain.SourceKind{
	domain.SourcePrimary,
	domain.SourceEnrichment,
	domain.SourceFiscal,
	domain.SourcePayme,
	domain.SourceClick,
	domain.SourceUzum,
}

var signatures = map[domain.SourceKind]Signature{
	domain.SourcePrimary: {
		Kind:      domain.SourcePrimary,
		Threshold: 0.75,
		Required: []Field{
			{Name: "order_number", Type: FieldString, Keywords: []string{"order number", "order_number"}},
			{Name: "machine_code", Type: FieldString, Keywords: []string{"machine code", "machine_code"}},
			{Name: "creation_time", Type: FieldTime, Keywords: []string{"creation time", "creation_time"}},
			{Name: "order_price", Type: FieldAmount, Keywords: []string{"order price", "order_price", "price"}},
			{Name: "payment_status", Type: FieldString, Keywords: []string{"payment status", "payment_status"}},
			{Name: "goods_name", Type: FieldString, Keywords: []string{"goods name", "goods_name"}},
		},
		Optional: []Field{
			{Name: "payment_type", Type: FieldString, Keywords: []string{"payment type", "payment_type"}},
			{Name: "paying_time", Type: FieldTime, Keywords: []string{"paying time", "paying_time"}},
			{Name: "brewing_time", Type: FieldTime, Keywords: []string{"brewing time", "brewing_time"}},
			{Name: "delivery_time", Type: FieldTime, Keywords: []string{"delivery time", "delivery_time"}},
			{Name: "refund_time", Type: FieldTime, Keywords: []string{"refund time", "refund_time"}},
			{Name: "order_resource", Type: FieldString, Keywords: []string{"order resource", "order_resource"}},
			{Name: "order_type", Type: FieldString, Keywords: []string{"order type", "order_type"}},
			{Name: "taste_name", Type: FieldString, Keywords: []string{"taste name", "taste_name"}},
			{Name: "brew_status", Type: FieldString, Keywords: []string{"brew status", "brew_status"}},
			{Name: "address", Type: FieldString, Keywords: []string{"address"}},
			{Name: "reason", Type: FieldString, Keywords: []string{"reason"}},
		},
	},
	domain.SourceEnrichment: {
		Kind:      domain.SourceEnrichment,
		Threshold: 0.75,
		Required: []Field{
			{Name: "order_number", Type: FieldString, Keywords: []string{"order number", "order_number"}},
			{Name: "machine_code", Type: FieldString, Keywords: []string{"machine code", "machine_code"}},
			{Name: "event_time", Type: FieldTime, Keywords: []string{"event_time", "order_time", "time"}},
			{Name: "order_price", Type: FieldAmount, Keywords: []string{"order price", "order_price", "price"}},
			{Name: "payment_type", Type: FieldString, Keywords: []string{"payment type", "payment_type"}},
		},
		Optional: []Field{
			{Name: "goods_name", Type: FieldString, Keywords: []string{"goods name", "goods_name"}},
			{Name: "goods_id", Type: FieldString, Keywords: []string{"goods id", "goods_id"}},
			{Name: "machine_category", Type: FieldString, Keywords: []string{"machine category", "machine_category"}},
			{Name: "order_resource", Type: FieldString, Keywords: []string{"order resource", "order_resource"}},
			{Name: "bonus_amount", Type: FieldAmount, Keywords: []string{"accrued bonus", "bonus_amount", "bonus"}},
			{Name: "username", Type: FieldString, Keywords: []string{"username"}},
			{Name: "ikpu", Type: FieldString, Keywords: []string{"ikpu"}},
			{Name: "barcode", Type: FieldString, Keywords: []string{"barcode"}},
			{Name: "marking", Type: FieldString, Keywords: []string{"marking"}},
			{Name: "packaging", Type: FieldString, Keywords: []string{"packaging"}},
		},
	},
	domain.SourceFiscal: {
		Kind:      domain.SourceFiscal,
		Threshold: 0.8,
		Required: []Field{
			{Name: "fiscal_check_number", Type: FieldString, Keywords: []string{"fiscal_check_number", "fiscal id", "check number"}},
			{Name: "fiscal_time", Type: FieldTime, Keywords: []string{"fiscal_time", "time"}},
			{Name: "amount", Type: FieldAmount, Keywords: []string{"amount", "price"}},
			{Name: "taxpayer_id", Type: FieldString, Keywords: []string{"taxpayer_id", "taxpayer id"}},
		},
		Optional: []Field{
			{Name: "cash_register_id", Type: FieldString, Keywords: []string{"cash_register_id", "cash register"}},
			{Name: "shift_number", Type: FieldString, Keywords: []string{"shift_number", "shift number"}},
			{Name: "receipt_type", Type: FieldString, Keywords: []string{"receipt_type", "receipt type"}},
		},
	},
	domain.SourcePayme: {
		Kind:      domain.SourcePayme,
		Threshold: 0.8,
		Required: []Field{
			{Name: "transaction_id", Type: FieldString, Keywords: []string{"transaction_id", "transaction id"}},
			{Name: "transaction_time", Type: FieldTime, Keywords: []string{"transaction_time", "transaction time", "time"}},
			{Name: "amount", Type: FieldAmount, Keywords: []string{"amount"}},
			{Name: "masked_pan", Type: FieldString, Keywords: []string{"masked_pan"}},
		},
		Optional: []Field{
			{Name: "terminal_id", Type: FieldString, Keywords: []string{"terminal_id", "terminal id"}},
			{Name: "merchant_id", Type: FieldString, Keywords: []string{"merchant_id", "merchant id"}},
			{Name: "phone_number", Type: FieldString, Keywords: []string{"phone_number", "phone"}},
			{Name: "reference_number", Type: FieldString, Keywords: []string{"reference_number", "reference"}},
			{Name: "commission", Type: FieldAmount, Keywords: []string{"commission"}},
			{Name: "status", Type: FieldString, Keywords: []string{"status"}},
			{Name: "username", Type: FieldString, Keywords: []string{"username"}},
		},
	},
	domain.SourceClick: {
		Kind:      domain.SourceClick,
		Threshold: 0.8,
		Required: []Field{
			{Name: "transaction_id", Type: FieldString, Keywords: []string{"transaction_id", "transaction id"}},
			{Name: "transaction_time", Type: FieldTime, Keywords: []string{"transaction_time", "transaction time", "time"}},
			{Name: "amount", Type: FieldAmount, Keywords: []string{"amount"}},
			{Name: "card_number", Type: FieldString, Keywords: []string{"card_number", "card number"}},
		},
		Optional: []Field{
			{Name: "click_trans_id", Type: FieldString, Keywords: []string{"click_trans_id"}},
			{Name: "service_id", Type: FieldString, Keywords: []string{"service_id", "service id"}},
			{Name: "merchant_trans_id", Type: FieldString, Keywords: []string{"merchant_trans_id"}},
			{Name: "merchant_id", Type: FieldString, Keywords: []string{"merchant_id", "merchant id"}},
			{Name: "error_code", Type: FieldString, Keywords: []string{"error_code", "error code"}},
			{Name: "commission", Type: FieldAmount, Keywords: []string{"commission"}},
			{Name: "status", Type: FieldString, Keywords: []string{"status"}},
		},
	},
	domain.SourceUzum: {
		Kind:      domain.SourceUzum,
		Threshold: 0.8,
		Required: []Field{
			{Name: "transaction_id", Type: FieldString, Keywords: []string{"transaction_id", "transaction id"}},
			{Name: "transaction_time", Type: FieldTime, Keywords: []string{"transaction_time", "transaction time", "time"}},
			{Name: "amount", Type: FieldAmount, Keywords: []string{"amount"}},
			{Name: "masked_pan", Type: FieldString, Keywords: []string{"masked_pan"}},
		},
		Optional: []Field{
			{Name: "shop_id", Type: FieldString, Keywords: []string{"shop_id", "shop id"}},
			{Name: "cashback_amount", Type: FieldAmount, Keywords: []string{"cashback_amount", "cashback"}},
			{Name: "order_id", Type: FieldString, Keywords: []string{"order_id", "order id"}},
			{Name: "merchant_id", Type: FieldString, Keywords: []string{"merchant_id", "merchant id"}},
			{Name: "commission", Type: FieldAmount, Keywords: []string{"commission"}},
			{Name: "status", Type: FieldString, Keywords: []string{"status"}},
			{Name: "username", Type: FieldString, Keywords: []string{"username"}},
		},
	},
}

// SignatureFor exposes the static signature of a kind, mainly for tests
// and template reporting.
func SignatureFor(kind domain.SourceKind) (Signature, bool) {
	sig, ok := signatures[kind]
	return sig, ok
}
