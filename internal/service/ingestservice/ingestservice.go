package ingestservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/normalize"
	"github.com/nazimov/vmrecon/internal/schema"
)

type OrderRepo interface {
	Upsert(ctx context.Context, order *domain.Order) error
	FindByKey(ctx context.Context, orderNumber, machineCode string) (*domain.Order, error)
	FindByFiscalCheck(ctx context.Context, checkNumber string) (*domain.Order, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error)
	FindFiscalCandidate(ctx context.Context, at time.Time, window time.Duration, amount, tolerance decimal.Decimal) (*domain.Order, error)
	FindGatewayCandidate(ctx context.Context, at time.Time, window time.Duration, amount, tolerance decimal.Decimal) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status, details string) error
}

type UnmatchedRepo interface {
	Save(ctx context.Context, record *domain.UnmatchedRecord) error
}

type BatchRepo interface {
	MarkDirty(ctx context.Context, batchID string) error
}

type Service struct {
	orders    OrderRepo
	unmatched UnmatchedRepo
	batches   BatchRepo
	mapper    *schema.Mapper
	policy    domain.Policy
}

func New(orders OrderRepo, unmatched UnmatchedRepo, batches BatchRepo, policy domain.Policy) *Service {
	return &Service{
		orders:    orders,
		unmatched: unmatched,
		batches:   batches,
		mapper:    schema.NewMapper(),
		policy:    policy,
	}
}

// Ingest runs one already-decoded tabular file through detection,
// normalization and the matching stage of its kind. Row-level problems
// are counted and skipped; only an unrecognized schema or a storage
// failure aborts the file.
func (s *Service) Ingest(ctx context.Context, batchID string, hint domain.SourceKind, headers []string, rows []domain.Row) (*domain.IngestResult, error) {
	mapping, err := s.mapper.Detect(headers, hint)
	if err != nil {
		zap.L().Info("file schema not recognized",
			zap.String("batch_id", batchID), zap.String("hint", string(hint)))
		return nil, err
	}

	result := &domain.IngestResult{DetectedKind: mapping.Kind}
	for _, row := range rows {
		rec, err := normalize.Normalize(row, mapping)
		if err != nil {
			result.Skipped++
			continue
		}

		payload, err := json.Marshal(row)
		if err != nil {
			result.Skipped++
			continue
		}

		var ingestErr error
		switch mapping.Kind {
		case domain.SourcePrimary:
			var excluded bool
			excluded, ingestErr = s.ingestPrimary(ctx, batchID, rec, payload)
			if excluded {
				result.Skipped++
				continue
			}
		case domain.SourceEnrichment:
			ingestErr = s.ingestEnrichment(ctx, batchID, rec, payload)
		case domain.SourceFiscal:
			ingestErr = s.correlateFiscal(ctx, batchID, rec, payload)
		default:
			ingestErr = s.correlateGateway(ctx, batchID, mapping.Kind, rec, payload)
		}
		if ingestErr != nil {
			return nil, ingestErr
		}
		result.Processed++
	}

	if result.Processed > 0 {
		if err := s.batches.MarkDirty(ctx, batchID); err != nil {
			return nil, err
		}
	}

	zap.L().Info("file ingested",
		zap.String("batch_id", batchID),
		zap.String("kind", string(result.DetectedKind)),
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// ingestPrimary creates or updates the order from a machine log row.
// Refunded rows are excluded entirely; a refunded order is never
// reconciled.
func (s *Service) ingestPrimary(ctx context.Context, batchID string, rec *normalize.Record, payload []byte) (excluded bool, err error) {
	if rec.Time("refund_time") != nil {
		return true, nil
	}

	order := &domain.Order{
		OrderNumber:    rec.Str("order_number"),
		MachineCode:    rec.Str("machine_code"),
		Address:        rec.Str("address"),
		GoodsName:      rec.Str("goods_name"),
		OrderResource:  rec.Str("order_resource"),
		PaymentType:    normalize.PaymentType(rec.Str("payment_type")),
		OrderPrice:     rec.Amount("order_price"),
		CreationTime:   rec.Time("creation_time"),
		PayingTime:     rec.Time("paying_time"),
		BrewingTime:    rec.Time("brewing_time"),
		DeliveryTime:   rec.Time("delivery_time"),
		MatchedSources: []string{string(domain.SourcePrimary)},
		MatchStatus:    domain.StatusPrimaryOnly,
		SourcePayloads: payloads(domain.SourcePrimary, payload),
		BatchID:        batchID,
	}
	return false, s.orders.Upsert(ctx, order)
}

// ingestEnrichment validates the internal-system row against the order's
// activity window and price before merging. Window or price failures are
// terminal for the order; the enrichment fields stay unset.
func (s *Service) ingestEnrichment(ctx context.Context, batchID string, rec *normalize.Record, payload []byte) error {
	orderNumber := rec.Str("order_number")
	machineCode := rec.Str("machine_code")
	eventTime := rec.Time("event_time")
	price := rec.Amount("order_price")

	existing, err := s.orders.FindByKey(ctx, orderNumber, machineCode)
	if err != nil {
		return err
	}

	merge := &domain.Order{
		OrderNumber:    orderNumber,
		MachineCode:    machineCode,
		GoodsName:      rec.Str("goods_name"),
		OrderResource:  rec.Str("order_resource"),
		PaymentType:    normalize.PaymentType(rec.Str("payment_type")),
		OrderPrice:     price,
		BonusAmount:    rec.Amount("bonus_amount"),
		EventTime:      eventTime,
		MatchedSources: []string{string(domain.SourceEnrichment)},
		MatchStatus:    domain.StatusEnrichmentOnly,
		SourcePayloads: payloads(domain.SourceEnrichment, payload),
		BatchID:        batchID,
	}

	if existing == nil || !existing.HasSource(domain.SourcePrimary) {
		// Seen internally but never on the machine. Kept visible as a
		// corroboration gap rather than rejected.
		return s.orders.Upsert(ctx, merge)
	}

	start, end, ok := existing.Window()
	if ok {
		if eventTime.Before(start.Add(-s.policy.TimeTolerance)) || eventTime.After(end.Add(s.policy.TimeTolerance)) {
			details := fmt.Sprintf("event time %s outside order window [%s, %s]",
				eventTime.Format(time.RFC3339), start.Format(time.RFC3339), end.Format(time.RFC3339))
			return s.orders.UpdateStatus(ctx, existing.ID, domain.StatusTimeOutOfRange, details)
		}
		if !existing.OrderPrice.IsZero() && existing.OrderPrice.Sub(price).Abs().GreaterThan(s.policy.AmountTolerance) {
			details := fmt.Sprintf("enrichment price %s differs from order price %s",
				price.String(), existing.OrderPrice.String())
			return s.orders.UpdateStatus(ctx, existing.ID, domain.StatusPriceMismatch, details)
		}
	}

	merge.MatchStatus = domain.StatusMatched
	return s.orders.Upsert(ctx, merge)
}

// correlateFiscal attaches a tax-service receipt to the nearest cash
// order paying within the time tolerance and agreeing on price.
// Uncorrelated receipts are retained for audit.
func (s *Service) correlateFiscal(ctx context.Context, batchID string, rec *normalize.Record, payload []byte) error {
	fiscalTime := rec.Time("fiscal_time")
	amount := rec.Amount("amount")

	// Id-less receipts carry a payload digest in the check-number slot,
	// so the replay lookup fires for them too.
	checkNumber := externalID(rec.Str("fiscal_check_number"), payload)

	existing, err := s.orders.FindByFiscalCheck(ctx, checkNumber)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	candidate, err := s.orders.FindFiscalCandidate(ctx, *fiscalTime, s.policy.TimeTolerance, amount, s.policy.AmountTolerance)
	if err != nil {
		return err
	}
	if candidate == nil {
		return s.unmatched.Save(ctx, &domain.UnmatchedRecord{
			Kind:       domain.SourceFiscal,
			ExternalID: checkNumber,
			RecordTime: fiscalTime,
			Amount:     amount,
			Payload:    payload,
			BatchID:    batchID,
		})
	}

	return s.orders.Upsert(ctx, &domain.Order{
		OrderNumber:       candidate.OrderNumber,
		MachineCode:       candidate.MachineCode,
		FiscalMatched:     true,
		FiscalAmount:      amount,
		FiscalTime:        fiscalTime,
		FiscalCheckNumber: checkNumber,
		TaxpayerID:        rec.Str("taxpayer_id"),
		CashRegisterID:    rec.Str("cash_register_id"),
		MatchedSources:    []string{string(domain.SourceFiscal)},
		SourcePayloads:    payloads(domain.SourceFiscal, payload),
		BatchID:           batchID,
	})
}

// correlateGateway is the card-payment counterpart of correlateFiscal.
// Settlement amounts are gross order values, so no commission is
// subtracted before the tolerance check.
func (s *Service) correlateGateway(ctx context.Context, batchID string, kind domain.SourceKind, rec *normalize.Record, payload []byte) error {
	gatewayTime := rec.Time("transaction_time")
	amount := rec.Amount("amount")

	transactionID := externalID(rec.Str("transaction_id"), payload)

	existing, err := s.orders.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	candidate, err := s.orders.FindGatewayCandidate(ctx, *gatewayTime, s.policy.TimeTolerance, amount, s.policy.AmountTolerance)
	if err != nil {
		return err
	}
	if candidate == nil {
		return s.unmatched.Save(ctx, &domain.UnmatchedRecord{
			Kind:       kind,
			ExternalID: transactionID,
			RecordTime: gatewayTime,
			Amount:     amount,
			Payload:    payload,
			BatchID:    batchID,
		})
	}

	cardNumber := rec.Str("card_number")
	if cardNumber == "" {
		cardNumber = rec.Str("masked_pan")
	}

	return s.orders.Upsert(ctx, &domain.Order{
		OrderNumber:    candidate.OrderNumber,
		MachineCode:    candidate.MachineCode,
		GatewayMatched: true,
		GatewayAmount:  amount,
		GatewayTime:    gatewayTime,
		PaymentGateway: string(kind),
		TransactionID:  transactionID,
		CardNumber:     cardNumber,
		MerchantID:     rec.Str("merchant_id"),
		TerminalID:     rec.Str("terminal_id"),
		ShopID:         rec.Str("shop_id"),
		CashbackAmount: rec.Amount("cashback_amount"),
		MatchedSources: []string{string(kind)},
		SourcePayloads: payloads(kind, payload),
		BatchID:        batchID,
	})
}

func payloads(kind domain.SourceKind, payload []byte) map[string]json.RawMessage {
	return map[string]json.RawMessage{string(kind): payload}
}

// externalID falls back to a payload digest for sources that export rows
// without a usable identifier, so replays still dedupe.
func externalID(id string, payload []byte) string {
	if id != "" {
		return id
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:8])
}
