package reconcileservice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nazimov/vmrecon/internal/domain"
)

type OrderRepo interface {
	FindByBatch(ctx context.Context, batchID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status, details string) error
	StatusCounts(ctx context.Context) (map[string]int, error)
}

type BatchRepo interface {
	ClearDirty(ctx context.Context, batchID string) error
}

type Service struct {
	orders  OrderRepo
	batches BatchRepo
	policy  domain.Policy
}

func New(orders OrderRepo, batches BatchRepo, policy domain.Policy) *Service {
	return &Service{
		orders:  orders,
		batches: batches,
		policy:  policy,
	}
}

// Classify derives the final status of an order from its sources and
// corroboration flags. Pure function; terminal statuses pass through
// untouched.
func Classify(order *domain.Order, policy domain.Policy) (status, details string) {
	switch order.MatchStatus {
	case domain.StatusTimeOutOfRange, domain.StatusPriceMismatch:
		return order.MatchStatus, order.MismatchDetails
	}

	hasPrimary := order.HasSource(domain.SourcePrimary)
	hasEnrichment := order.HasSource(domain.SourceEnrichment)

	switch {
	case hasPrimary && hasEnrichment:
		if policy.ExemptTypes[order.PaymentType] {
			return domain.StatusFullyMatched,
				fmt.Sprintf("no corroboration required for %s payments", order.PaymentType)
		}
		switch order.PaymentType {
		case domain.PaymentCash:
			if order.FiscalMatched {
				return domain.StatusFullyMatched, ""
			}
			return domain.StatusFiscalMismatch, "cash order has no fiscal receipt"
		case domain.PaymentCustom:
			if order.GatewayMatched {
				return domain.StatusFullyMatched, ""
			}
			return domain.StatusGatewayMismatch, "card order has no gateway settlement"
		default:
			return domain.StatusMatched, "payment type unknown, corroboration requirement undetermined"
		}
	case hasPrimary:
		return domain.StatusPrimaryOnly, ""
	case hasEnrichment:
		return domain.StatusEnrichmentOnly, ""
	case order.HasSource(domain.SourcePayme):
		return domain.StatusPaymeOnly, ""
	case order.HasSource(domain.SourceClick):
		return domain.StatusClickOnly, ""
	case order.HasSource(domain.SourceUzum):
		return domain.StatusUzumOnly, ""
	}
	return domain.StatusUnmatched, ""
}

// Reconcile classifies every order touched by the batch and returns the
// resulting status histogram.
func (s *Service) Reconcile(ctx context.Context, batchID string) (*domain.ReconciliationStats, error) {
	orders, err := s.orders.FindByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	stats := &domain.ReconciliationStats{ByStatus: make(map[string]int)}
	for i := range orders {
		order := &orders[i]
		status, details := Classify(order, s.policy)
		if status != order.MatchStatus || details != order.MismatchDetails {
			if err := s.orders.UpdateStatus(ctx, order.ID, status, details); err != nil {
				return nil, err
			}
		}
		stats.ByStatus[status]++
		stats.Total++
	}

	if err := s.batches.ClearDirty(ctx, batchID); err != nil {
		return nil, err
	}

	zap.L().Info("batch reconciled",
		zap.String("batch_id", batchID), zap.Int("orders", stats.Total))
	return stats, nil
}

// Stats returns the status histogram over the whole store.
func (s *Service) Stats(ctx context.Context) (*domain.ReconciliationStats, error) {
	counts, err := s.orders.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	stats := &domain.ReconciliationStats{ByStatus: counts}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}
