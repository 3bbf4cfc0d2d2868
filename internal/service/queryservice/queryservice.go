package queryservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/nazimov/vmrecon/internal/domain"
)

type OrderRepo interface {
	FindByFilter(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type Service struct {
	orders OrderRepo
}

func New(orders OrderRepo) *Service {
	return &Service{orders: orders}
}

func (s *Service) GetOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := s.orders.FindByFilter(ctx, filter)
	if err != nil {
		zap.L().Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}
