package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nazimov/vmrecon/internal/domain"
	"github.com/nazimov/vmrecon/internal/pg"
)

const orderColumns = `id, order_number, machine_code, address, goods_name, order_resource,
        payment_type, order_price, bonus_amount, fiscal_amount, gateway_amount, cashback_amount,
        creation_time, paying_time, brewing_time, delivery_time, refund_time, event_time,
        fiscal_time, gateway_time, payment_gateway, fiscal_check_number, taxpayer_id,
        cash_register_id, transaction_id, card_number, merchant_id, terminal_id, shop_id,
        fiscal_matched, gateway_matched, matched_sources, match_status, mismatch_details,
        source_payloads, batch_id, created_at, updated_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Upsert merges an incoming partial order into the stored one, keyed by
// (order_number, machine_code). Merge rules: empty strings and zero
// amounts never overwrite, order_price is write-once, timestamps fill
// gaps, matched flags only turn on, matched_sources is a set union,
// source_payloads accumulate, and already evaluated statuses are sticky.
func (r *Repository) Upsert(ctx context.Context, order *domain.Order) error {
	query := `
        INSERT INTO orders (order_number, machine_code, address, goods_name, order_resource,
            payment_type, order_price, bonus_amount, fiscal_amount, gateway_amount, cashback_amount,
            creation_time, paying_time, brewing_time, delivery_time, refund_time, event_time,
            fiscal_time, gateway_time, payment_gateway, fiscal_check_number, taxpayer_id,
            cash_register_id, transaction_id, card_number, merchant_id, terminal_id, shop_id,
            fiscal_matched, gateway_matched, matched_sources, match_status, mismatch_details,
            source_payloads, batch_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
            $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35)
        ON CONFLICT (order_number, machine_code) DO UPDATE SET
            address = COALESCE(NULLIF(EXCLUDED.address, ''), orders.address),
            goods_name = COALESCE(NULLIF(EXCLUDED.goods_name, ''), orders.goods_name),
            order_resource = COALESCE(NULLIF(EXCLUDED.order_resource, ''), orders.order_resource),
            payment_type = CASE
                WHEN EXCLUDED.payment_type <> 'Unknown' THEN EXCLUDED.payment_type
                ELSE orders.payment_type
            END,
            order_price = CASE
                WHEN orders.order_price = 0 THEN EXCLUDED.order_price
                ELSE orders.order_price
            END,
            bonus_amount = COALESCE(NULLIF(EXCLUDED.bonus_amount, 0), orders.bonus_amount),
            fiscal_amount = COALESCE(NULLIF(EXCLUDED.fiscal_amount, 0), orders.fiscal_amount),
            gateway_amount = COALESCE(NULLIF(EXCLUDED.gateway_amount, 0), orders.gateway_amount),
            cashback_amount = COALESCE(NULLIF(EXCLUDED.cashback_amount, 0), orders.cashback_amount),
            creation_time = COALESCE(EXCLUDED.creation_time, orders.creation_time),
            paying_time = COALESCE(EXCLUDED.paying_time, orders.paying_time),
            brewing_time = COALESCE(EXCLUDED.brewing_time, orders.brewing_time),
            delivery_time = COALESCE(EXCLUDED.delivery_time, orders.delivery_time),
            refund_time = COALESCE(EXCLUDED.refund_time, orders.refund_time),
            event_time = COALESCE(EXCLUDED.event_time, orders.event_time),
            fiscal_time = COALESCE(EXCLUDED.fiscal_time, orders.fiscal_time),
            gateway_time = COALESCE(EXCLUDED.gateway_time, orders.gateway_time),
            payment_gateway = COALESCE(NULLIF(EXCLUDED.payment_gateway, ''), orders.payment_gateway),
            fiscal_check_number = COALESCE(NULLIF(EXCLUDED.fiscal_check_number, ''), orders.fiscal_check_number),
            taxpayer_id = COALESCE(NULLIF(EXCLUDED.taxpayer_id, ''), orders.taxpayer_id),
            cash_register_id = COALESCE(NULLIF(EXCLUDED.cash_register_id, ''), orders.cash_register_id),
            transaction_id = COALESCE(NULLIF(EXCLUDED.transaction_id, ''), orders.transaction_id),
            card_number = COALESCE(NULLIF(EXCLUDED.card_number, ''), orders.card_number),
            merchant_id = COALESCE(NULLIF(EXCLUDED.merchant_id, ''), orders.merchant_id),
            terminal_id = COALESCE(NULLIF(EXCLUDED.terminal_id, ''), orders.terminal_id),
            shop_id = COALESCE(NULLIF(EXCLUDED.shop_id, ''), orders.shop_id),
            fiscal_matched = orders.fiscal_matched OR EXCLUDED.fiscal_matched,
            gateway_matched = orders.gateway_matched OR EXCLUDED.gateway_matched,
            matched_sources = ARRAY(
                SELECT DISTINCT s FROM unnest(orders.matched_sources || EXCLUDED.matched_sources) AS s
            ),
            match_status = CASE
                WHEN orders.match_status IN ('MATCHED', 'FULLY_MATCHED', 'TIME_OUT_OF_RANGE',
                    'PRICE_MISMATCH', 'FISCAL_MISMATCH', 'GATEWAY_MISMATCH') THEN orders.match_status
                WHEN EXCLUDED.match_status <> '' THEN EXCLUDED.match_status
                ELSE orders.match_status
            END,
            mismatch_details = COALESCE(NULLIF(EXCLUDED.mismatch_details, ''), orders.mismatch_details),
            source_payloads = orders.source_payloads || EXCLUDED.source_payloads,
            batch_id = COALESCE(NULLIF(EXCLUDED.batch_id, ''), orders.batch_id),
            updated_at = CURRENT_TIMESTAMP
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			order.OrderNumber, order.MachineCode, order.Address, order.GoodsName, order.OrderResource,
			order.PaymentType, order.OrderPrice, order.BonusAmount, order.FiscalAmount,
			order.GatewayAmount, order.CashbackAmount,
			order.CreationTime, order.PayingTime, order.BrewingTime, order.DeliveryTime,
			order.RefundTime, order.EventTime, order.FiscalTime, order.GatewayTime,
			order.PaymentGateway, order.FiscalCheckNumber, order.TaxpayerID, order.CashRegisterID,
			order.TransactionID, order.CardNumber, order.MerchantID, order.TerminalID, order.ShopID,
			order.FiscalMatched, order.GatewayMatched, order.MatchedSources,
			order.MatchStatus, order.MismatchDetails, order.SourcePayloads, order.BatchID,
		)
		if err != nil {
			zap.L().Error("can't upsert order", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *Repository) FindByKey(ctx context.Context, orderNumber, machineCode string) (*domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM orders
        WHERE order_number = $1 AND machine_code = $2
    `, orderColumns)
	return r.findOne(ctx, query, orderNumber, machineCode)
}

func (r *Repository) FindByFiscalCheck(ctx context.Context, checkNumber string) (*domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM orders
        WHERE fiscal_check_number = $1
    `, orderColumns)
	return r.findOne(ctx, query, checkNumber)
}

func (r *Repository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM orders
        WHERE transaction_id = $1
    `, orderColumns)
	return r.findOne(ctx, query, transactionID)
}

// FindFiscalCandidate picks the cash order whose paying time is nearest to
// the receipt time within the window and whose price agrees within the
// amount tolerance.
func (r *Repository) FindFiscalCandidate(ctx context.Context, at time.Time, window time.Duration, amount, tolerance decimal.Decimal) (*domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM orders
        WHERE payment_type = 'Cash'
          AND fiscal_matched = FALSE
          AND paying_time IS NOT NULL
          AND paying_time BETWEEN $1 AND $2
          AND ABS(order_price - $3) <= $4
        ORDER BY ABS(EXTRACT(EPOCH FROM (paying_time - $5)))
        LIMIT 1
    `, orderColumns)
	return r.findOne(ctx, query, at.Add(-window), at.Add(window), amount, tolerance, at)
}

// FindGatewayCandidate is the card-payment counterpart of
// FindFiscalCandidate. Gateway amounts are compared gross, so commissions
// never enter the tolerance check.
func (r *Repository) FindGatewayCandidate(ctx context.Context, at time.Time, window time.Duration, amount, tolerance decimal.Decimal) (*domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM orders
        WHERE payment_type = 'CustomPayment'
          AND gateway_matched = FALSE
          AND paying_time IS NOT NULL
          AND paying_time BETWEEN $1 AND $2
          AND ABS(order_price - $3) <= $4
        ORDER BY ABS(EXTRACT(EPOCH FROM (paying_time - $5)))
        LIMIT 1
    `, orderColumns)
	return r.findOne(ctx, query, at.Add(-window), at.Add(window), amount, tolerance, at)
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status, details string) error {
	query := `
        UPDATE orders
        SET match_status = $1, mismatch_details = $2, updated_at = CURRENT_TIMESTAMP
        WHERE id = $3
    `
	_, err := r.db.Exec(ctx, query, status, details, id)
	if err != nil {
		zap.L().Error("can't update order status", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByBatch(ctx context.Context, batchID string) ([]domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM orders
        WHERE ($1 = '' OR batch_id = $1)
        ORDER BY id ASC
    `, orderColumns)
	return r.findMany(ctx, query, batchID)
}

func (r *Repository) FindByFilter(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s
        FROM orders
        WHERE ($1 = '' OR match_status = $1)
          AND ($2 = '' OR machine_code = $2)
          AND ($3::timestamp IS NULL OR creation_time >= $3)
          AND ($4::timestamp IS NULL OR creation_time <= $4)
        ORDER BY creation_time DESC NULLS LAST, id DESC
    `, orderColumns)
	return r.findMany(ctx, query, filter.MatchStatus, filter.MachineCode, filter.From, filter.To)
}

func (r *Repository) StatusCounts(ctx context.Context) (map[string]int, error) {
	query := `
        SELECT match_status, COUNT(*)
        FROM orders
        GROUP BY match_status
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't count orders by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			zap.L().Error("can't scan status count row", zap.Error(err))
			return nil, err
		}
		counts[status] = count
	}
	return counts, nil
}

func (r *Repository) findOne(ctx context.Context, query string, args ...any) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, query, args...)

	var order domain.Order
	err := scanOrder(row, &order)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			zap.L().Error("can't scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func scanOrder(row pgx.Row, order *domain.Order) error {
	return row.Scan(
		&order.ID, &order.OrderNumber, &order.MachineCode, &order.Address, &order.GoodsName,
		&order.OrderResource, &order.PaymentType, &order.OrderPrice, &order.BonusAmount,
		&order.FiscalAmount, &order.GatewayAmount, &order.CashbackAmount,
		&order.CreationTime, &order.PayingTime, &order.BrewingTime, &order.DeliveryTime,
		&order.RefundTime, &order.EventTime, &order.FiscalTime, &order.GatewayTime,
		&order.PaymentGateway, &order.FiscalCheckNumber, &order.TaxpayerID, &order.CashRegisterID,
		&order.TransactionID, &order.CardNumber, &order.MerchantID, &order.TerminalID, &order.ShopID,
		&order.FiscalMatched, &order.GatewayMatched, &order.MatchedSources,
		&order.MatchStatus, &order.MismatchDetails, &order.SourcePayloads,
		&order.BatchID, &order.CreatedAt, &order.UpdatedAt,
	)
}
