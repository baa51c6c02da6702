package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/currency"
	"github.com/sedirimou/Gameva-sub001/internal/outbox"
	"github.com/sedirimou/Gameva-sub001/internal/shared/database/helper"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateInput) (OrderResponse, error)
	Detail(ctx context.Context, orderID, sessionID string) (OrderResponse, error)
	ListBySession(ctx context.Context, sessionID string, page, limit int) ([]OrderResponse, int64, error)
	AttachPaymentIntent(ctx context.Context, orderID, intentID string) error
	MarkPaid(ctx context.Context, paymentIntentID string) (OrderResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	outboxRepo outbox.Repository
	logger     *zap.Logger
}

type Deps struct {
	DB         *sql.DB
	Repo       Repository
	OutboxRepo outbox.Repository
	Logger     *zap.Logger
}

var paymentStatusTransitions = map[string]map[string]struct{}{
	"UNPAID": {
		"PAID":     {},
		"REFUNDED": {},
	},
	"PAID": {
		"REFUNDED": {},
	},
	"REFUNDED": {},
}

func NewService(deps Deps) Service {
	if deps.DB == nil {
		panic("db cannot be nil")
	}
	if deps.Repo == nil {
		panic("order repository cannot be nil")
	}
	if deps.OutboxRepo == nil {
		panic("outbox repository cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		db:         deps.DB,
		repo:       deps.Repo,
		outboxRepo: deps.OutboxRepo,
		logger:     deps.Logger,
	}
}

// Create persists the order, its items and an order.created outbox
// event in a single transaction. The worker picks the event up and
// publishes it to Kafka after commit.
func (s *service) Create(ctx context.Context, input CreateInput) (OrderResponse, error) {
	if len(input.Items) == 0 {
		return OrderResponse{}, ErrEmptyOrder
	}

	logger := s.logger.With(zap.String("session_id", input.SessionID))

	subtotal := decimal.Zero
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return OrderResponse{}, ErrEmptyOrder
		}
		line := helper.Float64ToDecimalExact(item.UnitPrice).
			Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	total := subtotal

	orderNumber := fmt.Sprintf("GMV-%d-%s", time.Now().Unix(), strings.ToUpper(uuid.New().String()[:4]))
	logger = logger.With(zap.String("order_number", orderNumber))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", zap.Error(err))
		return OrderResponse{}, ErrOrderFailed
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
			logger.Warn("transaction rolled back")
		}
	}()

	qtx := s.repo.WithTx(tx)

	created, err := qtx.CreateOrder(ctx, CreateOrderParams{
		OrderNumber:   orderNumber,
		SessionID:     input.SessionID,
		Email:         helper.RawStringToNull(input.Email),
		Status:        "PENDING",
		PaymentStatus: "UNPAID",
		Subtotal:      subtotal.StringFixed(2),
		Total:         total.StringFixed(2),
		Currency:      currency.Euro.Code,
	})
	if err != nil {
		logger.Error("failed to create order record", zap.Error(err))
		return OrderResponse{}, err
	}

	items := make([]OrderItemResponse, 0, len(input.Items))
	for _, item := range input.Items {
		productID, perr := uuid.Parse(item.ProductID)
		if perr != nil {
			return OrderResponse{}, ErrInvalidOrderID
		}

		unit := helper.Float64ToDecimalExact(item.UnitPrice)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))

		err = qtx.CreateOrderItem(ctx, CreateOrderItemParams{
			OrderID:      created.ID,
			ProductID:    productID,
			NameSnapshot: item.Name,
			UnitPrice:    unit.StringFixed(2),
			Quantity:     int32(item.Quantity),
			TotalPrice:   lineTotal.StringFixed(2),
		})
		if err != nil {
			logger.Error("failed to create order item", zap.String("product_id", item.ProductID), zap.Error(err))
			return OrderResponse{}, err
		}

		items = append(items, OrderItemResponse{
			ProductID:    item.ProductID,
			NameSnapshot: item.Name,
			UnitPrice:    unit.InexactFloat64(),
			Quantity:     int32(item.Quantity),
			TotalPrice:   lineTotal.InexactFloat64(),
		})
	}

	payload, _ := json.Marshal(map[string]string{
		"order_id":     created.ID.String(),
		"order_number": orderNumber,
		"session_id":   input.SessionID,
		"email":        input.Email,
		"total":        total.StringFixed(2),
		"currency":     currency.Euro.Code,
	})

	err = s.outboxRepo.WithTx(tx).CreateEvent(ctx, outbox.CreateEventParams{
		ID:            uuid.New(),
		AggregateType: "ORDER",
		AggregateID:   created.ID,
		EventType:     "ORDER_CREATED",
		Payload:       payload,
	})
	if err != nil {
		logger.Error("failed to create outbox event", zap.Error(err))
		return OrderResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", zap.Error(err))
		return OrderResponse{}, ErrOrderFailed
	}
	committed = true

	logger.Info("order created", zap.String("order_id", created.ID.String()))
	return s.mapOrderToResponse(created, items), nil
}

// Detail is session-scoped: a session can only read its own orders.
func (s *service) Detail(ctx context.Context, orderID, sessionID string) (OrderResponse, error) {
	parsed, err := uuid.Parse(orderID)
	if err != nil {
		return OrderResponse{}, ErrInvalidOrderID
	}

	o, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, ErrOrderNotFound
		}
		return OrderResponse{}, fmt.Errorf("failed to get order: %w", err)
	}

	if sessionID == "" || o.SessionID != sessionID {
		return OrderResponse{}, ErrOrderNotFound
	}

	items, err := s.repo.GetItems(ctx, parsed)
	if err != nil {
		return OrderResponse{}, fmt.Errorf("failed to get order items: %w", err)
	}

	return s.mapOrderToResponse(o, mapItems(items)), nil
}

func (s *service) ListBySession(ctx context.Context, sessionID string, page, limit int) ([]OrderResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	rows, err := s.repo.ListBySession(ctx, ListParams{
		SessionID: sessionID,
		Limit:     int32(limit),
		Offset:    int32((page - 1) * limit),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	res := make([]OrderResponse, 0, len(rows))
	var total int64
	for _, row := range rows {
		total = row.TotalCount
		res = append(res, s.mapOrderToResponse(row.Order, nil))
	}
	return res, total, nil
}

func (s *service) AttachPaymentIntent(ctx context.Context, orderID, intentID string) error {
	parsed, err := uuid.Parse(orderID)
	if err != nil {
		return ErrInvalidOrderID
	}
	return s.repo.AttachPaymentIntent(ctx, parsed, intentID)
}

// MarkPaid handles a successful payment notification. The transition
// table rejects replays: a PAID order cannot go PAID again.
func (s *service) MarkPaid(ctx context.Context, paymentIntentID string) (OrderResponse, error) {
	logger := s.logger.With(zap.String("payment_intent_id", paymentIntentID))

	o, err := s.repo.GetByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, ErrOrderNotFound
		}
		return OrderResponse{}, fmt.Errorf("failed to look up order by intent: %w", err)
	}

	allowed, ok := paymentStatusTransitions[o.PaymentStatus]
	if !ok {
		return OrderResponse{}, ErrInvalidTransition
	}
	if _, ok := allowed["PAID"]; !ok {
		return OrderResponse{}, ErrInvalidTransition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OrderResponse{}, ErrOrderFailed
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	qtx := s.repo.WithTx(tx)

	updated, err := qtx.UpdatePaymentStatus(ctx, UpdatePaymentStatusParams{
		ID:            o.ID,
		PaymentStatus: "PAID",
	})
	if err != nil {
		logger.Error("failed to update payment status", zap.Error(err))
		return OrderResponse{}, err
	}

	payload, _ := json.Marshal(map[string]string{
		"order_id":     o.ID.String(),
		"order_number": o.OrderNumber,
		"session_id":   o.SessionID,
		"email":        o.Email.String,
		"total":        o.Total,
		"currency":     o.Currency,
	})

	err = s.outboxRepo.WithTx(tx).CreateEvent(ctx, outbox.CreateEventParams{
		ID:            uuid.New(),
		AggregateType: "ORDER",
		AggregateID:   o.ID,
		EventType:     "ORDER_PAID",
		Payload:       payload,
	})
	if err != nil {
		logger.Error("failed to create outbox event", zap.Error(err))
		return OrderResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OrderResponse{}, ErrOrderFailed
	}
	committed = true

	logger.Info("order marked paid", zap.String("order_id", o.ID.String()))
	return s.mapOrderToResponse(updated, nil), nil
}

func mapItems(items []OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		unit, _ := strconv.ParseFloat(item.UnitPrice, 64)
		lineTotal, _ := strconv.ParseFloat(item.TotalPrice, 64)
		out = append(out, OrderItemResponse{
			ProductID:    item.ProductID.String(),
			NameSnapshot: item.NameSnapshot,
			UnitPrice:    unit,
			Quantity:     item.Quantity,
			TotalPrice:   lineTotal,
		})
	}
	return out
}

func (s *service) mapOrderToResponse(o Order, items []OrderItemResponse) OrderResponse {
	subtotal, _ := strconv.ParseFloat(o.Subtotal, 64)
	total, _ := strconv.ParseFloat(o.Total, 64)

	if items == nil {
		items = []OrderItemResponse{}
	}

	return OrderResponse{
		ID:            o.ID.String(),
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Subtotal:      subtotal,
		Total:         total,
		DisplayTotal:  currency.Euro.Symbol + decimal.NewFromFloat(total).StringFixed(2),
		Currency:      o.Currency,
		Email:         o.Email.String,
		PlacedAt:      o.PlacedAt,
		Items:         items,
	}
}
