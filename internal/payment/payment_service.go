package payment

import (
	"context"
	"strings"

	"github.com/sedirimou/Gameva-sub001/internal/currency"
	"github.com/sedirimou/Gameva-sub001/internal/order"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"
	"github.com/sedirimou/Gameva-sub001/internal/product"
	"github.com/sedirimou/Gameva-sub001/internal/stripe"

	"go.uber.org/zap"
)

// ProductPricer is the slice of the catalog service checkout needs.
type ProductPricer interface {
	Reprice(ctx context.Context, lines []product.RepriceLine) (product.RepriceResult, error)
}

// OrderWriter is the slice of the order service checkout needs.
type OrderWriter interface {
	Create(ctx context.Context, input order.CreateInput) (order.OrderResponse, error)
	AttachPaymentIntent(ctx context.Context, orderID, intentID string) error
	MarkPaid(ctx context.Context, paymentIntentID string) (order.OrderResponse, error)
}

type Service interface {
	CreateIntent(ctx context.Context, sessionID string, req CreateIntentRequest) (CreateIntentResponse, error)
	HandlePaymentSucceeded(ctx context.Context, paymentIntentID string) error
}

type service struct {
	products ProductPricer
	orders   OrderWriter
	stripe   stripe.Service
	sessions store.Provider
	logger   *zap.Logger
}

type Deps struct {
	Products ProductPricer
	Orders   OrderWriter
	Stripe   stripe.Service
	Sessions store.Provider
	Logger   *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Products == nil {
		panic("product pricer cannot be nil")
	}
	if deps.Orders == nil {
		panic("order writer cannot be nil")
	}
	if deps.Stripe == nil {
		panic("stripe service cannot be nil")
	}
	if deps.Sessions == nil {
		panic("session store provider cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		products: deps.Products,
		orders:   deps.Orders,
		stripe:   deps.Stripe,
		sessions: deps.Sessions,
		logger:   deps.Logger,
	}
}

// CreateIntent re-prices the submitted cart against the catalog,
// persists a pending order and opens a Stripe payment intent for the
// authoritative total. Client-side amounts are never trusted.
func (s *service) CreateIntent(ctx context.Context, sessionID string, req CreateIntentRequest) (CreateIntentResponse, error) {
	logger := s.logger.With(zap.String("session_id", sessionID))

	if len(req.Items) == 0 {
		return CreateIntentResponse{}, ErrEmptyCheckout
	}
	if req.Currency != "" && !strings.EqualFold(req.Currency, currency.Euro.Code) {
		return CreateIntentResponse{}, ErrUnsupportedCurrency
	}

	priced, err := s.products.Reprice(ctx, req.Items)
	if err != nil {
		logger.Warn("repricing failed", zap.Error(err))
		return CreateIntentResponse{}, err
	}
	if priced.TotalCents <= 0 {
		return CreateIntentResponse{}, ErrZeroAmount
	}

	orderItems := make([]order.CreateItemInput, 0, len(priced.Items))
	for _, item := range priced.Items {
		orderItems = append(orderItems, order.CreateItemInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	created, err := s.orders.Create(ctx, order.CreateInput{
		SessionID: sessionID,
		Email:     req.Email,
		Items:     orderItems,
	})
	if err != nil {
		logger.Error("order creation failed", zap.Error(err))
		return CreateIntentResponse{}, err
	}
	logger = logger.With(zap.String("order_id", created.ID))

	stripeItems := make([]stripe.ItemDetail, 0, len(priced.Items))
	for _, item := range priced.Items {
		stripeItems = append(stripeItems, stripe.ItemDetail{
			ID:    item.ProductID,
			Price: int64(item.UnitPrice * 100),
			Qty:   int32(item.Quantity),
			Name:  item.Name,
		})
	}

	intent, err := s.stripe.CreatePaymentIntent(&stripe.CreateIntentRequest{
		OrderID:     created.ID,
		AmountCents: priced.TotalCents,
		Currency:    strings.ToLower(currency.Euro.Code),
		Email:       req.Email,
		Items:       stripeItems,
	})
	if err != nil {
		logger.Error("stripe intent creation failed", zap.Error(err))
		return CreateIntentResponse{}, ErrPaymentFailed
	}
	if intent == nil {
		logger.Error("stripe returned nil intent")
		return CreateIntentResponse{}, ErrPaymentFailed
	}

	if err := s.orders.AttachPaymentIntent(ctx, created.ID, intent.IntentID); err != nil {
		logger.Error("failed to attach payment intent", zap.Error(err))
		return CreateIntentResponse{}, ErrPaymentFailed
	}

	// Best effort: the session snapshot only feeds the confirmation
	// page; the order row is the source of truth.
	session := s.sessions.ForSession(sessionID)
	if !store.SetJSON(session, store.KeyCheckoutData, map[string]any{
		"orderId":     created.ID,
		"orderNumber": created.OrderNumber,
		"amountCents": priced.TotalCents,
		"display":     priced.Display,
	}) {
		logger.Warn("failed to persist checkout snapshot")
	}
	if !store.SetJSON(session, store.KeyLastOrder, created) {
		logger.Warn("failed to persist last order snapshot")
	}

	logger.Info("payment intent created", zap.Int64("amount_cents", priced.TotalCents))

	return CreateIntentResponse{
		OrderID:      created.ID,
		OrderNumber:  created.OrderNumber,
		ClientSecret: intent.ClientSecret,
		AmountCents:  priced.TotalCents,
		Display:      priced.Display,
		Items:        priced.Items,
	}, nil
}

// HandlePaymentSucceeded is invoked by the Stripe webhook once the
// intent settles.
func (s *service) HandlePaymentSucceeded(ctx context.Context, paymentIntentID string) error {
	paid, err := s.orders.MarkPaid(ctx, paymentIntentID)
	if err != nil {
		return err
	}

	s.logger.Info("payment settled",
		zap.String("order_id", paid.ID),
		zap.String("payment_intent_id", paymentIntentID),
	)
	return nil
}
