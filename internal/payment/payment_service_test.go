package payment_test

import (
	"context"
	"errors"
	"testing"

	stripeMock "github.com/sedirimou/Gameva-sub001/internal/mock/stripe"
	"github.com/sedirimou/Gameva-sub001/internal/order"
	"github.com/sedirimou/Gameva-sub001/internal/payment"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"
	"github.com/sedirimou/Gameva-sub001/internal/product"
	"github.com/sedirimou/Gameva-sub001/internal/stripe"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakePricer struct {
	result product.RepriceResult
	err    error
}

func (f *fakePricer) Reprice(_ context.Context, _ []product.RepriceLine) (product.RepriceResult, error) {
	return f.result, f.err
}

type fakeOrders struct {
	created     order.OrderResponse
	createErr   error
	attachedID  string
	attachedPI  string
	markPaidPI  string
	markPaidErr error
}

func (f *fakeOrders) Create(_ context.Context, _ order.CreateInput) (order.OrderResponse, error) {
	return f.created, f.createErr
}

func (f *fakeOrders) AttachPaymentIntent(_ context.Context, orderID, intentID string) error {
	f.attachedID = orderID
	f.attachedPI = intentID
	return nil
}

func (f *fakeOrders) MarkPaid(_ context.Context, paymentIntentID string) (order.OrderResponse, error) {
	f.markPaidPI = paymentIntentID
	return f.created, f.markPaidErr
}

func setupPaymentTest(t *testing.T) (*fakePricer, *fakeOrders, *stripeMock.MockService, store.Provider, payment.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	pricer := &fakePricer{
		result: product.RepriceResult{
			Items: []product.RepricedItem{
				{ProductID: "11111111-1111-1111-1111-111111111111", Name: "Hades II", UnitPrice: 24.99, Quantity: 2, LineTotal: 49.98},
			},
			TotalCents: 4998,
			Display:    "€49.98",
		},
	}
	orders := &fakeOrders{
		created: order.OrderResponse{ID: "order-1", OrderNumber: "GMV-1-ABCD", Total: 49.98},
	}
	stripeSvc := stripeMock.NewMockService(ctrl)
	sessions := store.NewMemoryProvider()

	svc := payment.NewService(payment.Deps{
		Products: pricer,
		Orders:   orders,
		Stripe:   stripeSvc,
		Sessions: sessions,
	})

	return pricer, orders, stripeSvc, sessions, svc
}

func TestPaymentService_CreateIntent(t *testing.T) {
	ctx := context.Background()

	req := payment.CreateIntentRequest{
		Email: "player@example.com",
		Items: []product.RepriceLine{
			{ProductID: "11111111-1111-1111-1111-111111111111", Quantity: 2},
		},
	}

	t.Run("positive - repriced amount reaches stripe, snapshot persisted", func(t *testing.T) {
		_, orders, stripeSvc, sessions, svc := setupPaymentTest(t)

		stripeSvc.EXPECT().
			CreatePaymentIntent(gomock.Any()).
			DoAndReturn(func(r *stripe.CreateIntentRequest) (*stripe.CreateIntentResponse, error) {
				assert.Equal(t, int64(4998), r.AmountCents)
				assert.Equal(t, "eur", r.Currency)
				assert.Equal(t, "order-1", r.OrderID)
				return &stripe.CreateIntentResponse{IntentID: "pi_123", ClientSecret: "cs_secret"}, nil
			})

		res, err := svc.CreateIntent(ctx, "s1", req)

		assert.NoError(t, err)
		assert.Equal(t, "cs_secret", res.ClientSecret)
		assert.Equal(t, int64(4998), res.AmountCents)
		assert.Equal(t, "pi_123", orders.attachedPI)

		var snapshot map[string]any
		ok := store.GetJSON(sessions.ForSession("s1"), store.KeyCheckoutData, &snapshot)
		assert.True(t, ok)
		assert.Equal(t, "order-1", snapshot["orderId"])
	})

	t.Run("negative - non-EUR currency rejected before any side effects", func(t *testing.T) {
		_, _, _, _, svc := setupPaymentTest(t)

		bad := req
		bad.Currency = "USD"

		_, err := svc.CreateIntent(ctx, "s1", bad)
		assert.ErrorIs(t, err, payment.ErrUnsupportedCurrency)
	})

	t.Run("negative - empty item list", func(t *testing.T) {
		_, _, _, _, svc := setupPaymentTest(t)

		_, err := svc.CreateIntent(ctx, "s1", payment.CreateIntentRequest{})
		assert.ErrorIs(t, err, payment.ErrEmptyCheckout)
	})

	t.Run("negative - zero total rejected", func(t *testing.T) {
		pricer, _, _, _, svc := setupPaymentTest(t)
		pricer.result = product.RepriceResult{TotalCents: 0}

		_, err := svc.CreateIntent(ctx, "s1", req)
		assert.ErrorIs(t, err, payment.ErrZeroAmount)
	})

	t.Run("negative - stripe failure surfaces as payment error", func(t *testing.T) {
		_, _, stripeSvc, _, svc := setupPaymentTest(t)

		stripeSvc.EXPECT().
			CreatePaymentIntent(gomock.Any()).
			Return(nil, errors.New("stripe down"))

		_, err := svc.CreateIntent(ctx, "s1", req)
		assert.ErrorIs(t, err, payment.ErrPaymentFailed)
	})

	t.Run("negative - repricing error propagates", func(t *testing.T) {
		pricer, _, _, _, svc := setupPaymentTest(t)
		pricer.err = product.ErrProductNotFound

		_, err := svc.CreateIntent(ctx, "s1", req)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}

func TestPaymentService_HandlePaymentSucceeded(t *testing.T) {
	ctx := context.Background()

	t.Run("positive - marks the order paid", func(t *testing.T) {
		_, orders, _, _, svc := setupPaymentTest(t)

		err := svc.HandlePaymentSucceeded(ctx, "pi_123")
		assert.NoError(t, err)
		assert.Equal(t, "pi_123", orders.markPaidPI)
	})

	t.Run("negative - replay is surfaced to the caller", func(t *testing.T) {
		_, orders, _, _, svc := setupPaymentTest(t)
		orders.markPaidErr = order.ErrInvalidTransition

		err := svc.HandlePaymentSucceeded(ctx, "pi_123")
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}
