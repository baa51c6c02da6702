package stripe

import (
	"fmt"
	"os"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

//go:generate mockgen -source=stripe_service.go -destination=../mock/stripe/stripe_service_mock.go -package=mock
type Service interface {
	CreatePaymentIntent(req *CreateIntentRequest) (*CreateIntentResponse, error)
}

type service struct{}

func NewService() Service {
	stripego.Key = os.Getenv("STRIPE_SECRET_KEY")
	return &service{}
}

func (s *service) CreatePaymentIntent(req *CreateIntentRequest) (*CreateIntentResponse, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %d", req.AmountCents)
	}

	params := &stripego.PaymentIntentParams{
		Amount:   stripego.Int64(req.AmountCents),
		Currency: stripego.String(req.Currency),
		AutomaticPaymentMethods: &stripego.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripego.Bool(true),
		},
	}
	if req.Email != "" {
		params.ReceiptEmail = stripego.String(req.Email)
	}
	params.AddMetadata("order_id", req.OrderID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}

	return &CreateIntentResponse{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}
