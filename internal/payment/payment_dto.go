package payment

import "github.com/sedirimou/Gameva-sub001/internal/product"

type CreateIntentRequest struct {
	Email    string                `json:"email" binding:"omitempty,email"`
	Currency string                `json:"currency"`
	Items    []product.RepriceLine `json:"items" binding:"required,min=1,dive"`
}

type CreateIntentResponse struct {
	OrderID      string                 `json:"orderId"`
	OrderNumber  string                 `json:"orderNumber"`
	ClientSecret string                 `json:"clientSecret"`
	AmountCents  int64                  `json:"amountCents"`
	Display      string                 `json:"display"`
	Items        []product.RepricedItem `json:"items"`
}
