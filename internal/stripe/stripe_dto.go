package stripe

type CreateIntentRequest struct {
	OrderID     string       `json:"orderId"`
	AmountCents int64        `json:"amountCents"`
	Currency    string       `json:"currency"`
	Email       string       `json:"email"`
	Items       []ItemDetail `json:"items"`
}

type ItemDetail struct {
	ID    string `json:"id"`
	Price int64  `json:"price"`
	Qty   int32  `json:"qty"`
	Name  string `json:"name"`
}

type CreateIntentResponse struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}
