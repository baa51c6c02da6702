package order

import "time"

type CreateItemInput struct {
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
}

type CreateInput struct {
	SessionID string
	Email     string
	Items     []CreateItemInput
}

type OrderItemResponse struct {
	ProductID    string  `json:"productId"`
	NameSnapshot string  `json:"name"`
	UnitPrice    float64 `json:"unitPrice"`
	Quantity     int32   `json:"quantity"`
	TotalPrice   float64 `json:"totalPrice"`
}

type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"paymentStatus"`
	Subtotal      float64             `json:"subtotal"`
	Total         float64             `json:"total"`
	DisplayTotal  string              `json:"displayTotal"`
	Currency      string              `json:"currency"`
	Email         string              `json:"email,omitempty"`
	PlacedAt      time.Time           `json:"placedAt"`
	Items         []OrderItemResponse `json:"items"`
}
