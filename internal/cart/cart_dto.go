package cart

type AddItemRequest struct {
	// Product carries the raw upstream shape; it is normalized at this
	// boundary before any cart logic runs.
	Product  map[string]any `json:"product" binding:"required"`
	Quantity int            `json:"quantity"`
}

type UpdateQtyRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type ToggleRequest struct {
	Product map[string]any `json:"product" binding:"required"`
}

type CartDetailResponse struct {
	Items         []Item         `json:"items"`
	Count         int            `json:"count"`
	Subtotal      string         `json:"subtotal"`
	Notifications []Notification `json:"notifications,omitempty"`
}

type CartCountResponse struct {
	Count int `json:"count"`
}

type WishlistResponse struct {
	Items         []WishlistItem `json:"items"`
	ItemCount     int            `json:"itemCount"`
	Notifications []Notification `json:"notifications,omitempty"`
}

type ToggleResponse struct {
	Action        ToggleAction   `json:"action"`
	OK            bool           `json:"ok"`
	ItemCount     int            `json:"itemCount"`
	Notifications []Notification `json:"notifications,omitempty"`
}
