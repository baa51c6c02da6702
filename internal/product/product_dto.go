package product

type ListPublicQuery struct {
	Page     int     `form:"page,default=1"`
	Limit    int     `form:"limit,default=20"`
	Search   string  `form:"search"`
	Platform string  `form:"platform"`
	MinPrice float64 `form:"minPrice"`
	MaxPrice float64 `form:"maxPrice"`
	SortBy   string  `form:"sortBy"`
	SortDir  string  `form:"sortDir"`
}

type ListPublicRequest struct {
	Page     int
	Limit    int
	Search   string
	Platform string
	MinPrice float64
	MaxPrice float64
	SortBy   string
	SortDir  string
}

type BatchRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type ProductResponse struct {
	ID             string   `json:"id"`
	ExternalID     string   `json:"externalId,omitempty"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description,omitempty"`
	Price          float64  `json:"price"`
	OriginalPrice  float64  `json:"originalPrice,omitempty"`
	DisplayPrice   string   `json:"displayPrice"`
	Platform       string   `json:"platform,omitempty"`
	Region         string   `json:"region,omitempty"`
	LimitPerBasket int      `json:"limitPerBasket,omitempty"`
	CoverImage     string   `json:"coverImage"`
	Screenshots    []string `json:"screenshots"`
	IsActive       bool     `json:"isActive"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

// UpsertInput is the normalized shape produced by the import consumer
// from an upstream catalog event.
// UpsertInput arrives from the import pipeline, not an HTTP binding,
// so it carries validate tags checked by the service itself.
type UpsertInput struct {
	ExternalID     string   `validate:"required"`
	Name           string   `validate:"required"`
	Description    string
	Price          float64  `validate:"gte=0"`
	OriginalPrice  float64  `validate:"gte=0"`
	Platform       string
	Region         string
	LimitPerBasket int      `validate:"gte=0"`
	CoverImage     string
	Screenshots    []string
}

// RepriceLine is one cart line checkout asks the catalog to re-price.
type RepriceLine struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type RepricedItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
}

type RepriceResult struct {
	Items []RepricedItem `json:"items"`
	// Total is the authoritative amount in euro cents.
	TotalCents int64  `json:"totalCents"`
	Display    string `json:"display"`
}
