package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/currency"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	ListPublic(ctx context.Context, req ListPublicRequest) ([]ProductResponse, int64, error)
	GetBySlug(ctx context.Context, slug string) (ProductResponse, error)
	GetByID(ctx context.Context, id string) (ProductResponse, error)
	Batch(ctx context.Context, ids []string) ([]ProductResponse, error)
	Reprice(ctx context.Context, lines []RepriceLine) (RepriceResult, error)
	Upsert(ctx context.Context, input UpsertInput) (ProductResponse, error)
	Deactivate(ctx context.Context, externalID string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
}

type Deps struct {
	DB     *sql.DB
	Repo   Repository
	Logger *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.DB == nil {
		panic("db cannot be nil")
	}
	if deps.Repo == nil {
		panic("product repository cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		db:       deps.DB,
		repo:     deps.Repo,
		validate: validator.New(),
		logger:   deps.Logger,
	}
}

const maxListLimit = 100

func (s *service) ListPublic(ctx context.Context, req ListPublicRequest) ([]ProductResponse, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 {
		req.Limit = 20
	}
	if req.Limit > maxListLimit {
		req.Limit = maxListLimit
	}

	maxPrice := req.MaxPrice
	if maxPrice <= 0 {
		maxPrice = 999999999
	}

	params := ListParams{
		Limit:    int32(req.Limit),
		Offset:   int32((req.Page - 1) * req.Limit),
		Search:   nullString(req.Search),
		Platform: nullString(req.Platform),
		MinPrice: decimal.NewFromFloat(req.MinPrice).StringFixed(2),
		MaxPrice: decimal.NewFromFloat(maxPrice).StringFixed(2),
		SortCol:  req.SortBy,
		SortDir:  req.SortDir,
	}

	rows, err := s.repo.ListPublic(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	var total int64
	out := make([]ProductResponse, 0, len(rows))
	for _, row := range rows {
		total = row.TotalCount
		out = append(out, toResponse(row.Product))
	}
	return out, total, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (ProductResponse, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, fmt.Errorf("failed to get product: %w", err)
	}
	return toResponse(p), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProductResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("invalid product id: %w", err)
	}

	p, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ProductResponse{}, ErrProductNotFound
		}
		return ProductResponse{}, fmt.Errorf("failed to get product: %w", err)
	}
	return toResponse(p), nil
}

// Batch resolves a list of product IDs in one query. IDs that do not
// parse or do not exist are skipped, not errors: the storefront sends
// whatever it has persisted locally.
func (s *service) Batch(ctx context.Context, ids []string) ([]ProductResponse, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyBatch
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			s.logger.Debug("skipping unparseable product id", zap.String("id", id))
			continue
		}
		parsed = append(parsed, u)
	}
	if len(parsed) == 0 {
		return []ProductResponse{}, nil
	}

	products, err := s.repo.GetByIDs(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to batch fetch products: %w", err)
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toResponse(p))
	}
	return out, nil
}

// Reprice recomputes cart totals from catalog prices. Checkout never
// trusts client-side amounts.
func (s *service) Reprice(ctx context.Context, lines []RepriceLine) (RepriceResult, error) {
	if len(lines) == 0 {
		return RepriceResult{}, ErrEmptyBatch
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		u, err := uuid.Parse(line.ProductID)
		if err != nil {
			return RepriceResult{}, ErrInvalidProductID
		}
		ids = append(ids, u)
	}

	products, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return RepriceResult{}, fmt.Errorf("failed to fetch products for repricing: %w", err)
	}

	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID.String()] = p
	}

	total := decimal.Zero
	result := RepriceResult{Items: make([]RepricedItem, 0, len(lines))}
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return RepriceResult{}, ErrProductNotFound
		}
		if p.IsActive.Valid && !p.IsActive.Bool {
			return RepriceResult{}, ErrProductInactive
		}

		unit, err := decimal.NewFromString(p.Price)
		if err != nil {
			return RepriceResult{}, fmt.Errorf("invalid stored price for %s: %w", p.ID, err)
		}
		lineTotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)

		result.Items = append(result.Items, RepricedItem{
			ProductID: p.ID.String(),
			Name:      p.Name,
			UnitPrice: unit.InexactFloat64(),
			Quantity:  line.Quantity,
			LineTotal: lineTotal.InexactFloat64(),
		})
	}

	result.TotalCents = total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	result.Display = currency.Euro.Symbol + total.StringFixed(2)
	return result, nil
}

// Upsert creates or refreshes a catalog row from an upstream import
// event, keyed on the external ID. The slug stays stable across
// re-imports so storefront links do not break.
func (s *service) Upsert(ctx context.Context, input UpsertInput) (ProductResponse, error) {
	if err := s.validate.Struct(input); err != nil {
		return ProductResponse{}, ErrInvalidProductID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	slug := slugify(input.Name)
	existing, err := txRepo.GetByExternalID(ctx, input.ExternalID)
	switch {
	case err == nil:
		slug = existing.Slug
	case errors.Is(err, sql.ErrNoRows):
		slug = slug + "-" + shortSuffix()
	default:
		return ProductResponse{}, fmt.Errorf("failed to check existing product: %w", err)
	}

	params := UpsertParams{
		ExternalID:     input.ExternalID,
		Name:           input.Name,
		Slug:           slug,
		Description:    nullString(input.Description),
		Price:          decimal.NewFromFloat(input.Price).StringFixed(2),
		OriginalPrice:  nullPrice(input.OriginalPrice),
		Platform:       nullString(input.Platform),
		Region:         nullString(input.Region),
		LimitPerBasket: nullInt32(input.LimitPerBasket),
		CoverImage:     nullString(input.CoverImage),
		Screenshots:    pq.StringArray(input.Screenshots),
	}

	p, err := txRepo.Upsert(ctx, params)
	if err != nil {
		return ProductResponse{}, fmt.Errorf("failed to upsert product: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to commit: %w", err)
	}

	s.logger.Info("product upserted",
		zap.String("external_id", input.ExternalID),
		zap.String("product_id", p.ID.String()),
	)
	return toResponse(p), nil
}

// Deactivate hides a product that dropped out of the upstream feed. The
// row is kept so past orders still resolve their items.
func (s *service) Deactivate(ctx context.Context, externalID string) error {
	if externalID == "" {
		return ErrInvalidProductID
	}

	p, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to look up product: %w", err)
	}

	if err := s.repo.Deactivate(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}

	s.logger.Info("product deactivated",
		zap.String("external_id", externalID),
		zap.String("product_id", p.ID.String()),
	)
	return nil
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func shortSuffix() string {
	return uuid.NewString()[:5]
}

func toResponse(p Product) ProductResponse {
	price, _ := strconv.ParseFloat(p.Price, 64)

	resp := ProductResponse{
		ID:           p.ID.String(),
		ExternalID:   p.ExternalID.String,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description.String,
		Price:        price,
		DisplayPrice: currency.Euro.Symbol + decimal.NewFromFloat(price).StringFixed(2),
		Platform:     p.Platform.String,
		Region:       p.Region.String,
		CoverImage:   p.CoverImage.String,
		Screenshots:  []string(p.Screenshots),
		IsActive:     !p.IsActive.Valid || p.IsActive.Bool,
	}

	if p.OriginalPrice.Valid {
		resp.OriginalPrice, _ = strconv.ParseFloat(p.OriginalPrice.String, 64)
	}
	if p.LimitPerBasket.Valid {
		resp.LimitPerBasket = int(p.LimitPerBasket.Int32)
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.Format(time.RFC3339)
	}
	if resp.Screenshots == nil {
		resp.Screenshots = []string{}
	}
	return resp
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt32(i int) sql.NullInt32 {
	if i <= 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(i), Valid: true}
}

func nullPrice(f float64) sql.NullString {
	if f <= 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: decimal.NewFromFloat(f).StringFixed(2), Valid: true}
}
