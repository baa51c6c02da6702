package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sedirimou/Gameva-sub001/internal/catalog"
	"github.com/sedirimou/Gameva-sub001/internal/catalog/images"
	"github.com/sedirimou/Gameva-sub001/internal/product"
)

var errUnusableRow = errors.New("feed row has no usable identifier")

// ProductImporter is the slice of the product service the import
// consumer needs.
type ProductImporter interface {
	Upsert(ctx context.Context, input product.UpsertInput) (product.ProductResponse, error)
	Deactivate(ctx context.Context, externalID string) error
}

type ImportHandler struct {
	products ProductImporter
}

func NewImportHandler(products ProductImporter) *ImportHandler {
	if products == nil {
		panic("product importer cannot be nil")
	}
	return &ImportHandler{products: products}
}

// HandleProductUpsert maps one raw feed row into a catalog upsert. The
// payload is whatever the upstream feed produced, so everything goes
// through catalog.Normalize before it touches the database.
func (h *ImportHandler) HandleProductUpsert(ctx context.Context, payload []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("failed to decode feed row: %w", err)
	}

	normalized, ok := catalog.Normalize(raw)
	if !ok {
		return errUnusableRow
	}

	input := product.UpsertInput{
		ExternalID:     normalized.ID,
		Name:           normalized.Name,
		Price:          normalized.Price,
		OriginalPrice:  normalized.OriginalPrice,
		Platform:       normalized.Platform,
		LimitPerBasket: normalized.LimitPerBasket,
		CoverImage:     normalized.Image,
		Screenshots:    images.ResolveScreenshots(raw),
	}
	if s, ok := raw["description"].(string); ok {
		input.Description = s
	}
	if s, ok := raw["region"].(string); ok {
		input.Region = s
	}

	if _, err := h.products.Upsert(ctx, input); err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", input.ExternalID, err)
	}
	return nil
}

// HandleProductDeactivate hides a product the feed no longer carries.
// An already-missing product is not an error; delist events can arrive
// more than once.
func (h *ImportHandler) HandleProductDeactivate(ctx context.Context, payload []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("failed to decode delist event: %w", err)
	}

	normalized, ok := catalog.Normalize(raw)
	if !ok {
		return errUnusableRow
	}

	err := h.products.Deactivate(ctx, normalized.ID)
	if errors.Is(err, product.ErrProductNotFound) {
		return nil
	}
	return err
}
