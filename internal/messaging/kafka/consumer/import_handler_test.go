package consumer

import (
	"context"
	"errors"
	"testing"

	"github.com/sedirimou/Gameva-sub001/internal/product"

	"github.com/stretchr/testify/assert"
)

type fakeImporter struct {
	upserted      []product.UpsertInput
	upsertErr     error
	deactivated   []string
	deactivateErr error
}

func (f *fakeImporter) Upsert(_ context.Context, input product.UpsertInput) (product.ProductResponse, error) {
	f.upserted = append(f.upserted, input)
	return product.ProductResponse{ExternalID: input.ExternalID}, f.upsertErr
}

func (f *fakeImporter) Deactivate(_ context.Context, externalID string) error {
	f.deactivated = append(f.deactivated, externalID)
	return f.deactivateErr
}

func TestImportHandler_HandleProductUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("positive - messy feed row is normalized before the upsert", func(t *testing.T) {
		importer := &fakeImporter{}
		handler := NewImportHandler(importer)

		payload := []byte(`{
			"productId": 12345,
			"title": "Hades II",
			"finalPrice": "24.99",
			"price": 29.99,
			"platform": "Steam",
			"region": "EU",
			"limit_per_basket": 1,
			"image": "{\"thumbnail\": \"https://images.kinguin.net/g/hades2.jpg\"}",
			"screenshots": ["https://cdn.example.com/s1.jpg", "https://cdn.example.com/s2.jpg"]
		}`)

		err := handler.HandleProductUpsert(ctx, payload)

		assert.NoError(t, err)
		if assert.Len(t, importer.upserted, 1) {
			got := importer.upserted[0]
			assert.Equal(t, "12345", got.ExternalID)
			assert.Equal(t, "Hades II", got.Name)
			assert.Equal(t, 24.99, got.Price)
			assert.Equal(t, 29.99, got.OriginalPrice)
			assert.Equal(t, "Steam", got.Platform)
			assert.Equal(t, "EU", got.Region)
			assert.Equal(t, 1, got.LimitPerBasket)
			assert.Contains(t, got.CoverImage, "hades2.jpg")
			assert.Equal(t, []string{"https://cdn.example.com/s1.jpg", "https://cdn.example.com/s2.jpg"}, got.Screenshots)
		}
	})

	t.Run("negative - row without an identifier is rejected", func(t *testing.T) {
		importer := &fakeImporter{}
		handler := NewImportHandler(importer)

		err := handler.HandleProductUpsert(ctx, []byte(`{"name": "No ID"}`))

		assert.ErrorIs(t, err, errUnusableRow)
		assert.Empty(t, importer.upserted)
	})

	t.Run("negative - invalid JSON payload", func(t *testing.T) {
		importer := &fakeImporter{}
		handler := NewImportHandler(importer)

		err := handler.HandleProductUpsert(ctx, []byte(`not json`))

		assert.Error(t, err)
		assert.Empty(t, importer.upserted)
	})

	t.Run("negative - upsert failure propagates for redelivery", func(t *testing.T) {
		importer := &fakeImporter{upsertErr: errors.New("db down")}
		handler := NewImportHandler(importer)

		err := handler.HandleProductUpsert(ctx, []byte(`{"id": "k-1", "name": "Hades II", "price": 24.99}`))

		assert.Error(t, err)
	})
}

func TestImportHandler_HandleProductDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("positive - delists by external id", func(t *testing.T) {
		importer := &fakeImporter{}
		handler := NewImportHandler(importer)

		err := handler.HandleProductDeactivate(ctx, []byte(`{"id": "k-1"}`))

		assert.NoError(t, err)
		assert.Equal(t, []string{"k-1"}, importer.deactivated)
	})

	t.Run("positive - already-missing product is not an error", func(t *testing.T) {
		importer := &fakeImporter{deactivateErr: product.ErrProductNotFound}
		handler := NewImportHandler(importer)

		err := handler.HandleProductDeactivate(ctx, []byte(`{"id": "k-gone"}`))

		assert.NoError(t, err)
	})

	t.Run("negative - other failures propagate", func(t *testing.T) {
		importer := &fakeImporter{deactivateErr: errors.New("db down")}
		handler := NewImportHandler(importer)

		err := handler.HandleProductDeactivate(ctx, []byte(`{"id": "k-1"}`))

		assert.Error(t, err)
	})
}
