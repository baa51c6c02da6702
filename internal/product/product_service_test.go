package product_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	productMock "github.com/sedirimou/Gameva-sub001/internal/mock/product"
	"github.com/sedirimou/Gameva-sub001/internal/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service product.Service
	repo    *productMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()

	repo := productMock.NewMockRepository(ctrl)
	svc := product.NewService(product.Deps{DB: db, Repo: repo})

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()

	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func dbProduct(id uuid.UUID, name, price string) product.Product {
	return product.Product{
		ID:       id,
		Name:     name,
		Slug:     "slug-" + id.String()[:5],
		Price:    price,
		IsActive: sql.NullBool{Bool: true, Valid: true},
	}
}

func TestProductService_ListPublic(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("positive - success with price bounds", func(t *testing.T) {
		rows := []product.ListRow{
			{Product: dbProduct(uuid.New(), "Hades II", "24.99"), TotalCount: 1},
		}

		deps.repo.EXPECT().
			ListPublic(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, params product.ListParams) ([]product.ListRow, error) {
				assert.Equal(t, int32(20), params.Limit)
				assert.Equal(t, "0.00", params.MinPrice)
				assert.Equal(t, "999999999.00", params.MaxPrice)
				return rows, nil
			})

		res, total, err := deps.service.ListPublic(ctx, product.ListPublicRequest{})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, res, 1)
		assert.Equal(t, "Hades II", res[0].Name)
		assert.Equal(t, "€24.99", res[0].DisplayPrice)
	})

	t.Run("positive - limit is capped", func(t *testing.T) {
		deps.repo.EXPECT().
			ListPublic(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, params product.ListParams) ([]product.ListRow, error) {
				assert.Equal(t, int32(100), params.Limit)
				return nil, nil
			})

		_, _, err := deps.service.ListPublic(ctx, product.ListPublicRequest{Limit: 5000})
		assert.NoError(t, err)
	})
}

func TestProductService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id := uuid.New()

	t.Run("positive - success", func(t *testing.T) {
		deps.repo.EXPECT().GetByID(ctx, id).Return(dbProduct(id, "Hades II", "24.99"), nil)

		res, err := deps.service.GetByID(ctx, id.String())
		assert.NoError(t, err)
		assert.Equal(t, id.String(), res.ID)
		assert.Equal(t, 24.99, res.Price)
	})

	t.Run("negative - invalid uuid string", func(t *testing.T) {
		_, err := deps.service.GetByID(ctx, "invalid-uuid")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid product id")
	})

	t.Run("negative - not found", func(t *testing.T) {
		deps.repo.EXPECT().GetByID(ctx, id).Return(product.Product{}, sql.ErrNoRows)

		_, err := deps.service.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}

func TestProductService_GetBySlug(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		p := dbProduct(id, "Hades II", "24.99")
		p.Slug = "hades-ii-ab12c"

		deps.repo.EXPECT().GetBySlug(ctx, "hades-ii-ab12c").Return(p, nil)

		res, err := deps.service.GetBySlug(ctx, "hades-ii-ab12c")
		assert.NoError(t, err)
		assert.Equal(t, "hades-ii-ab12c", res.Slug)
	})

	t.Run("not found", func(t *testing.T) {
		deps.repo.EXPECT().GetBySlug(ctx, "ghost").Return(product.Product{}, sql.ErrNoRows)

		_, err := deps.service.GetBySlug(ctx, "ghost")
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}

func TestProductService_Batch(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("positive - unparseable ids are skipped", func(t *testing.T) {
		id := uuid.New()

		deps.repo.EXPECT().
			GetByIDs(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, ids []uuid.UUID) ([]product.Product, error) {
				assert.Len(t, ids, 1)
				assert.Equal(t, id, ids[0])
				return []product.Product{dbProduct(id, "Hades II", "24.99")}, nil
			})

		res, err := deps.service.Batch(ctx, []string{"not-a-uuid", id.String()})
		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("positive - all ids unparseable yields empty result", func(t *testing.T) {
		res, err := deps.service.Batch(ctx, []string{"a", "b"})
		assert.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("negative - empty input", func(t *testing.T) {
		_, err := deps.service.Batch(ctx, nil)
		assert.ErrorIs(t, err, product.ErrEmptyBatch)
	})
}

func TestProductService_Reprice(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id1 := uuid.New()
	id2 := uuid.New()

	t.Run("positive - totals computed from catalog prices", func(t *testing.T) {
		deps.repo.EXPECT().
			GetByIDs(ctx, gomock.Any()).
			Return([]product.Product{
				dbProduct(id1, "Hades II", "24.99"),
				dbProduct(id2, "Celeste", "9.50"),
			}, nil)

		res, err := deps.service.Reprice(ctx, []product.RepriceLine{
			{ProductID: id1.String(), Quantity: 2},
			{ProductID: id2.String(), Quantity: 1},
		})

		assert.NoError(t, err)
		assert.Len(t, res.Items, 2)
		// 24.99*2 + 9.50 = 59.48
		assert.Equal(t, int64(5948), res.TotalCents)
		assert.Equal(t, "€59.48", res.Display)
	})

	t.Run("negative - unknown product", func(t *testing.T) {
		deps.repo.EXPECT().GetByIDs(ctx, gomock.Any()).Return(nil, nil)

		_, err := deps.service.Reprice(ctx, []product.RepriceLine{
			{ProductID: id1.String(), Quantity: 1},
		})
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("negative - inactive product", func(t *testing.T) {
		inactive := dbProduct(id1, "Delisted", "5.00")
		inactive.IsActive = sql.NullBool{Bool: false, Valid: true}

		deps.repo.EXPECT().GetByIDs(ctx, gomock.Any()).Return([]product.Product{inactive}, nil)

		_, err := deps.service.Reprice(ctx, []product.RepriceLine{
			{ProductID: id1.String(), Quantity: 1},
		})
		assert.ErrorIs(t, err, product.ErrProductInactive)
	})
}

func TestProductService_Upsert(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	input := product.UpsertInput{
		ExternalID: "kinguin-12345",
		Name:       "Hades II",
		Price:      24.99,
		Platform:   "Steam",
	}

	t.Run("positive - new product gets suffixed slug", func(t *testing.T) {
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			GetByExternalID(ctx, "kinguin-12345").
			Return(product.Product{}, sql.ErrNoRows)
		deps.repo.EXPECT().
			Upsert(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, params product.UpsertParams) (product.Product, error) {
				assert.Equal(t, "24.99", params.Price)
				assert.Regexp(t, `^hades-ii-[0-9a-f]{5}$`, params.Slug)
				p := dbProduct(uuid.New(), params.Name, params.Price)
				p.ExternalID = sql.NullString{String: params.ExternalID, Valid: true}
				return p, nil
			})

		res, err := deps.service.Upsert(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, "kinguin-12345", res.ExternalID)
	})

	t.Run("positive - re-import keeps existing slug", func(t *testing.T) {
		existing := dbProduct(uuid.New(), "Hades II", "19.99")
		existing.Slug = "hades-ii-orig1"

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetByExternalID(ctx, "kinguin-12345").Return(existing, nil)
		deps.repo.EXPECT().
			Upsert(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, params product.UpsertParams) (product.Product, error) {
				assert.Equal(t, "hades-ii-orig1", params.Slug)
				return existing, nil
			})

		_, err := deps.service.Upsert(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("negative - repo failure rolls back", func(t *testing.T) {
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			GetByExternalID(ctx, "kinguin-12345").
			Return(product.Product{}, sql.ErrNoRows)
		deps.repo.EXPECT().
			Upsert(ctx, gomock.Any()).
			Return(product.Product{}, errors.New("insert failed"))

		_, err := deps.service.Upsert(ctx, input)
		assert.Error(t, err)
	})

	t.Run("negative - missing external id", func(t *testing.T) {
		_, err := deps.service.Upsert(ctx, product.UpsertInput{Name: "No External"})
		assert.ErrorIs(t, err, product.ErrInvalidProductID)
	})
}
