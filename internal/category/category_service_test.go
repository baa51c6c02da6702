package category_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/category"
	categoryMock "github.com/sedirimou/Gameva-sub001/internal/mock/category"
	mediaMock "github.com/sedirimou/Gameva-sub001/internal/mock/media"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	repo  *categoryMock.MockRepository
	media *mediaMock.MockService
	svc   category.Service
}

func setupServiceTest(t *testing.T) serviceDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := categoryMock.NewMockRepository(ctrl)
	media := mediaMock.NewMockService(ctrl)

	svc := category.NewService(category.Deps{
		Repo:  repo,
		Media: media,
	})

	return serviceDeps{repo: repo, media: media, svc: svc}
}

func dbCategory(name, slug string) category.Category {
	return category.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		IsActive:  sql.NullBool{Bool: true, Valid: true},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	req := category.CreateCategoryRequest{Name: "Indie Games", Description: "Small studio releases"}

	t.Run("positive - without cover", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, params category.UpsertParams) (category.Category, error) {
				assert.Equal(t, "indie-games", params.Slug)
				assert.False(t, params.CoverImage.Valid)
				return dbCategory(params.Name, params.Slug), nil
			})

		res, err := deps.svc.Create(ctx, req, nil, "")

		assert.NoError(t, err)
		assert.Equal(t, "indie-games", res.Slug)
		assert.True(t, res.IsActive)
	})

	t.Run("positive - cover uploaded before insert", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.media.EXPECT().
			UploadImage(ctx, gomock.Any(), "cover.jpg").
			Return("https://res.cloudinary.com/demo/indie.jpg", nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, params category.UpsertParams) (category.Category, error) {
				assert.Equal(t, "https://res.cloudinary.com/demo/indie.jpg", params.CoverImage.String)
				return dbCategory(params.Name, params.Slug), nil
			})

		_, err := deps.svc.Create(ctx, req, nopFile{}, "cover.jpg")
		assert.NoError(t, err)
	})

	t.Run("negative - upload failure aborts the create", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.media.EXPECT().
			UploadImage(ctx, gomock.Any(), "cover.jpg").
			Return("", assert.AnError)

		_, err := deps.svc.Create(ctx, req, nopFile{}, "cover.jpg")
		assert.ErrorIs(t, err, category.ErrUploadFailed)
	})

	t.Run("negative - duplicate slug", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(category.Category{}, &pq.Error{Code: "23505"})

		_, err := deps.svc.Create(ctx, req, nil, "")
		assert.ErrorIs(t, err, category.ErrDuplicateCategory)
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()
	active := true
	req := category.UpdateCategoryRequest{Name: "Indie Games", IsActive: &active}

	t.Run("positive", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, params category.UpsertParams) (category.Category, error) {
				assert.Equal(t, id, params.ID)
				assert.True(t, params.IsActive.Bool)
				return dbCategory(params.Name, params.Slug), nil
			})

		_, err := deps.svc.Update(ctx, id.String(), req)
		assert.NoError(t, err)
	})

	t.Run("negative - unknown id", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			Return(category.Category{}, sql.ErrNoRows)

		_, err := deps.svc.Update(ctx, uuid.NewString(), req)
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})

	t.Run("negative - malformed id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.svc.Update(ctx, "not-a-uuid", req)
		assert.ErrorIs(t, err, category.ErrInvalidCategoryID)
	})
}

func TestCategoryService_DeleteRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("positive - soft delete then restore", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		deps.repo.EXPECT().SoftDelete(ctx, id).Return(nil)
		deps.repo.EXPECT().Restore(ctx, id).Return(dbCategory("Indie Games", "indie-games"), nil)

		assert.NoError(t, deps.svc.Delete(ctx, id.String()))

		res, err := deps.svc.Restore(ctx, id.String())
		assert.NoError(t, err)
		assert.Equal(t, "indie-games", res.Slug)
	})

	t.Run("negative - delete unknown id", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		deps.repo.EXPECT().SoftDelete(ctx, id).Return(sql.ErrNoRows)

		assert.ErrorIs(t, deps.svc.Delete(ctx, id.String()), category.ErrCategoryNotFound)
	})
}

func TestCategoryService_ListPublic(t *testing.T) {
	ctx := context.Background()

	t.Run("positive - totals come from the window count", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().
			ListPublic(ctx, int32(20), int32(0)).
			Return([]category.ListRow{
				{Category: dbCategory("Action", "action"), TotalCount: 2},
				{Category: dbCategory("Indie Games", "indie-games"), TotalCount: 2},
			}, nil)

		data, total, err := deps.svc.ListPublic(ctx, 0, 0)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, data, 2)
	})
}

// nopFile satisfies multipart.File for upload-path tests.
type nopFile struct{}

func (nopFile) Read(p []byte) (int, error)                   { return 0, nil }
func (nopFile) ReadAt(p []byte, off int64) (int, error)      { return 0, nil }
func (nopFile) Seek(offset int64, whence int) (int64, error) { return 0, nil }
func (nopFile) Close() error                                 { return nil }
