package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/media"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Service interface {
	ListPublic(ctx context.Context, page, limit int) ([]CategoryPublicResponse, int64, error)
	ListAdmin(ctx context.Context, query ListCategoryQuery) ([]CategoryAdminResponse, int64, error)
	GetByID(ctx context.Context, id string) (CategoryAdminResponse, error)
	Create(ctx context.Context, req CreateCategoryRequest, cover multipart.File, filename string) (CategoryAdminResponse, error)
	Update(ctx context.Context, id string, req UpdateCategoryRequest) (CategoryAdminResponse, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) (CategoryAdminResponse, error)
}

type Deps struct {
	Repo   Repository
	Media  media.Service
	Logger *zap.Logger
}

type service struct {
	repo   Repository
	media  media.Service
	logger *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Repo == nil {
		panic("category repository cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		repo:   deps.Repo,
		media:  deps.Media,
		logger: deps.Logger,
	}
}

func (s *service) ListPublic(ctx context.Context, page, limit int) ([]CategoryPublicResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	rows, err := s.repo.ListPublic(ctx, int32(limit), int32((page-1)*limit))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	var total int64
	out := make([]CategoryPublicResponse, 0, len(rows))
	for _, row := range rows {
		total = row.TotalCount
		out = append(out, CategoryPublicResponse{
			ID:          row.ID.String(),
			Name:        row.Name,
			Slug:        row.Slug,
			Description: row.Description.String,
			CoverImage:  row.CoverImage.String,
		})
	}
	return out, total, nil
}

func (s *service) ListAdmin(ctx context.Context, query ListCategoryQuery) ([]CategoryAdminResponse, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	params := ListParams{
		Limit:          int32(query.Limit),
		Offset:         int32((query.Page - 1) * query.Limit),
		IncludeDeleted: true,
	}
	if query.Search != "" {
		params.Search = sql.NullString{String: query.Search, Valid: true}
	}

	rows, err := s.repo.ListAdmin(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}

	var total int64
	out := make([]CategoryAdminResponse, 0, len(rows))
	for _, row := range rows {
		total = row.TotalCount
		out = append(out, toAdminResponse(row.Category))
	}
	return out, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CategoryAdminResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return CategoryAdminResponse{}, ErrInvalidCategoryID
	}

	cat, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CategoryAdminResponse{}, ErrCategoryNotFound
		}
		return CategoryAdminResponse{}, fmt.Errorf("failed to get category: %w", err)
	}
	return toAdminResponse(cat), nil
}

func (s *service) Create(ctx context.Context, req CreateCategoryRequest, cover multipart.File, filename string) (CategoryAdminResponse, error) {
	params := UpsertParams{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slugify(req.Name),
		Description: nullString(req.Description),
	}

	if cover != nil && s.media != nil {
		url, err := s.media.UploadImage(ctx, cover, filename)
		if err != nil {
			s.logger.Error("category cover upload failed", zap.Error(err))
			return CategoryAdminResponse{}, ErrUploadFailed
		}
		params.CoverImage = nullString(url)
	}

	cat, err := s.repo.Create(ctx, params)
	if err != nil {
		if isUniqueViolation(err) {
			return CategoryAdminResponse{}, ErrDuplicateCategory
		}
		return CategoryAdminResponse{}, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created",
		zap.String("category_id", cat.ID.String()),
		zap.String("slug", cat.Slug),
	)
	return toAdminResponse(cat), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCategoryRequest) (CategoryAdminResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return CategoryAdminResponse{}, ErrInvalidCategoryID
	}

	params := UpsertParams{
		ID:          parsed,
		Name:        req.Name,
		Slug:        slugify(req.Name),
		Description: nullString(req.Description),
	}
	if req.IsActive != nil {
		params.IsActive = sql.NullBool{Bool: *req.IsActive, Valid: true}
	}

	cat, err := s.repo.Update(ctx, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CategoryAdminResponse{}, ErrCategoryNotFound
		}
		if isUniqueViolation(err) {
			return CategoryAdminResponse{}, ErrDuplicateCategory
		}
		return CategoryAdminResponse{}, fmt.Errorf("failed to update category: %w", err)
	}
	return toAdminResponse(cat), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidCategoryID
	}

	if err := s.repo.SoftDelete(ctx, parsed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (s *service) Restore(ctx context.Context, id string) (CategoryAdminResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return CategoryAdminResponse{}, ErrInvalidCategoryID
	}

	cat, err := s.repo.Restore(ctx, parsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CategoryAdminResponse{}, ErrCategoryNotFound
		}
		return CategoryAdminResponse{}, fmt.Errorf("failed to restore category: %w", err)
	}
	return toAdminResponse(cat), nil
}

func slugify(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func toAdminResponse(c Category) CategoryAdminResponse {
	resp := CategoryAdminResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description.String,
		CoverImage:  c.CoverImage.String,
		IsActive:    !c.IsActive.Valid || c.IsActive.Bool,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
	if c.DeletedAt.Valid {
		resp.DeletedAt = c.DeletedAt.Time.Format(time.RFC3339)
	}
	return resp
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
