package helpcenter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Service interface {
	ListPublic(ctx context.Context, query ListArticleQuery) ([]ArticleSummaryResponse, int64, error)
	GetBySlug(ctx context.Context, slug string) (ArticleResponse, error)
	ListAdmin(ctx context.Context, query ListArticleQuery) ([]ArticleResponse, int64, error)
	GetByID(ctx context.Context, id string) (ArticleResponse, error)
	Create(ctx context.Context, req CreateArticleRequest) (ArticleResponse, error)
	Update(ctx context.Context, id string, req UpdateArticleRequest) (ArticleResponse, error)
	Delete(ctx context.Context, id string) error
}

type Deps struct {
	Repo   Repository
	Logger *zap.Logger
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Repo == nil {
		panic("help center repository cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{repo: deps.Repo, logger: deps.Logger}
}

func (s *service) ListPublic(ctx context.Context, query ListArticleQuery) ([]ArticleSummaryResponse, int64, error) {
	rows, total, err := s.list(ctx, query, true)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ArticleSummaryResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSummary(row.Article))
	}
	return out, total, nil
}

func (s *service) ListAdmin(ctx context.Context, query ListArticleQuery) ([]ArticleResponse, int64, error) {
	rows, total, err := s.list(ctx, query, false)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ArticleResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toResponse(row.Article))
	}
	return out, total, nil
}

func (s *service) list(ctx context.Context, query ListArticleQuery, onlyPublished bool) ([]ListRow, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	params := ListParams{
		Limit:         int32(query.Limit),
		Offset:        int32((query.Page - 1) * query.Limit),
		OnlyPublished: onlyPublished,
	}
	if query.Topic != "" {
		params.Topic = sql.NullString{String: query.Topic, Valid: true}
	}
	if query.Search != "" {
		params.Search = sql.NullString{String: query.Search, Valid: true}
	}

	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}

	var total int64
	for _, row := range rows {
		total = row.TotalCount
	}
	return rows, total, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (ArticleResponse, error) {
	article, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ArticleResponse{}, ErrArticleNotFound
		}
		return ArticleResponse{}, fmt.Errorf("failed to get article: %w", err)
	}
	return toResponse(article), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ArticleResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ArticleResponse{}, ErrInvalidArticleID
	}

	article, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ArticleResponse{}, ErrArticleNotFound
		}
		return ArticleResponse{}, fmt.Errorf("failed to get article: %w", err)
	}
	return toResponse(article), nil
}

// Create stores a new article as a draft; publishing is an explicit
// Update so half-written articles never reach the public list.
func (s *service) Create(ctx context.Context, req CreateArticleRequest) (ArticleResponse, error) {
	article, err := s.repo.Create(ctx, UpsertParams{
		ID:    uuid.New(),
		Title: req.Title,
		Slug:  slugify(req.Title),
		Topic: req.Topic,
		Body:  req.Body,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ArticleResponse{}, ErrDuplicateSlug
		}
		return ArticleResponse{}, fmt.Errorf("failed to create article: %w", err)
	}

	s.logger.Info("help article created",
		zap.String("article_id", article.ID.String()),
		zap.String("slug", article.Slug),
	)
	return toResponse(article), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateArticleRequest) (ArticleResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ArticleResponse{}, ErrInvalidArticleID
	}

	params := UpsertParams{
		ID:    parsed,
		Title: req.Title,
		Slug:  slugify(req.Title),
		Topic: req.Topic,
		Body:  req.Body,
	}
	if req.Published != nil {
		params.Published = sql.NullBool{Bool: *req.Published, Valid: true}
	}

	article, err := s.repo.Update(ctx, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ArticleResponse{}, ErrArticleNotFound
		}
		if isUniqueViolation(err) {
			return ArticleResponse{}, ErrDuplicateSlug
		}
		return ArticleResponse{}, fmt.Errorf("failed to update article: %w", err)
	}
	return toResponse(article), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidArticleID
	}

	if err := s.repo.Delete(ctx, parsed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

func slugify(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), "-"))
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func toSummary(a Article) ArticleSummaryResponse {
	summary := ArticleSummaryResponse{
		ID:    a.ID.String(),
		Title: a.Title,
		Slug:  a.Slug,
		Topic: a.Topic,
	}
	if a.PublishedAt.Valid {
		summary.PublishedAt = a.PublishedAt.Time.Format(time.RFC3339)
	}
	return summary
}

func toResponse(a Article) ArticleResponse {
	return ArticleResponse{
		ArticleSummaryResponse: toSummary(a),
		Body:                   a.Body,
		Published:              a.Published.Valid && a.Published.Bool,
		UpdatedAt:              a.UpdatedAt.Format(time.RFC3339),
	}
}
