package attribute

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Service interface {
	ListPublic(ctx context.Context, kind string, query ListAttributeQuery) ([]AttributeResponse, int64, error)
	ListAdmin(ctx context.Context, kind string, query ListAttributeQuery) ([]AttributeResponse, int64, error)
	Create(ctx context.Context, kind string, req CreateAttributeRequest) (AttributeResponse, error)
	Update(ctx context.Context, kind, id string, req UpdateAttributeRequest) (AttributeResponse, error)
	Delete(ctx context.Context, kind, id string) error
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
		panic("attribute repository cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{repo: deps.Repo, logger: deps.Logger}
}

func (s *service) ListPublic(ctx context.Context, kind string, query ListAttributeQuery) ([]AttributeResponse, int64, error) {
	return s.list(ctx, kind, query, true)
}

func (s *service) ListAdmin(ctx context.Context, kind string, query ListAttributeQuery) ([]AttributeResponse, int64, error) {
	return s.list(ctx, kind, query, false)
}

func (s *service) list(ctx context.Context, kind string, query ListAttributeQuery, onlyActive bool) ([]AttributeResponse, int64, error) {
	k, ok := ParseKind(kind)
	if !ok {
		return nil, 0, ErrUnknownKind
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 200 {
		query.Limit = 50
	}

	params := ListParams{
		Kind:       string(k),
		Limit:      int32(query.Limit),
		Offset:     int32((query.Page - 1) * query.Limit),
		OnlyActive: onlyActive,
	}
	if query.Search != "" {
		params.Search = sql.NullString{String: query.Search, Valid: true}
	}

	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	var total int64
	out := make([]AttributeResponse, 0, len(rows))
	for _, row := range rows {
		total = row.TotalCount
		out = append(out, toResponse(row.Attribute))
	}
	return out, total, nil
}

func (s *service) Create(ctx context.Context, kind string, req CreateAttributeRequest) (AttributeResponse, error) {
	k, ok := ParseKind(kind)
	if !ok {
		return AttributeResponse{}, ErrUnknownKind
	}

	attr, err := s.repo.Create(ctx, string(k), req.Name, slugify(req.Name))
	if err != nil {
		if isUniqueViolation(err) {
			return AttributeResponse{}, ErrDuplicateAttribute
		}
		return AttributeResponse{}, fmt.Errorf("failed to create attribute: %w", err)
	}

	s.logger.Info("attribute created",
		zap.String("kind", string(k)),
		zap.String("attribute_id", attr.ID.String()),
	)
	return toResponse(attr), nil
}

func (s *service) Update(ctx context.Context, kind, id string, req UpdateAttributeRequest) (AttributeResponse, error) {
	if _, ok := ParseKind(kind); !ok {
		return AttributeResponse{}, ErrUnknownKind
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return AttributeResponse{}, ErrInvalidAttributeID
	}

	isActive := sql.NullBool{}
	if req.IsActive != nil {
		isActive = sql.NullBool{Bool: *req.IsActive, Valid: true}
	}

	attr, err := s.repo.Update(ctx, parsed, req.Name, slugify(req.Name), isActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AttributeResponse{}, ErrAttributeNotFound
		}
		if isUniqueViolation(err) {
			return AttributeResponse{}, ErrDuplicateAttribute
		}
		return AttributeResponse{}, fmt.Errorf("failed to update attribute: %w", err)
	}
	return toResponse(attr), nil
}

func (s *service) Delete(ctx context.Context, kind, id string) error {
	if _, ok := ParseKind(kind); !ok {
		return ErrUnknownKind
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidAttributeID
	}

	if err := s.repo.Delete(ctx, parsed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAttributeNotFound
		}
		return fmt.Errorf("failed to delete attribute: %w", err)
	}
	return nil
}

func slugify(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func toResponse(a Attribute) AttributeResponse {
	return AttributeResponse{
		ID:       a.ID.String(),
		Kind:     a.Kind,
		Name:     a.Name,
		Slug:     a.Slug,
		IsActive: !a.IsActive.Valid || a.IsActive.Bool,
	}
}
