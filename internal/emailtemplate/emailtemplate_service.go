package emailtemplate

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"text/template"

	"github.com/sedirimou/Gameva-sub001/internal/email"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Renderer is the read-only slice other packages use to send an
// admin-managed template.
type Renderer interface {
	Render(ctx context.Context, code string, data map[string]any) (subject, html string, err error)
}

type Service interface {
	Renderer
	List(ctx context.Context, query ListTemplateQuery) ([]TemplateResponse, int64, error)
	GetByID(ctx context.Context, id string) (TemplateResponse, error)
	Create(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error)
	Update(ctx context.Context, id string, req UpdateTemplateRequest) (TemplateResponse, error)
	Delete(ctx context.Context, id string) error
	TestSend(ctx context.Context, id string, req TestSendRequest) error
}

type Deps struct {
	Repo   Repository
	Mailer email.Service
	Logger *zap.Logger
}

type service struct {
	repo   Repository
	mailer email.Service
	logger *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Repo == nil {
		panic("email template repository cannot be nil")
	}
	if deps.Mailer == nil {
		deps.Mailer = email.NewNoopService()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{repo: deps.Repo, mailer: deps.Mailer, logger: deps.Logger}
}

func (s *service) List(ctx context.Context, query ListTemplateQuery) ([]TemplateResponse, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	rows, err := s.repo.List(ctx, int32(query.Limit), int32((query.Page-1)*query.Limit))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list templates: %w", err)
	}

	var total int64
	out := make([]TemplateResponse, 0, len(rows))
	for _, row := range rows {
		total = row.TotalCount
		out = append(out, toResponse(row.Template))
	}
	return out, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TemplateResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return TemplateResponse{}, ErrInvalidTemplateID
	}

	tpl, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TemplateResponse{}, ErrTemplateNotFound
		}
		return TemplateResponse{}, fmt.Errorf("failed to get template: %w", err)
	}
	return toResponse(tpl), nil
}

func (s *service) Create(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error) {
	if err := checkSyntax(req.Subject, req.Body); err != nil {
		return TemplateResponse{}, err
	}

	tpl, err := s.repo.Create(ctx, UpsertParams{
		ID:      uuid.New(),
		Code:    req.Code,
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return TemplateResponse{}, ErrDuplicateCode
		}
		return TemplateResponse{}, fmt.Errorf("failed to create template: %w", err)
	}

	s.logger.Info("email template created", zap.String("code", tpl.Code))
	return toResponse(tpl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTemplateRequest) (TemplateResponse, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return TemplateResponse{}, ErrInvalidTemplateID
	}

	if err := checkSyntax(req.Subject, req.Body); err != nil {
		return TemplateResponse{}, err
	}

	params := UpsertParams{
		ID:      parsed,
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if req.IsActive != nil {
		params.IsActive = sql.NullBool{Bool: *req.IsActive, Valid: true}
	}

	tpl, err := s.repo.Update(ctx, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TemplateResponse{}, ErrTemplateNotFound
		}
		return TemplateResponse{}, fmt.Errorf("failed to update template: %w", err)
	}
	return toResponse(tpl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidTemplateID
	}

	if err := s.repo.Delete(ctx, parsed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// Render looks up an active template by code and executes subject and
// body against data.
func (s *service) Render(ctx context.Context, code string, data map[string]any) (string, string, error) {
	tpl, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrTemplateNotFound
		}
		return "", "", fmt.Errorf("failed to load template %q: %w", code, err)
	}

	subject, err := execute("subject", tpl.Subject, data)
	if err != nil {
		return "", "", err
	}
	body, err := execute("body", tpl.Body, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

// TestSend renders a stored template with caller-supplied sample data
// and mails the result, so admins can preview changes in a real inbox.
func (s *service) TestSend(ctx context.Context, id string, req TestSendRequest) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidTemplateID
	}

	tpl, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to load template: %w", err)
	}

	subject, err := execute("subject", tpl.Subject, req.Data)
	if err != nil {
		return err
	}
	body, err := execute("body", tpl.Body, req.Data)
	if err != nil {
		return err
	}

	if err := s.mailer.Send(ctx, email.Message{
		To:      req.To,
		Subject: "[TEST] " + subject,
		HTML:    body,
	}); err != nil {
		s.logger.Error("test send failed",
			zap.String("code", tpl.Code),
			zap.Error(err),
		)
		return ErrSendFailed
	}

	s.logger.Info("test email sent",
		zap.String("code", tpl.Code),
		zap.String("to", req.To),
	)
	return nil
}

func checkSyntax(subject, body string) error {
	if _, err := template.New("subject").Parse(subject); err != nil {
		return ErrTemplateSyntax
	}
	if _, err := template.New("body").Parse(body); err != nil {
		return ErrTemplateSyntax
	}
	return nil
}

func execute(name, text string, data map[string]any) (string, error) {
	tpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", ErrTemplateSyntax
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func toResponse(t Template) TemplateResponse {
	return TemplateResponse{
		ID:       t.ID.String(),
		Code:     t.Code,
		Name:     t.Name,
		Subject:  t.Subject,
		Body:     t.Body,
		IsActive: !t.IsActive.Valid || t.IsActive.Bool,
	}
}
