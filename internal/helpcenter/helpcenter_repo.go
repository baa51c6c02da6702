package helpcenter

import (
	"context"
	"database/sql"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/shared/database/dbx"

	"github.com/google/uuid"
)

type Article struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	Topic       string
	Body        string
	Published   sql.NullBool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ListRow struct {
	Article
	TotalCount int64
}

type ListParams struct {
	Limit         int32
	Offset        int32
	Topic         sql.NullString
	Search        sql.NullString
	OnlyPublished bool
}

type UpsertParams struct {
	ID        uuid.UUID
	Title     string
	Slug      string
	Topic     string
	Body      string
	Published sql.NullBool
}

//go:generate mockgen -source=helpcenter_repo.go -destination=../mock/helpcenter/helpcenter_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context, params ListParams) ([]ListRow, error)
	GetByID(ctx context.Context, id uuid.UUID) (Article, error)
	GetBySlug(ctx context.Context, slug string) (Article, error)
	Create(ctx context.Context, params UpsertParams) (Article, error)
	Update(ctx context.Context, params UpsertParams) (Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db dbx.DBTX
}

func NewRepository(db dbx.DBTX) Repository {
	return &repository{db: db}
}

const articleColumns = `id, title, slug, topic, body, published, published_at, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (Article, error) {
	var a Article
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Topic, &a.Body,
		&a.Published, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *repository) List(ctx context.Context, params ListParams) ([]ListRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+articleColumns+`, COUNT(*) OVER() AS total_count
		FROM help_articles
		WHERE ($3::text IS NULL OR topic = $3)
		  AND ($4::text IS NULL OR title ILIKE '%' || $4 || '%')
		  AND (NOT $5 OR published = TRUE)
		ORDER BY published_at DESC NULLS LAST, created_at DESC
		LIMIT $1 OFFSET $2`,
		params.Limit, params.Offset, params.Topic, params.Search, params.OnlyPublished,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		err := rows.Scan(
			&row.ID, &row.Title, &row.Slug, &row.Topic, &row.Body,
			&row.Published, &row.PublishedAt, &row.CreatedAt, &row.UpdatedAt,
			&row.TotalCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Article, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+` FROM help_articles WHERE id = $1`, id)
	return scanArticle(row)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (Article, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+` FROM help_articles
		WHERE slug = $1 AND published = TRUE`, slug)
	return scanArticle(row)
}

func (r *repository) Create(ctx context.Context, params UpsertParams) (Article, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO help_articles (id, title, slug, topic, body, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW(), NOW())
		RETURNING `+articleColumns,
		params.ID, params.Title, params.Slug, params.Topic, params.Body,
	)
	return scanArticle(row)
}

func (r *repository) Update(ctx context.Context, params UpsertParams) (Article, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE help_articles SET
			title = $2,
			slug = $3,
			topic = $4,
			body = $5,
			published = COALESCE($6, published),
			published_at = CASE
				WHEN $6 = TRUE AND published_at IS NULL THEN NOW()
				WHEN $6 = FALSE THEN NULL
				ELSE published_at
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+articleColumns,
		params.ID, params.Title, params.Slug, params.Topic, params.Body, params.Published,
	)
	return scanArticle(row)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM help_articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
