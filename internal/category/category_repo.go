package category

import (
	"context"
	"database/sql"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/shared/database/dbx"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description sql.NullString
	CoverImage  sql.NullString
	IsActive    sql.NullBool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   sql.NullTime
}

type ListRow struct {
	Category
	TotalCount int64
}

type ListParams struct {
	Limit          int32
	Offset         int32
	Search         sql.NullString
	IncludeDeleted bool
}

type UpsertParams struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description sql.NullString
	CoverImage  sql.NullString
	IsActive    sql.NullBool
}

//go:generate mockgen -source=category_repo.go -destination=../mock/category/category_repo_mock.go -package=mock
type Repository interface {
	ListPublic(ctx context.Context, limit, offset int32) ([]ListRow, error)
	ListAdmin(ctx context.Context, params ListParams) ([]ListRow, error)
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
	Create(ctx context.Context, params UpsertParams) (Category, error)
	Update(ctx context.Context, params UpsertParams) (Category, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) (Category, error)
}

type repository struct {
	db dbx.DBTX
}

func NewRepository(db dbx.DBTX) Repository {
	return &repository{db: db}
}

const categoryColumns = `id, name, slug, description, cover_image, is_active, created_at, updated_at, deleted_at`

func scanCategory(row interface{ Scan(...any) error }) (Category, error) {
	var c Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CoverImage,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	return c, err
}

func (r *repository) ListPublic(ctx context.Context, limit, offset int32) ([]ListRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`, COUNT(*) OVER() AS total_count
		FROM categories
		WHERE is_active = TRUE AND deleted_at IS NULL
		ORDER BY name
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows)
}

func (r *repository) ListAdmin(ctx context.Context, params ListParams) ([]ListRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+categoryColumns+`, COUNT(*) OVER() AS total_count
		FROM categories
		WHERE ($3::text IS NULL OR name ILIKE '%' || $3 || '%')
		  AND ($4 OR deleted_at IS NULL)
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		params.Limit, params.Offset, params.Search, params.IncludeDeleted,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows)
}

func collectRows(rows *sql.Rows) ([]ListRow, error) {
	var out []ListRow
	for rows.Next() {
		var row ListRow
		err := rows.Scan(
			&row.ID, &row.Name, &row.Slug, &row.Description, &row.CoverImage,
			&row.IsActive, &row.CreatedAt, &row.UpdatedAt, &row.DeletedAt,
			&row.TotalCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Category, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	return scanCategory(row)
}

func (r *repository) Create(ctx context.Context, params UpsertParams) (Category, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, slug, description, cover_image, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		RETURNING `+categoryColumns,
		params.ID, params.Name, params.Slug, params.Description, params.CoverImage,
	)
	return scanCategory(row)
}

func (r *repository) Update(ctx context.Context, params UpsertParams) (Category, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name = $2,
			slug = $3,
			description = $4,
			cover_image = COALESCE($5, cover_image),
			is_active = COALESCE($6, is_active),
			updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+categoryColumns,
		params.ID, params.Name, params.Slug, params.Description, params.CoverImage, params.IsActive,
	)
	return scanCategory(row)
}

func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE categories SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) Restore(ctx context.Context, id uuid.UUID) (Category, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE categories SET deleted_at = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING `+categoryColumns, id)
	return scanCategory(row)
}
