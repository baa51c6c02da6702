package attribute

import (
	"context"
	"database/sql"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/shared/database/dbx"

	"github.com/google/uuid"
)

type Attribute struct {
	ID        uuid.UUID
	Kind      string
	Name      string
	Slug      string
	IsActive  sql.NullBool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListRow struct {
	Attribute
	TotalCount int64
}

type ListParams struct {
	Kind       string
	Limit      int32
	Offset     int32
	Search     sql.NullString
	OnlyActive bool
}

//go:generate mockgen -source=attribute_repo.go -destination=../mock/attribute/attribute_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context, params ListParams) ([]ListRow, error)
	GetByID(ctx context.Context, id uuid.UUID) (Attribute, error)
	Create(ctx context.Context, kind, name, slug string) (Attribute, error)
	Update(ctx context.Context, id uuid.UUID, name, slug string, isActive sql.NullBool) (Attribute, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db dbx.DBTX
}

func NewRepository(db dbx.DBTX) Repository {
	return &repository{db: db}
}

const attributeColumns = `id, kind, name, slug, is_active, created_at, updated_at`

func scanAttribute(row interface{ Scan(...any) error }) (Attribute, error) {
	var a Attribute
	err := row.Scan(&a.ID, &a.Kind, &a.Name, &a.Slug, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *repository) List(ctx context.Context, params ListParams) ([]ListRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+attributeColumns+`, COUNT(*) OVER() AS total_count
		FROM attributes
		WHERE kind = $1
		  AND ($4::text IS NULL OR name ILIKE '%' || $4 || '%')
		  AND (NOT $5 OR is_active = TRUE)
		ORDER BY name
		LIMIT $2 OFFSET $3`,
		params.Kind, params.Limit, params.Offset, params.Search, params.OnlyActive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		err := rows.Scan(
			&row.ID, &row.Kind, &row.Name, &row.Slug, &row.IsActive,
			&row.CreatedAt, &row.UpdatedAt, &row.TotalCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Attribute, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+attributeColumns+` FROM attributes WHERE id = $1`, id)
	return scanAttribute(row)
}

func (r *repository) Create(ctx context.Context, kind, name, slug string) (Attribute, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attributes (id, kind, name, slug, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW(), NOW())
		RETURNING `+attributeColumns,
		uuid.New(), kind, name, slug,
	)
	return scanAttribute(row)
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, name, slug string, isActive sql.NullBool) (Attribute, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE attributes SET
			name = $2,
			slug = $3,
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+attributeColumns,
		id, name, slug, isActive,
	)
	return scanAttribute(row)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attributes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
