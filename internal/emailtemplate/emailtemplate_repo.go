package emailtemplate

import (
	"context"
	"database/sql"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/shared/database/dbx"

	"github.com/google/uuid"
)

type Template struct {
	ID        uuid.UUID
	Code      string
	Name      string
	Subject   string
	Body      string
	IsActive  sql.NullBool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ListRow struct {
	Template
	TotalCount int64
}

type UpsertParams struct {
	ID       uuid.UUID
	Code     string
	Name     string
	Subject  string
	Body     string
	IsActive sql.NullBool
}

//go:generate mockgen -source=emailtemplate_repo.go -destination=../mock/emailtemplate/emailtemplate_repo_mock.go -package=mock
type Repository interface {
	List(ctx context.Context, limit, offset int32) ([]ListRow, error)
	GetByID(ctx context.Context, id uuid.UUID) (Template, error)
	GetByCode(ctx context.Context, code string) (Template, error)
	Create(ctx context.Context, params UpsertParams) (Template, error)
	Update(ctx context.Context, params UpsertParams) (Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db dbx.DBTX
}

func NewRepository(db dbx.DBTX) Repository {
	return &repository{db: db}
}

const templateColumns = `id, code, name, subject, body, is_active, created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (Template, error) {
	var t Template
	err := row.Scan(&t.ID, &t.Code, &t.Name, &t.Subject, &t.Body, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repository) List(ctx context.Context, limit, offset int32) ([]ListRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+templateColumns+`, COUNT(*) OVER() AS total_count
		FROM email_templates
		ORDER BY code
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		err := rows.Scan(
			&row.ID, &row.Code, &row.Name, &row.Subject, &row.Body,
			&row.IsActive, &row.CreatedAt, &row.UpdatedAt, &row.TotalCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Template, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+templateColumns+` FROM email_templates WHERE id = $1`, id)
	return scanTemplate(row)
}

func (r *repository) GetByCode(ctx context.Context, code string) (Template, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+templateColumns+` FROM email_templates WHERE code = $1 AND is_active = TRUE`, code)
	return scanTemplate(row)
}

func (r *repository) Create(ctx context.Context, params UpsertParams) (Template, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO email_templates (id, code, name, subject, body, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		RETURNING `+templateColumns,
		params.ID, params.Code, params.Name, params.Subject, params.Body,
	)
	return scanTemplate(row)
}

func (r *repository) Update(ctx context.Context, params UpsertParams) (Template, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE email_templates SET
			name = $2,
			subject = $3,
			body = $4,
			is_active = COALESCE($5, is_active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+templateColumns,
		params.ID, params.Name, params.Subject, params.Body, params.IsActive,
	)
	return scanTemplate(row)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM email_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
