package product

import (
	"context"
	"database/sql"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/shared/database/dbx"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is the catalog row as stored in Postgres. Price columns come
// back as numeric strings and are converted at the service boundary.
type Product struct {
	ID             uuid.UUID
	ExternalID     sql.NullString
	Name           string
	Slug           string
	Description    sql.NullString
	Price          string
	OriginalPrice  sql.NullString
	Platform       sql.NullString
	Region         sql.NullString
	LimitPerBasket sql.NullInt32
	CoverImage     sql.NullString
	Screenshots    pq.StringArray
	IsActive       sql.NullBool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ListRow struct {
	Product
	TotalCount int64
}

type ListParams struct {
	Limit    int32
	Offset   int32
	Search   sql.NullString
	Platform sql.NullString
	MinPrice string
	MaxPrice string
	SortCol  string
	SortDir  string
}

type UpsertParams struct {
	ExternalID     string
	Name           string
	Slug           string
	Description    sql.NullString
	Price          string
	OriginalPrice  sql.NullString
	Platform       sql.NullString
	Region         sql.NullString
	LimitPerBasket sql.NullInt32
	CoverImage     sql.NullString
	Screenshots    pq.StringArray
}

//go:generate mockgen -source=product_repo.go -destination=../mock/product/product_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx dbx.DBTX) Repository
	ListPublic(ctx context.Context, params ListParams) ([]ListRow, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	GetByExternalID(ctx context.Context, externalID string) (Product, error)
	Upsert(ctx context.Context, params UpsertParams) (Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db dbx.DBTX
}

func NewRepository(db dbx.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx dbx.DBTX) Repository {
	return &repository{db: tx}
}

const productColumns = `
	id, external_id, name, slug, description,
	price, original_price, platform, region, limit_per_basket,
	cover_image, screenshots, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.ExternalID, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.OriginalPrice, &p.Platform, &p.Region, &p.LimitPerBasket,
		&p.CoverImage, &p.Screenshots, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// sortColumns whitelists ORDER BY targets so request input never
// reaches the SQL text.
var sortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
}

func (r *repository) ListPublic(ctx context.Context, params ListParams) ([]ListRow, error) {
	sortCol, ok := sortColumns[params.SortCol]
	if !ok {
		sortCol = "created_at"
	}
	sortDir := "DESC"
	if params.SortDir == "asc" {
		sortDir = "ASC"
	}

	query := `
		SELECT ` + productColumns + `,
			COUNT(*) OVER() AS total_count
		FROM products
		WHERE is_active IS NOT FALSE
			AND ($1::text IS NULL OR name ILIKE '%' || $1 || '%')
			AND ($2::text IS NULL OR platform = $2)
			AND price >= $3::numeric AND price <= $4::numeric
		ORDER BY ` + sortCol + ` ` + sortDir + `
		LIMIT $5 OFFSET $6`

	rows, err := r.db.QueryContext(ctx, query,
		params.Search, params.Platform, params.MinPrice, params.MaxPrice,
		params.Limit, params.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		err := rows.Scan(
			&row.ID, &row.ExternalID, &row.Name, &row.Slug, &row.Description,
			&row.Price, &row.OriginalPrice, &row.Platform, &row.Region, &row.LimitPerBasket,
			&row.CoverImage, &row.Screenshots, &row.IsActive, &row.CreatedAt, &row.UpdatedAt,
			&row.TotalCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, query, id))
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1 AND is_active IS NOT FALSE`
	return scanProduct(r.db.QueryRowContext(ctx, query, slug))
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) GetByExternalID(ctx context.Context, externalID string) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE external_id = $1`
	return scanProduct(r.db.QueryRowContext(ctx, query, externalID))
}

func (r *repository) Upsert(ctx context.Context, params UpsertParams) (Product, error) {
	query := `
		INSERT INTO products (
			id, external_id, name, slug, description,
			price, original_price, platform, region, limit_per_basket,
			cover_image, screenshots, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, TRUE, NOW(), NOW()
		)
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			platform = EXCLUDED.platform,
			region = EXCLUDED.region,
			limit_per_basket = EXCLUDED.limit_per_basket,
			cover_image = EXCLUDED.cover_image,
			screenshots = EXCLUDED.screenshots,
			is_active = TRUE,
			updated_at = NOW()
		RETURNING ` + productColumns

	return scanProduct(r.db.QueryRowContext(ctx, query,
		uuid.New(), params.ExternalID, params.Name, params.Slug, params.Description,
		params.Price, params.OriginalPrice, params.Platform, params.Region, params.LimitPerBasket,
		params.CoverImage, params.Screenshots,
	))
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	return err
}
