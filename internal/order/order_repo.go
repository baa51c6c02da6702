package order

import (
	"context"
	"database/sql"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/shared/database/dbx"

	"github.com/google/uuid"
)

type Order struct {
	ID              uuid.UUID
	OrderNumber     string
	SessionID       string
	Email           sql.NullString
	Status          string
	PaymentStatus   string
	PaymentIntentID sql.NullString
	Subtotal        string
	Total           string
	Currency        string
	PlacedAt        time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	NameSnapshot string
	UnitPrice    string
	Quantity     int32
	TotalPrice   string
}

type CreateOrderParams struct {
	OrderNumber     string
	SessionID       string
	Email           sql.NullString
	Status          string
	PaymentStatus   string
	PaymentIntentID sql.NullString
	Subtotal        string
	Total           string
	Currency        string
}

type CreateOrderItemParams struct {
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	NameSnapshot string
	UnitPrice    string
	Quantity     int32
	TotalPrice   string
}

type ListParams struct {
	SessionID string
	Limit     int32
	Offset    int32
}

type ListRow struct {
	Order
	TotalCount int64
}

type UpdatePaymentStatusParams struct {
	ID            uuid.UUID
	PaymentStatus string
}

//go:generate mockgen -source=order_repo.go -destination=../mock/order/order_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx dbx.DBTX) Repository
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) error
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	ListBySession(ctx context.Context, arg ListParams) ([]ListRow, error)
	AttachPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error
	UpdatePaymentStatus(ctx context.Context, arg UpdatePaymentStatusParams) (Order, error)
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

const orderColumns = `
	id, order_number, session_id, email, status, payment_status,
	payment_intent_id, subtotal, total, currency, placed_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.SessionID, &o.Email, &o.Status, &o.PaymentStatus,
		&o.PaymentIntentID, &o.Subtotal, &o.Total, &o.Currency, &o.PlacedAt, &o.UpdatedAt,
	)
	return o, err
}

func (r *repository) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	query := `
		INSERT INTO orders (
			id, order_number, session_id, email, status, payment_status,
			payment_intent_id, subtotal, total, currency, placed_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING ` + orderColumns

	return scanOrder(r.db.QueryRowContext(ctx, query,
		uuid.New(), arg.OrderNumber, arg.SessionID, arg.Email, arg.Status,
		arg.PaymentStatus, arg.PaymentIntentID, arg.Subtotal, arg.Total, arg.Currency,
	))
}

func (r *repository) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_items (order_id, product_id, name_snapshot, unit_price, quantity, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		arg.OrderID, arg.ProductID, arg.NameSnapshot, arg.UnitPrice, arg.Quantity, arg.TotalPrice,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.db.QueryRowContext(ctx, query, id))
}

func (r *repository) GetByPaymentIntentID(ctx context.Context, intentID string) (Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE payment_intent_id = $1`
	return scanOrder(r.db.QueryRowContext(ctx, query, intentID))
}

func (r *repository) GetItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, product_id, name_snapshot, unit_price, quantity, total_price
		FROM order_items
		WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderItem
	for rows.Next() {
		var item OrderItem
		err := rows.Scan(
			&item.OrderID, &item.ProductID, &item.NameSnapshot,
			&item.UnitPrice, &item.Quantity, &item.TotalPrice,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *repository) ListBySession(ctx context.Context, arg ListParams) ([]ListRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`, COUNT(*) OVER() AS total_count
		FROM orders
		WHERE session_id = $1
		ORDER BY placed_at DESC
		LIMIT $2 OFFSET $3`,
		arg.SessionID, arg.Limit, arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		err := rows.Scan(
			&row.ID, &row.OrderNumber, &row.SessionID, &row.Email, &row.Status, &row.PaymentStatus,
			&row.PaymentIntentID, &row.Subtotal, &row.Total, &row.Currency, &row.PlacedAt, &row.UpdatedAt,
			&row.TotalCount,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) AttachPaymentIntent(ctx context.Context, id uuid.UUID, intentID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE orders SET payment_intent_id = $2, updated_at = NOW() WHERE id = $1`,
		id, intentID,
	)
	return err
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, arg UpdatePaymentStatusParams) (Order, error) {
	query := `
		UPDATE orders SET payment_status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + orderColumns
	return scanOrder(r.db.QueryRowContext(ctx, query, arg.ID, arg.PaymentStatus))
}
