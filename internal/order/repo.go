package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
	"github.com/MikeMC777/valora-ecom/internal/cart"
)

var (
	ErrOrderNotFound = fmt.Errorf("%w: order not found", apperr.ErrNotFound)
	ErrCartNotFound  = cart.ErrCartNotFound
)

// CheckoutTx is the view of storage a checkout runs against. Everything done
// through it commits or rolls back together.
type CheckoutTx interface {
	// ActiveCartID returns the id of the user's active cart.
	ActiveCartID(ctx context.Context, userID string) (string, error)
	// LockCart locks the cart row and returns its active lines.
	LockCart(ctx context.Context, cartID, userID string) ([]CartLine, error)
	Insert(ctx context.Context, o *Order, lines []Line) error
	ConsumeLines(ctx context.Context, cartID string, lineIDs []string) error
}

type Repository interface {
	Checkout(ctx context.Context, fn func(ctx context.Context, tx CheckoutTx) error) error
	GetByID(ctx context.Context, id string) (*Order, []Line, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]Order, error)
	GetLines(ctx context.Context, orderIDs []string) (map[string][]Line, error)
	// Transition locks the order, lets fn mutate it and persists the status fields.
	Transition(ctx context.Context, id string, fn func(*Order) error) (*Order, error)
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderColumns = `id, order_number, user_id, order_date, status, total::text,
	shipping_address, city, postal_code, country, phone_number,
	shipped_at, delivered_at, notes, state, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		total string
	)
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.OrderDate, &o.Status, &total,
		&o.ShippingAddress, &o.City, &o.PostalCode, &o.Country, &o.PhoneNumber,
		&o.ShippedAt, &o.DeliveredAt, &o.Notes, &o.State, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("order %s total %q: %w", o.ID, total, err)
	}
	o.Total = d
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	defer rows.Close()
	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func page(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (r *PGRepo) Checkout(ctx context.Context, fn func(ctx context.Context, tx CheckoutTx) error) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, pgCheckoutTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgCheckoutTx struct{ tx pgx.Tx }

func (t pgCheckoutTx) ActiveCartID(ctx context.Context, userID string) (string, error) {
	var id string
	err := t.tx.QueryRow(ctx, `SELECT id FROM active_carts WHERE user_id = $1`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrCartNotFound
	}
	return id, err
}

func (t pgCheckoutTx) LockCart(ctx context.Context, cartID, userID string) ([]CartLine, error) {
	var id string
	err := t.tx.QueryRow(ctx, `
		SELECT id FROM active_carts WHERE id = $1 AND user_id = $2 FOR UPDATE
	`, cartID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := t.tx.Query(ctx, `
		SELECT id, product_id, quantity FROM active_cart_lines
		WHERE cart_id = $1
		ORDER BY created_at, id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (t pgCheckoutTx) Insert(ctx context.Context, o *Order, lines []Line) error {
	if _, err := t.tx.Exec(ctx, `
		INSERT INTO orders (id, order_number, user_id, order_date, status, total,
			shipping_address, city, postal_code, country, phone_number, notes, state, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6::numeric,$7,$8,$9,$10,$11,$12,'active',NOW(),NOW())
	`, o.ID, o.OrderNumber, o.UserID, o.OrderDate, o.Status, o.Total.StringFixed(2),
		o.ShippingAddress, o.City, o.PostalCode, o.Country, o.PhoneNumber, o.Notes); err != nil {
		return err
	}

	for _, l := range lines {
		if _, err := t.tx.Exec(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, product_name, quantity, unit_price, line_total, state, created_at)
			VALUES ($1,$2,$3,$4,$5,$6::numeric,$7::numeric,'active',NOW())
		`, l.ID, o.ID, l.ProductID, l.ProductName, l.Quantity, l.UnitPrice.StringFixed(2), l.LineTotal.StringFixed(2)); err != nil {
			return err
		}
	}
	return nil
}

func (t pgCheckoutTx) ConsumeLines(ctx context.Context, cartID string, lineIDs []string) error {
	if _, err := t.tx.Exec(ctx, `
		UPDATE cart_lines SET state = 'tombstoned', updated_at = NOW()
		WHERE cart_id = $1 AND id = ANY($2) AND state = 'active'
	`, cartID, lineIDs); err != nil {
		return err
	}
	_, err := t.tx.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Line, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM active_orders WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	lines, err := r.GetLines(ctx, []string{id})
	if err != nil {
		return nil, nil, err
	}
	return o, lines[id], nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit, offset = page(limit, offset)
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM active_orders WHERE user_id=$1
		ORDER BY order_date DESC, id LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *PGRepo) ListAll(ctx context.Context, limit, offset int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit, offset = page(limit, offset)
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM active_orders
		ORDER BY order_date DESC, id LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *PGRepo) GetLines(ctx context.Context, orderIDs []string) (map[string][]Line, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price::text, line_total::text
		FROM active_order_lines
		WHERE order_id = ANY($1)
		ORDER BY created_at, id
	`, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Line, len(orderIDs))
	for rows.Next() {
		var (
			l           Line
			unit, total string
		)
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.Quantity, &unit, &total); err != nil {
			return nil, err
		}
		if l.UnitPrice, err = decimal.NewFromString(unit); err != nil {
			return nil, err
		}
		if l.LineTotal, err = decimal.NewFromString(total); err != nil {
			return nil, err
		}
		out[l.OrderID] = append(out[l.OrderID], l)
	}
	return out, rows.Err()
}

func (r *PGRepo) Transition(ctx context.Context, id string, fn func(*Order) error) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM active_orders WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := fn(o); err != nil {
		return nil, err
	}

	if err := tx.QueryRow(ctx, `
		UPDATE orders
		SET status = $2, shipped_at = $3, delivered_at = $4, notes = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, o.ID, o.Status, o.ShippedAt, o.DeliveredAt, o.Notes).Scan(&o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *PGRepo) HasPurchased(ctx context.Context, userID, productID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ok bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM active_orders o
			JOIN active_order_lines l ON l.order_id = o.id
			WHERE o.user_id = $1 AND l.product_id = $2
		)
	`, userID, productID).Scan(&ok)
	return ok, err
}
