// Package cart keeps one live cart per user and its lines.
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
)

var (
	ErrCartNotFound    = fmt.Errorf("%w: cart not found", apperr.ErrNotFound)
	ErrInvalidQuantity = fmt.Errorf("%w: invalid quantity", apperr.ErrValidation)
)

type Repository interface {
	// GetOrCreate returns the user's active cart, creating it if needed.
	GetOrCreate(ctx context.Context, userID string) (*Cart, error)
	FindByUser(ctx context.Context, userID string) (*Cart, error)
	FindByID(ctx context.Context, cartID string) (*Cart, error)
	// AddLine merges quantity into the active line for productID.
	AddLine(ctx context.Context, cartID, productID string, quantity int) error
	// RemoveLine decrements and tombstones the line once it reaches zero.
	RemoveLine(ctx context.Context, cartID, productID string, quantity int) error
	Tombstone(ctx context.Context, cartID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) GetOrCreate(ctx context.Context, userID string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The partial unique index turns a concurrent second insert into a no-op;
	// the re-read then sees whichever cart won. A cart cleared between the two
	// statements sends us round again.
	for attempt := 0; attempt < 3; attempt++ {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO carts (id, user_id, state, created_at, updated_at)
			VALUES ($1, $2, 'active', NOW(), NOW())
			ON CONFLICT (user_id) WHERE state = 'active' DO NOTHING
		`, uuid.NewString(), userID); err != nil {
			return nil, err
		}
		c, err := r.load(ctx, `user_id = $1`, userID)
		if errors.Is(err, ErrCartNotFound) {
			continue
		}
		return c, err
	}
	return nil, fmt.Errorf("%w: cart for user %s kept disappearing", apperr.ErrConflict, userID)
}

func (r *PGRepo) FindByUser(ctx context.Context, userID string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.load(ctx, `user_id = $1`, userID)
}

func (r *PGRepo) FindByID(ctx context.Context, cartID string) (*Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.load(ctx, `id = $1`, cartID)
}

func (r *PGRepo) load(ctx context.Context, where string, arg string) (*Cart, error) {
	var c Cart
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, state, created_at, updated_at
		FROM active_carts WHERE `+where, arg).
		Scan(&c.ID, &c.UserID, &c.State, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, cart_id, product_id, quantity, state
		FROM active_cart_lines WHERE cart_id = $1
		ORDER BY created_at, id
	`, c.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	c.Lines = []Line{}
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.CartID, &l.ProductID, &l.Quantity, &l.State); err != nil {
			return nil, err
		}
		c.Lines = append(c.Lines, l)
	}
	return &c, rows.Err()
}

func (r *PGRepo) AddLine(ctx context.Context, cartID, productID string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockForWrite(ctx, tx, cartID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO cart_lines (id, cart_id, product_id, quantity, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'active', NOW(), NOW())
		ON CONFLICT (cart_id, product_id) WHERE state = 'active'
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = NOW()
	`, uuid.NewString(), cartID, productID, quantity); err != nil {
		return err
	}
	if err := touch(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) RemoveLine(ctx context.Context, cartID, productID string, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockForWrite(ctx, tx, cartID); err != nil {
		return err
	}

	// SET expressions see the old row, so both CASEs test the same difference.
	if _, err := tx.Exec(ctx, `
		UPDATE cart_lines
		SET quantity = CASE WHEN quantity - $3::bigint <= 0 THEN quantity ELSE quantity - $3 END,
		    state    = CASE WHEN quantity - $3::bigint <= 0 THEN 'tombstoned' ELSE state END,
		    updated_at = NOW()
		WHERE cart_id = $1 AND product_id = $2 AND state = 'active'
	`, cartID, productID, int64(quantity)); err != nil {
		return err
	}
	if err := touch(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) Tombstone(ctx context.Context, cartID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE carts SET state = 'tombstoned', updated_at = NOW()
		WHERE id = $1 AND state = 'active'
	`, cartID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCartNotFound
	}
	if _, err := tx.Exec(ctx, `
		UPDATE cart_lines SET state = 'tombstoned', updated_at = NOW()
		WHERE cart_id = $1 AND state = 'active'
	`, cartID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// lockForWrite fails with ErrCartNotFound unless cartID is active. The row lock
// is the one touch needs anyway, taken up front so concurrent writers queue
// instead of deadlocking, and a checkout holding FOR UPDATE waits for us.
func lockForWrite(ctx context.Context, tx pgx.Tx, cartID string) error {
	var id string
	err := tx.QueryRow(ctx, `SELECT id FROM active_carts WHERE id = $1 FOR NO KEY UPDATE`, cartID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCartNotFound
	}
	return err
}

func touch(ctx context.Context, tx pgx.Tx, cartID string) error {
	_, err := tx.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID)
	return err
}
