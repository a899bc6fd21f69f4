package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
)

var ErrReviewNotFound = fmt.Errorf("%w: review not found", apperr.ErrNotFound)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	Update(ctx context.Context, r *Review) error
	Tombstone(ctx context.Context, id string) error
	ListByProduct(ctx context.Context, productID string) ([]Review, error)
	ListByUser(ctx context.Context, userID string) ([]Review, error)
	Summary(ctx context.Context, productID string) (Summary, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const reviewColumns = `id, product_id, user_id, rating, title, comment, review_date, verified_purchase, state, created_at, updated_at`

func scanReview(row pgx.Row) (*Review, error) {
	var r Review
	if err := row.Scan(&r.ID, &r.ProductID, &r.UserID, &r.Rating, &r.Title, &r.Comment,
		&r.ReviewDate, &r.VerifiedPurchase, &r.State, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *PGRepo) Create(ctx context.Context, r *Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := p.db.Exec(ctx, `
		INSERT INTO reviews (id, product_id, user_id, rating, title, comment, review_date, verified_purchase, state, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'active',$9,$9)
	`, r.ID, r.ProductID, r.UserID, r.Rating, r.Title, r.Comment, r.ReviewDate, r.VerifiedPurchase, r.CreatedAt)
	return err
}

func (p *PGRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	r, err := scanReview(p.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM active_reviews WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReviewNotFound
	}
	return r, err
}

// Update rewrites the editable fields; verified_purchase is fixed at creation.
func (p *PGRepo) Update(ctx context.Context, r *Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := p.db.Exec(ctx, `
		UPDATE reviews SET rating = $2, title = $3, comment = $4, updated_at = $5
		WHERE id = $1 AND state = 'active'
	`, r.ID, r.Rating, r.Title, r.Comment, r.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (p *PGRepo) Tombstone(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := p.db.Exec(ctx, `
		UPDATE reviews SET state = 'tombstoned', updated_at = NOW()
		WHERE id = $1 AND state = 'active'
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (p *PGRepo) list(ctx context.Context, where string, arg string) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := p.db.Query(ctx, `SELECT `+reviewColumns+` FROM active_reviews WHERE `+where+` = $1 ORDER BY review_date DESC, id`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (p *PGRepo) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	return p.list(ctx, "product_id", productID)
}

func (p *PGRepo) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	return p.list(ctx, "user_id", userID)
}

func (p *PGRepo) Summary(ctx context.Context, productID string) (Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s := Summary{ProductID: productID}
	err := p.db.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0)::float8, COUNT(*)
		FROM active_reviews WHERE product_id = $1
	`, productID).Scan(&s.Average, &s.Count)
	return s, err
}
