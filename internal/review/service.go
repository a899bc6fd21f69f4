// Package review stores product reviews and stamps each one, at creation, with
// whether its author had bought the product.
package review

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/catalog"
	"github.com/MikeMC777/valora-ecom/internal/db"
)

var ErrNotAuthor = fmt.Errorf("%w: review belongs to another user", apperr.ErrForbidden)

// PurchaseChecker answers whether a user ever ordered a product.
type PurchaseChecker interface {
	HasPurchased(ctx context.Context, userID, productID string) (bool, error)
}

type UserDirectory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

type Service struct {
	repo      Repository
	purchases PurchaseChecker
	catalog   catalog.Lookup
	users     UserDirectory
	log       *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, purchases PurchaseChecker, lookup catalog.Lookup, users UserDirectory, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, purchases: purchases, catalog: lookup, users: users, log: log, now: time.Now}
}

func validate(rating int, title, comment string) error {
	if rating < 1 || rating > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}
	if utf8.RuneCountInString(title) > 100 {
		return apperr.Validation("title exceeds 100 characters")
	}
	if utf8.RuneCountInString(comment) > 1000 {
		return apperr.Validation("comment exceeds 1000 characters")
	}
	return nil
}

// Create records a review by userID. VerifiedPurchase is decided here and
// never revisited.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Review, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	if strings.TrimSpace(req.ProductID) == "" {
		return nil, apperr.Validation("product id is required")
	}
	if err := validate(req.Rating, req.Title, req.Comment); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetProduct(ctx, req.ProductID); err != nil {
		return nil, apperr.Persistence(err)
	}

	verified, err := s.purchases.HasPurchased(ctx, userID, req.ProductID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	now := s.now().UTC()
	r := &Review{
		ID:               uuid.NewString(),
		ProductID:        req.ProductID,
		UserID:           userID,
		Rating:           req.Rating,
		Title:            req.Title,
		Comment:          req.Comment,
		ReviewDate:       now,
		VerifiedPurchase: verified,
		State:            db.StateActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, apperr.Persistence(err)
	}
	s.log.Info("review created",
		zap.String("review_id", r.ID),
		zap.String("product_id", r.ProductID),
		zap.Bool("verified_purchase", verified),
	)
	return r, nil
}

// Update lets the author change rating, title and comment.
func (s *Service) Update(ctx context.Context, actor auth.Identity, id string, req UpdateRequest) (*Review, error) {
	if err := validate(req.Rating, req.Title, req.Comment); err != nil {
		return nil, err
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	if r.UserID != actor.UserID {
		return nil, ErrNotAuthor
	}
	r.Rating, r.Title, r.Comment = req.Rating, req.Title, req.Comment
	r.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, apperr.Persistence(err)
	}
	return r, nil
}

// Delete tombstones the review. Authors may delete their own, admins any.
func (s *Service) Delete(ctx context.Context, actor auth.Identity, id string) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperr.Persistence(err)
	}
	if r.UserID != actor.UserID && !actor.IsAdmin() {
		return ErrNotAuthor
	}
	return apperr.Persistence(s.repo.Tombstone(ctx, id))
}

func (s *Service) Get(ctx context.Context, id string) (*DTO, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	out := s.describe(ctx, []Review{*r})
	return &out[0], nil
}

func (s *Service) ListByProduct(ctx context.Context, productID string) ([]DTO, error) {
	rs, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return s.describe(ctx, rs), nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]DTO, error) {
	rs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return s.describe(ctx, rs), nil
}

// Summary returns the average rating, rounded to two decimals, and review count.
func (s *Service) Summary(ctx context.Context, productID string) (Summary, error) {
	sum, err := s.repo.Summary(ctx, productID)
	if err != nil {
		return Summary{}, apperr.Persistence(err)
	}
	sum.Average = math.Round(sum.Average*100) / 100
	return sum, nil
}

// describe resolves names once per distinct product and user. Lookup failures
// leave the name empty.
func (s *Service) describe(ctx context.Context, rs []Review) []DTO {
	products := map[string]string{}
	users := map[string]string{}
	out := make([]DTO, 0, len(rs))
	for _, r := range rs {
		pname, ok := products[r.ProductID]
		if !ok {
			p, err := s.catalog.GetProduct(ctx, r.ProductID)
			switch {
			case err == nil:
				pname = p.Name
			case !errors.Is(err, catalog.ErrNotFound):
				s.log.Warn("review product lookup", zap.String("product_id", r.ProductID), zap.Error(err))
			}
			products[r.ProductID] = pname
		}
		uname, ok := users[r.UserID]
		if !ok && s.users != nil {
			name, err := s.users.DisplayName(ctx, r.UserID)
			if err != nil {
				s.log.Warn("review user lookup", zap.String("user_id", r.UserID), zap.Error(err))
			}
			uname = name
			users[r.UserID] = uname
		}
		out = append(out, DTO{
			ID:               r.ID,
			ProductID:        r.ProductID,
			ProductName:      pname,
			UserID:           r.UserID,
			UserName:         uname,
			Rating:           r.Rating,
			Title:            r.Title,
			Comment:          r.Comment,
			ReviewDate:       r.ReviewDate,
			VerifiedPurchase: r.VerifiedPurchase,
		})
	}
	return out
}
