package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/catalog"
	"github.com/MikeMC777/valora-ecom/internal/db"
)

const cancelNote = "Order cancelled by user"

var (
	ErrEmptyCart          = fmt.Errorf("%w: cart is empty", apperr.ErrValidation)
	ErrProductUnavailable = fmt.Errorf("%w: product unavailable", apperr.ErrConflict)
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()\-]{5,20}$`)

// UserDirectory resolves the display name shown on orders.
type UserDirectory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// CartInvalidator drops cached cart state after a checkout consumed it.
type CartInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

type Service struct {
	repo    Repository
	catalog catalog.Lookup
	users   UserDirectory
	carts   CartInvalidator
	log     *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, lookup catalog.Lookup, users UserDirectory, carts CartInvalidator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, catalog: lookup, users: users, carts: carts, log: log, now: time.Now}
}

func (r CheckoutRequest) validate() error {
	if r.UserID == "" {
		return apperr.Validation("user id is required")
	}
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"shipping_address", r.ShippingAddress, 200},
		{"city", r.City, 100},
		{"postal_code", r.PostalCode, 20},
		{"country", r.Country, 100},
		{"phone_number", r.PhoneNumber, 20},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperr.Validation("%s is required", f.name)
		}
		if utf8.RuneCountInString(f.value) > f.max {
			return apperr.Validation("%s exceeds %d characters", f.name, f.max)
		}
	}
	if !phonePattern.MatchString(r.PhoneNumber) {
		return apperr.Validation("phone_number is not a valid phone number")
	}
	if utf8.RuneCountInString(r.Notes) > 500 {
		return apperr.Validation("notes exceeds 500 characters")
	}
	return nil
}

func orderNumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD-" + t.Format("20060102") + "-" + suffix
}

// CreateFromCart snapshots the user's cart into a Pending order priced from
// the catalog, and consumes the cart lines it used. Nothing is written unless
// every step succeeds.
func (s *Service) CreateFromCart(ctx context.Context, req CheckoutRequest) (*Order, []Line, error) {
	if err := req.validate(); err != nil {
		return nil, nil, err
	}

	var (
		o     *Order
		lines []Line
	)
	err := s.repo.Checkout(ctx, func(ctx context.Context, tx CheckoutTx) error {
		cartID := req.CartID
		if cartID == "" {
			id, err := tx.ActiveCartID(ctx, req.UserID)
			if err != nil {
				return err
			}
			cartID = id
		}

		cartLines, err := tx.LockCart(ctx, cartID, req.UserID)
		if err != nil {
			return err
		}
		if len(cartLines) == 0 {
			return ErrEmptyCart
		}

		now := s.now().UTC()
		o = &Order{
			ID:              uuid.NewString(),
			OrderNumber:     orderNumber(now),
			UserID:          req.UserID,
			OrderDate:       now,
			Status:          StatusPending,
			Total:           decimal.Zero,
			ShippingAddress: req.ShippingAddress,
			City:            req.City,
			PostalCode:      req.PostalCode,
			Country:         req.Country,
			PhoneNumber:     req.PhoneNumber,
			Notes:           req.Notes,
			State:           db.StateActive,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		lines = make([]Line, 0, len(cartLines))
		consumed := make([]string, 0, len(cartLines))
		for _, cl := range cartLines {
			p, err := s.catalog.GetProduct(ctx, cl.ProductID)
			if errors.Is(err, catalog.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, cl.ProductID)
			}
			if err != nil {
				return err
			}
			l := newLine(uuid.NewString(), o.ID, cl.ProductID, p.Name, cl.Quantity, p.Price)
			o.Total = o.Total.Add(l.LineTotal)
			lines = append(lines, l)
			consumed = append(consumed, cl.ID)
		}

		if err := tx.Insert(ctx, o, lines); err != nil {
			return err
		}
		return tx.ConsumeLines(ctx, cartID, consumed)
	})
	if err != nil {
		return nil, nil, apperr.Persistence(err)
	}

	if s.carts != nil {
		s.carts.Invalidate(ctx, req.UserID)
	}
	s.log.Info("order created",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("user_id", o.UserID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.Int("lines", len(lines)),
	)
	return o, lines, nil
}

// UpdateStatus moves the order along the status machine.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, u StatusUpdate) (*Order, error) {
	return s.transition(ctx, orderID, func(o *Order) error { return apply(o, u) })
}

// Cancel cancels an order on behalf of actor, who must own it or be an admin.
// Anyone else gets ErrOrderNotFound, as they would reading it.
func (s *Service) Cancel(ctx context.Context, orderID string, actor auth.Identity) (*Order, error) {
	return s.transition(ctx, orderID, func(o *Order) error {
		if o.UserID != actor.UserID && !actor.IsAdmin() {
			return ErrOrderNotFound
		}
		return apply(o, StatusUpdate{Status: StatusCancelled, Notes: cancelNote})
	})
}

func (s *Service) transition(ctx context.Context, orderID string, fn func(*Order) error) (*Order, error) {
	var from Status
	o, err := s.repo.Transition(ctx, orderID, func(o *Order) error {
		from = o.Status
		return fn(o)
	})
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	s.log.Info("order status changed",
		zap.String("order_id", o.ID),
		zap.String("from", string(from)),
		zap.String("to", string(o.Status)),
	)
	return o, nil
}

func (s *Service) Get(ctx context.Context, orderID string) (*DTO, error) {
	o, lines, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	d := ToDTO(o, lines, s.displayName(ctx, o.UserID, nil))
	return &d, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string, limit, offset int) ([]DTO, error) {
	orders, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return s.describe(ctx, orders)
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]DTO, error) {
	orders, err := s.repo.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return s.describe(ctx, orders)
}

// Total is the stored order total; it is never recomputed from the lines.
func (s *Service) Total(ctx context.Context, orderID string) (decimal.Decimal, error) {
	o, _, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return decimal.Zero, apperr.Persistence(err)
	}
	return o.Total, nil
}

// HasPurchased reports whether userID has any order, cancelled ones included,
// containing productID.
func (s *Service) HasPurchased(ctx context.Context, userID, productID string) (bool, error) {
	ok, err := s.repo.HasPurchased(ctx, userID, productID)
	if err != nil {
		return false, apperr.Persistence(err)
	}
	return ok, nil
}

func (s *Service) describe(ctx context.Context, orders []Order) ([]DTO, error) {
	out := make([]DTO, 0, len(orders))
	if len(orders) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	lines, err := s.repo.GetLines(ctx, ids)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	names := map[string]string{}
	for i := range orders {
		o := &orders[i]
		out = append(out, ToDTO(o, lines[o.ID], s.displayName(ctx, o.UserID, names)))
	}
	return out, nil
}

// displayName never fails the read; an unknown user renders with an empty name.
func (s *Service) displayName(ctx context.Context, userID string, memo map[string]string) string {
	if s.users == nil {
		return ""
	}
	if name, ok := memo[userID]; ok {
		return name
	}
	name, err := s.users.DisplayName(ctx, userID)
	if err != nil {
		s.log.Warn("order user lookup", zap.String("user_id", userID), zap.Error(err))
	}
	if memo != nil {
		memo[userID] = name
	}
	return name
}
