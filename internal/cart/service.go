package cart

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
	"github.com/MikeMC777/valora-ecom/internal/catalog"
)

const (
	// RemoveAll passed as the quantity to RemoveItem drops the line whatever its quantity.
	RemoveAll = math.MaxInt32
	// MaxQuantityPerAdd bounds a single AddItem call.
	MaxQuantityPerAdd = 100
)

type Service struct {
	repo    Repository
	catalog catalog.Lookup
	cache   Cache
	log     *zap.Logger
	sfg     singleflight.Group // coalesces concurrent loads of the same user's cart
}

func NewService(repo Repository, lookup catalog.Lookup, cache Cache, log *zap.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, catalog: lookup, cache: cache, log: log}
}

// GetOrCreate returns the user's active cart, provisioning an empty one on first use.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*Cart, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return c, nil
}

// AddItem adds quantity of productID to the user's cart and returns the id of
// the cart it landed in. cartID is honoured only when it names an active cart
// owned by userID.
func (s *Service) AddItem(ctx context.Context, userID, cartID, productID string, quantity int) (string, error) {
	if quantity < 1 || quantity > MaxQuantityPerAdd {
		return "", ErrInvalidQuantity
	}
	if productID == "" {
		return "", apperr.Validation("product id is required")
	}

	target, err := s.resolve(ctx, userID, cartID)
	if err != nil {
		return "", err
	}

	err = s.repo.AddLine(ctx, target.ID, productID, quantity)
	if errors.Is(err, ErrCartNotFound) {
		// cleared between resolve and insert; the user gets a fresh cart
		target, err = s.GetOrCreate(ctx, userID)
		if err != nil {
			return "", err
		}
		err = s.repo.AddLine(ctx, target.ID, productID, quantity)
	}
	if err != nil {
		return "", apperr.Persistence(err)
	}

	s.Invalidate(ctx, userID)
	return target.ID, nil
}

func (s *Service) resolve(ctx context.Context, userID, cartID string) (*Cart, error) {
	if cartID != "" {
		c, err := s.repo.FindByID(ctx, cartID)
		switch {
		case err == nil && c.UserID == userID:
			return c, nil
		case err != nil && !errors.Is(err, ErrCartNotFound):
			return nil, apperr.Persistence(err)
		}
	}
	return s.GetOrCreate(ctx, userID)
}

// RemoveItem decrements productID in cartID; the line is tombstoned once its
// quantity reaches zero. Use RemoveAll to drop it outright.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	c, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		return apperr.Persistence(err)
	}
	if err := s.repo.RemoveLine(ctx, cartID, productID, quantity); err != nil {
		return apperr.Persistence(err)
	}
	s.Invalidate(ctx, c.UserID)
	return nil
}

// Clear tombstones the cart. The next GetOrCreate for the user provisions a new one.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	c, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		return apperr.Persistence(err)
	}
	if err := s.repo.Tombstone(ctx, cartID); err != nil {
		return apperr.Persistence(err)
	}
	s.Invalidate(ctx, c.UserID)
	return nil
}

// ItemCount sums the quantities in the user's cart; 0 when there is none.
func (s *Service) ItemCount(ctx context.Context, userID string) (int, error) {
	c, err := s.cached(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.ItemCount(), nil
}

// View returns the user's cart priced from the catalog, creating the cart if needed.
func (s *Service) View(ctx context.Context, userID string) (*DTO, error) {
	c, err := s.cached(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		c, err = s.GetOrCreate(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, c)
}

// ViewByID returns the cart with the given id.
func (s *Service) ViewByID(ctx context.Context, cartID string) (*DTO, error) {
	c, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return s.toDTO(ctx, c)
}

// Invalidate drops the cached cart of userID. Cache errors are logged only.
// A load already in flight for the user is detached so later readers start a
// fresh one instead of sharing its result.
func (s *Service) Invalidate(ctx context.Context, userID string) {
	s.sfg.Forget(userID)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.log.Warn("cart cache invalidate", zap.String("user_id", userID), zap.Error(err))
	}
}

// loadTimeout bounds a coalesced cart load, which is detached from the
// caller that started it.
const loadTimeout = 5 * time.Second

func (s *Service) cached(ctx context.Context, userID string) (*Cart, error) {
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		c, err := s.cache.Get(ctx, userID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("cart cache get", zap.String("user_id", userID), zap.Error(err))
		}

		// read before the load so an invalidation racing it refuses the write back
		gen, genErr := s.cache.Generation(ctx, userID)
		if genErr != nil {
			s.log.Warn("cart cache generation", zap.String("user_id", userID), zap.Error(genErr))
		}

		c, err = s.repo.FindByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if genErr == nil {
			if err := s.cache.SetIfGeneration(ctx, userID, c, gen); err != nil {
				s.log.Warn("cart cache set", zap.String("user_id", userID), zap.Error(err))
			}
		}
		return c, nil
	})
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return v.(*Cart), nil
}

func (s *Service) toDTO(ctx context.Context, c *Cart) (*DTO, error) {
	out := &DTO{
		CartID:      c.ID,
		UserID:      c.UserID,
		Items:       make([]ItemDTO, 0, len(c.Lines)),
		TotalAmount: decimal.Zero,
	}
	for _, l := range c.Lines {
		item := ItemDTO{
			CartID:       c.ID,
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			ProductPrice: decimal.Zero,
			TotalPrice:   decimal.Zero,
		}
		p, err := s.catalog.GetProduct(ctx, l.ProductID)
		switch {
		case err == nil:
			item.ProductName = p.Name
			item.ProductPrice = p.Price
			item.ProductImage = p.ImageURL
			item.TotalPrice = p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			item.Available = true
		case errors.Is(err, catalog.ErrNotFound):
			// shown but unpriced; checkout rejects it
		default:
			return nil, err
		}
		out.Items = append(out.Items, item)
		out.TotalAmount = out.TotalAmount.Add(item.TotalPrice)
		out.ItemCount += l.Quantity
	}
	return out, nil
}
