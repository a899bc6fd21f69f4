package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/cart"
	"github.com/MikeMC777/valora-ecom/internal/order"
	"github.com/MikeMC777/valora-ecom/internal/review"
	"github.com/MikeMC777/valora-ecom/internal/user"
)

// The handlers depend on these rather than on the concrete services so the
// HTTP layer can be tested with in-memory fakes.

type cartAPI interface {
	GetOrCreate(ctx context.Context, userID string) (*cart.Cart, error)
	AddItem(ctx context.Context, userID, cartID, productID string, quantity int) (string, error)
	RemoveItem(ctx context.Context, cartID, productID string, quantity int) error
	Clear(ctx context.Context, cartID string) error
	ItemCount(ctx context.Context, userID string) (int, error)
	View(ctx context.Context, userID string) (*cart.DTO, error)
	ViewByID(ctx context.Context, cartID string) (*cart.DTO, error)
}

type orderAPI interface {
	CreateFromCart(ctx context.Context, req order.CheckoutRequest) (*order.Order, []order.Line, error)
	Get(ctx context.Context, orderID string) (*order.DTO, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]order.DTO, error)
	ListAll(ctx context.Context, limit, offset int) ([]order.DTO, error)
	Total(ctx context.Context, orderID string) (decimal.Decimal, error)
	UpdateStatus(ctx context.Context, orderID string, u order.StatusUpdate) (*order.Order, error)
	Cancel(ctx context.Context, orderID string, actor auth.Identity) (*order.Order, error)
}

type reviewAPI interface {
	Create(ctx context.Context, userID string, req review.CreateRequest) (*review.Review, error)
	Update(ctx context.Context, actor auth.Identity, id string, req review.UpdateRequest) (*review.Review, error)
	Delete(ctx context.Context, actor auth.Identity, id string) error
	Get(ctx context.Context, id string) (*review.DTO, error)
	ListByProduct(ctx context.Context, productID string) ([]review.DTO, error)
	ListByUser(ctx context.Context, userID string) ([]review.DTO, error)
	Summary(ctx context.Context, productID string) (review.Summary, error)
}

type userAPI interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

var (
	_ userAPI   = (*user.Directory)(nil)
	_ cartAPI   = (*cart.Service)(nil)
	_ orderAPI  = (*order.Service)(nil)
	_ reviewAPI = (*review.Service)(nil)
)
