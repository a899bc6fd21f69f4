package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/cart"
	"github.com/MikeMC777/valora-ecom/internal/catalog"
	"github.com/MikeMC777/valora-ecom/internal/db/dbtest"
	"github.com/MikeMC777/valora-ecom/internal/order"
	"github.com/MikeMC777/valora-ecom/internal/review"
	"github.com/MikeMC777/valora-ecom/internal/user"
)

func TestReviewsPG(t *testing.T) {
	pool := dbtest.Start(t)
	ctx := context.Background()

	products := dbtest.NewCatalog(pool)
	products.SeedProduct(t, "7", "Mug", "10.00")
	products.SeedProduct(t, "8", "Pen", "5.00")

	users := user.NewService(user.NewPGRepo(pool), auth.NewIssuer("test-secret", time.Hour), nil)
	carts := cart.NewService(cart.NewPGRepo(pool), products, cart.NopCache{}, nil)
	orders := order.NewService(order.NewPGRepo(pool), products, users, carts, nil)
	reviews := review.NewService(review.NewPGRepo(pool), orders, products, users, nil)

	ana, err := users.Register(ctx, user.RegisterRequest{Username: "ana", Email: "Ana@Example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	luis, err := users.Register(ctx, user.RegisterRequest{Username: "luis", Email: "luis@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	// ana buys product 7, luis buys nothing
	_, err = carts.AddItem(ctx, ana.ID, "", "7", 1)
	require.NoError(t, err)
	o, _, err := orders.CreateFromCart(ctx, order.CheckoutRequest{
		UserID: ana.ID, ShippingAddress: "Calle 10 # 5-20", City: "Medellín",
		PostalCode: "050021", Country: "Colombia", PhoneNumber: "3000000000",
	})
	require.NoError(t, err)
	_, err = orders.Cancel(ctx, o.ID, auth.Identity{UserID: ana.ID})
	require.NoError(t, err)

	verified, err := reviews.Create(ctx, ana.ID, review.CreateRequest{ProductID: "7", Rating: 5, Title: "Great"})
	require.NoError(t, err)
	assert.True(t, verified.VerifiedPurchase)

	unverified, err := reviews.Create(ctx, luis.ID, review.CreateRequest{ProductID: "7", Rating: 2})
	require.NoError(t, err)
	assert.False(t, unverified.VerifiedPurchase)

	_, err = reviews.Create(ctx, luis.ID, review.CreateRequest{ProductID: "ghost", Rating: 4})
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	got, err := reviews.Get(ctx, verified.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.UserName)
	assert.Equal(t, "Mug", got.ProductName)

	sum, err := reviews.Summary(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Count)
	assert.InDelta(t, 3.5, sum.Average, 0.001)

	// the flag is decided at creation and kept on edit
	_, err = reviews.Update(ctx, auth.Identity{UserID: ana.ID}, verified.ID, review.UpdateRequest{Rating: 4})
	require.NoError(t, err)
	got, err = reviews.Get(ctx, verified.ID)
	require.NoError(t, err)
	assert.True(t, got.VerifiedPurchase)
	assert.Equal(t, 4, got.Rating)

	_, err = reviews.Update(ctx, auth.Identity{UserID: ana.ID}, unverified.ID, review.UpdateRequest{Rating: 1})
	assert.ErrorIs(t, err, review.ErrNotAuthor)

	admin := auth.Identity{UserID: "root", Roles: []string{auth.RoleAdmin}}
	require.NoError(t, reviews.Delete(ctx, admin, unverified.ID))
	_, err = reviews.Get(ctx, unverified.ID)
	assert.ErrorIs(t, err, review.ErrReviewNotFound)

	sum, err = reviews.Summary(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
	assert.InDelta(t, 4.0, sum.Average, 0.001)

	empty, err := reviews.Summary(ctx, "8")
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Average)
}
