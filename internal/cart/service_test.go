package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
	"github.com/MikeMC777/valora-ecom/internal/catalog"
	"github.com/MikeMC777/valora-ecom/internal/db"
)

// memRepo mirrors PGRepo semantics: one active cart per user, one active line
// per (cart, product), tombstones instead of deletes.
type memRepo struct {
	mu     sync.Mutex
	seq    int
	carts  []*Cart
	lines  []*Line
	err    error
	creats int
}

func newMemRepo() *memRepo { return &memRepo{} }

func (m *memRepo) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memRepo) activeCart(match func(*Cart) bool) *Cart {
	for _, c := range m.carts {
		if c.State == db.StateActive && match(c) {
			return c
		}
	}
	return nil
}

func (m *memRepo) snapshot(c *Cart) *Cart {
	cp := *c
	cp.Lines = []Line{}
	for _, l := range m.lines {
		if l.CartID == c.ID && l.State == db.StateActive {
			cp.Lines = append(cp.Lines, *l)
		}
	}
	return &cp
}

func (m *memRepo) GetOrCreate(_ context.Context, userID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c := m.activeCart(func(c *Cart) bool { return c.UserID == userID })
	if c == nil {
		c = &Cart{ID: m.nextID("cart"), UserID: userID, State: db.StateActive}
		m.carts = append(m.carts, c)
		m.creats++
	}
	return m.snapshot(c), nil
}

func (m *memRepo) FindByUser(_ context.Context, userID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c := m.activeCart(func(c *Cart) bool { return c.UserID == userID })
	if c == nil {
		return nil, ErrCartNotFound
	}
	return m.snapshot(c), nil
}

func (m *memRepo) FindByID(_ context.Context, cartID string) (*Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c := m.activeCart(func(c *Cart) bool { return c.ID == cartID })
	if c == nil {
		return nil, ErrCartNotFound
	}
	return m.snapshot(c), nil
}

func (m *memRepo) AddLine(_ context.Context, cartID, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.activeCart(func(c *Cart) bool { return c.ID == cartID }) == nil {
		return ErrCartNotFound
	}
	for _, l := range m.lines {
		if l.CartID == cartID && l.ProductID == productID && l.State == db.StateActive {
			l.Quantity += quantity
			return nil
		}
	}
	m.lines = append(m.lines, &Line{ID: m.nextID("line"), CartID: cartID, ProductID: productID, Quantity: quantity, State: db.StateActive})
	return nil
}

func (m *memRepo) RemoveLine(_ context.Context, cartID, productID string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeCart(func(c *Cart) bool { return c.ID == cartID }) == nil {
		return ErrCartNotFound
	}
	for _, l := range m.lines {
		if l.CartID == cartID && l.ProductID == productID && l.State == db.StateActive {
			if l.Quantity-quantity <= 0 {
				l.State = db.StateTombstoned
			} else {
				l.Quantity -= quantity
			}
		}
	}
	return nil
}

func (m *memRepo) Tombstone(_ context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.activeCart(func(c *Cart) bool { return c.ID == cartID })
	if c == nil {
		return ErrCartNotFound
	}
	c.State = db.StateTombstoned
	for _, l := range m.lines {
		if l.CartID == cartID {
			l.State = db.StateTombstoned
		}
	}
	return nil
}

type stubCatalog map[string]catalog.Product

func (s stubCatalog) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := s[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, stubCatalog{
		"7": {ID: "7", Name: "Lamp", Price: decimal.RequireFromString("10")},
		"8": {ID: "8", Name: "Mug", Price: decimal.RequireFromString("5")},
	}, nil, nil)
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	cartID, err := svc.AddItem(ctx, "u1", "", "7", 3)
	require.NoError(t, err)
	require.NotEmpty(t, cartID)

	n, err := svc.ItemCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	again, err := svc.AddItem(ctx, "u1", "", "7", 2)
	require.NoError(t, err)
	assert.Equal(t, cartID, again)

	c, err := repo.FindByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)
}

func TestAddItem_SumOfManyAdds(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	want := 0
	for _, q := range []int{1, 4, 2, 9, 100} {
		_, err := svc.AddItem(ctx, "u1", "", "8", q)
		require.NoError(t, err)
		want += q
	}
	dto, err := svc.View(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, want, dto.Items[0].Quantity)
	assert.Equal(t, want, dto.ItemCount)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	for _, q := range []int{0, -1, MaxQuantityPerAdd + 1} {
		_, err := svc.AddItem(context.Background(), "u1", "", "7", q)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	}
	assert.Zero(t, repo.creats, "no cart should be created for rejected adds")
}

func TestAddItem_ForeignCartIDFallsBackToOwnCart(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	other, err := svc.AddItem(ctx, "u2", "", "7", 1)
	require.NoError(t, err)

	mine, err := svc.AddItem(ctx, "u1", other, "7", 1)
	require.NoError(t, err)
	assert.NotEqual(t, other, mine)

	c, err := repo.FindByID(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 1, c.ItemCount())
}

func TestAddItem_StaleCartIDGetsNewCart(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	first, err := svc.AddItem(ctx, "u1", "", "7", 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, first))

	second, err := svc.AddItem(ctx, "u1", first, "7", 2)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	n, err := svc.ItemCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRemoveItem(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	cartID, err := svc.AddItem(ctx, "u1", "", "7", 5)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, cartID, "7", 2))
	n, _ := svc.ItemCount(ctx, "u1")
	assert.Equal(t, 3, n)

	// at least the current quantity removes the line
	require.NoError(t, svc.RemoveItem(ctx, cartID, "7", 3))
	c, err := repo.FindByID(ctx, cartID)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)

	_, err = svc.AddItem(ctx, "u1", cartID, "7", 4)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveItem(ctx, cartID, "7", RemoveAll))
	n, _ = svc.ItemCount(ctx, "u1")
	assert.Zero(t, n)

	// unknown product is a no-op
	assert.NoError(t, svc.RemoveItem(ctx, cartID, "nope", 1))

	assert.ErrorIs(t, svc.RemoveItem(ctx, cartID, "7", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, svc.RemoveItem(ctx, "missing", "7", 1), ErrCartNotFound)
}

func TestClear_ProvisionsNewCart(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	cartID, err := svc.AddItem(ctx, "u1", "", "7", 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, cartID))

	n, err := svc.ItemCount(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)

	c, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.NotEqual(t, cartID, c.ID)
	assert.Empty(t, c.Lines)

	assert.ErrorIs(t, svc.Clear(ctx, cartID), ErrCartNotFound)
}

func TestItemCount_NoCartDoesNotCreate(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	n, err := svc.ItemCount(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, repo.creats)
}

func TestGetOrCreate_ConcurrentCallsShareOneCart(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := svc.GetOrCreate(context.Background(), "u1")
			if err == nil {
				ids[i] = c.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 1, repo.creats)
}

func TestView_PricesFromCatalog(t *testing.T) {
	svc := newTestService(newMemRepo())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "", "7", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", "", "8", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", "", "gone", 4)
	require.NoError(t, err)

	dto, err := svc.View(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, dto.Items, 3)
	assert.True(t, dto.TotalAmount.Equal(decimal.NewFromInt(25)), dto.TotalAmount.String())
	assert.Equal(t, 7, dto.ItemCount)

	byID := map[string]ItemDTO{}
	for _, it := range dto.Items {
		byID[it.ProductID] = it
	}
	assert.Equal(t, "Lamp", byID["7"].ProductName)
	assert.True(t, byID["7"].TotalPrice.Equal(decimal.NewFromInt(20)))
	assert.False(t, byID["gone"].Available)
	assert.True(t, byID["gone"].TotalPrice.IsZero())
}

func TestView_CreatesEmptyCart(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	dto, err := svc.View(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, dto.CartID)
	assert.Empty(t, dto.Items)
	assert.Equal(t, 1, repo.creats)
}

func TestPersistenceErrorsAreClassified(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("connection refused")
	svc := newTestService(repo)

	_, err := svc.AddItem(context.Background(), "u1", "", "7", 1)
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}

type recordingCache struct {
	NopCache
	deleted []string
}

func (r *recordingCache) Delete(_ context.Context, userID string) error {
	r.deleted = append(r.deleted, userID)
	return nil
}

func TestMutationsInvalidateCache(t *testing.T) {
	cache := &recordingCache{}
	svc := NewService(newMemRepo(), stubCatalog{}, cache, nil)
	ctx := context.Background()

	cartID, err := svc.AddItem(ctx, "u1", "", "7", 1)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveItem(ctx, cartID, "7", 1))
	require.NoError(t, svc.Clear(ctx, cartID))

	assert.Equal(t, []string{"u1", "u1", "u1"}, cache.deleted)
}
