package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/valora-ecom/internal/apperr"
	"github.com/MikeMC777/valora-ecom/internal/auth"
	"github.com/MikeMC777/valora-ecom/internal/catalog"
)

type memCart struct {
	userID string
	active bool
	lines  []memCartLine
}

type memCartLine struct {
	CartLine
	active bool
}

// memRepo keeps carts and orders in maps and restores a snapshot when a
// checkout callback fails, like a rolled back transaction.
type memRepo struct {
	mu        sync.Mutex
	carts     map[string]*memCart
	orders    map[string]Order
	lines     map[string][]Line
	failWrite error
}

func newMemRepo() *memRepo {
	return &memRepo{carts: map[string]*memCart{}, orders: map[string]Order{}, lines: map[string][]Line{}}
}

func (m *memRepo) addCart(id, userID string, lines ...CartLine) {
	c := &memCart{userID: userID, active: true}
	for _, l := range lines {
		c.lines = append(c.lines, memCartLine{CartLine: l, active: true})
	}
	m.carts[id] = c
}

func (m *memRepo) activeLines(cartID string) []CartLine {
	var out []CartLine
	for _, l := range m.carts[cartID].lines {
		if l.active {
			out = append(out, l.CartLine)
		}
	}
	return out
}

type memSnapshot struct {
	carts  map[string]memCart
	orders map[string]Order
	lines  map[string][]Line
}

func (m *memRepo) snapshot() memSnapshot {
	s := memSnapshot{carts: map[string]memCart{}, orders: map[string]Order{}, lines: map[string][]Line{}}
	for k, c := range m.carts {
		cp := *c
		cp.lines = append([]memCartLine(nil), c.lines...)
		s.carts[k] = cp
	}
	for k, o := range m.orders {
		s.orders[k] = o
	}
	for k, l := range m.lines {
		s.lines[k] = append([]Line(nil), l...)
	}
	return s
}

func (m *memRepo) restore(s memSnapshot) {
	m.carts = map[string]*memCart{}
	for k, c := range s.carts {
		c := c
		m.carts[k] = &c
	}
	m.orders, m.lines = s.orders, s.lines
}

func (m *memRepo) Checkout(ctx context.Context, fn func(ctx context.Context, tx CheckoutTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.snapshot()
	if err := fn(ctx, memTx{m}); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

type memTx struct{ m *memRepo }

func (t memTx) ActiveCartID(_ context.Context, userID string) (string, error) {
	for id, c := range t.m.carts {
		if c.active && c.userID == userID {
			return id, nil
		}
	}
	return "", ErrCartNotFound
}

func (t memTx) LockCart(_ context.Context, cartID, userID string) ([]CartLine, error) {
	c, ok := t.m.carts[cartID]
	if !ok || !c.active || c.userID != userID {
		return nil, ErrCartNotFound
	}
	return t.m.activeLines(cartID), nil
}

func (t memTx) Insert(_ context.Context, o *Order, lines []Line) error {
	t.m.orders[o.ID] = *o
	t.m.lines[o.ID] = append([]Line(nil), lines...)
	return nil
}

func (t memTx) ConsumeLines(_ context.Context, cartID string, lineIDs []string) error {
	if t.m.failWrite != nil {
		return t.m.failWrite
	}
	c := t.m.carts[cartID]
	for i := range c.lines {
		for _, id := range lineIDs {
			if c.lines[i].ID == id {
				c.lines[i].active = false
			}
		}
	}
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Order, []Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil, ErrOrderNotFound
	}
	return &o, m.lines[id], nil
}

func (m *memRepo) list(match func(Order) bool) []Order {
	out := []Order{}
	for _, o := range m.orders {
		if match(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out
}

func (m *memRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(o Order) bool { return o.UserID == userID }), nil
}

func (m *memRepo) ListAll(_ context.Context, _, _ int) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(Order) bool { return true }), nil
}

func (m *memRepo) GetLines(_ context.Context, ids []string) (map[string][]Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string][]Line{}
	for _, id := range ids {
		out[id] = m.lines[id]
	}
	return out, nil
}

func (m *memRepo) Transition(_ context.Context, id string, fn func(*Order) error) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if err := fn(&o); err != nil {
		return nil, err
	}
	m.orders[id] = o
	return &o, nil
}

func (m *memRepo) HasPurchased(_ context.Context, userID, productID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		for _, l := range m.lines[id] {
			if l.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

type stubCatalog map[string]catalog.Product

func (s stubCatalog) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := s[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

type stubUsers map[string]string

func (s stubUsers) DisplayName(_ context.Context, id string) (string, error) {
	name, ok := s[id]
	if !ok {
		return "", errors.New("no such user")
	}
	return name, nil
}

type recordingCarts struct{ users []string }

func (r *recordingCarts) Invalidate(_ context.Context, userID string) { r.users = append(r.users, userID) }

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	svc     *Service
	repo    *memRepo
	catalog stubCatalog
	carts   *recordingCarts
}

func newFixture() *fixture {
	f := &fixture{
		repo: newMemRepo(),
		catalog: stubCatalog{
			"7": {ID: "7", Name: "Mug", Price: price("10")},
			"8": {ID: "8", Name: "Pen", Price: price("5")},
		},
		carts: &recordingCarts{},
	}
	f.svc = NewService(f.repo, f.catalog, stubUsers{"u1": "ana"}, f.carts, nil)
	f.svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return f
}

func checkout(userID, cartID string) CheckoutRequest {
	return CheckoutRequest{
		UserID:          userID,
		CartID:          cartID,
		ShippingAddress: "Calle 10 # 5-20",
		City:            "Medellín",
		PostalCode:      "050021",
		Country:         "Colombia",
		PhoneNumber:     "+57 300 000 0000",
	}
}

func TestCreateFromCart_SnapshotsCart(t *testing.T) {
	f := newFixture()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "7", Quantity: 2}, CartLine{ID: "l2", ProductID: "8", Quantity: 1})

	o, lines, err := f.svc.CreateFromCart(context.Background(), checkout("u1", "c1"))
	require.NoError(t, err)

	assert.True(t, price("25").Equal(o.Total), o.Total.String())
	assert.Equal(t, StatusPending, o.Status)
	assert.Regexp(t, regexp.MustCompile(`^ORD-20260314-[0-9A-F]{8}$`), o.OrderNumber)
	require.Len(t, lines, 2)
	assert.Equal(t, "Mug", lines[0].ProductName)
	assert.True(t, price("20").Equal(lines[0].LineTotal))
	assert.True(t, price("5").Equal(lines[1].LineTotal))

	assert.Empty(t, f.repo.activeLines("c1"))
	assert.True(t, f.repo.carts["c1"].active, "cart row survives checkout")
	assert.Equal(t, []string{"u1"}, f.carts.users)
}

func TestCreateFromCart_TotalIsSumOfLines(t *testing.T) {
	f := newFixture()
	f.catalog["9"] = catalog.Product{ID: "9", Name: "Sticker", Price: price("0.35")}
	f.repo.addCart("c1", "u1",
		CartLine{ID: "l1", ProductID: "7", Quantity: 3},
		CartLine{ID: "l2", ProductID: "9", Quantity: 7},
	)

	o, lines, err := f.svc.CreateFromCart(context.Background(), checkout("u1", "c1"))
	require.NoError(t, err)

	sum := decimal.Zero
	for _, l := range lines {
		assert.True(t, l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Equal(l.LineTotal))
		sum = sum.Add(l.LineTotal)
	}
	assert.True(t, sum.Equal(o.Total))
	assert.True(t, price("32.45").Equal(o.Total), o.Total.String())
}

func TestCreateFromCart_PriceIsSnapshotted(t *testing.T) {
	f := newFixture()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "7", Quantity: 1})

	o, _, err := f.svc.CreateFromCart(context.Background(), checkout("u1", "c1"))
	require.NoError(t, err)

	f.catalog["7"] = catalog.Product{ID: "7", Name: "Mug v2", Price: price("99")}

	got, err := f.svc.Get(context.Background(), o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, price("10").Equal(got.Items[0].UnitPrice))
	assert.Equal(t, "Mug", got.Items[0].ProductName)
	assert.True(t, price("10").Equal(got.Total))

	total, err := f.svc.Total(context.Background(), o.ID)
	require.NoError(t, err)
	assert.True(t, price("10").Equal(total))
}

func TestCreateFromCart_RollsBackOnFailure(t *testing.T) {
	f := newFixture()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "7", Quantity: 2})
	f.repo.failWrite = errors.New("connection reset")

	_, _, err := f.svc.CreateFromCart(context.Background(), checkout("u1", "c1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrPersistence)

	assert.Empty(t, f.repo.orders)
	assert.Len(t, f.repo.activeLines("c1"), 1)
	assert.Empty(t, f.carts.users)
}

func TestCreateFromCart_EmptyOrMissingCart(t *testing.T) {
	f := newFixture()
	f.repo.addCart("c1", "u1")

	_, _, err := f.svc.CreateFromCart(context.Background(), checkout("u1", "c1"))
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, _, err = f.svc.CreateFromCart(context.Background(), checkout("u1", "nope"))
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, _, err = f.svc.CreateFromCart(context.Background(), checkout("u2", ""))
	assert.ErrorIs(t, err, ErrCartNotFound)

	assert.Empty(t, f.repo.orders)
}

func TestCreateFromCart_ForeignCartIsNotFound(t *testing.T) {
	f := newFixture()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "7", Quantity: 1})

	_, _, err := f.svc.CreateFromCart(context.Background(), checkout("intruder", "c1"))
	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Len(t, f.repo.activeLines("c1"), 1)
}

func TestCreateFromCart_UsesActiveCartWhenNoneGiven(t *testing.T) {
	f := newFixture()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "8", Quantity: 4})

	o, _, err := f.svc.CreateFromCart(context.Background(), checkout("u1", ""))
	require.NoError(t, err)
	assert.True(t, price("20").Equal(o.Total))
}

func TestCreateFromCart_MissingProductAborts(t *testing.T) {
	f := newFixture()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "7", Quantity: 1}, CartLine{ID: "l2", ProductID: "gone", Quantity: 1})

	_, _, err := f.svc.CreateFromCart(context.Background(), checkout("u1", "c1"))
	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.Empty(t, f.repo.orders)
	assert.Len(t, f.repo.activeLines("c1"), 2)
}

func TestCreateFromCart_Validation(t *testing.T) {
	f := newFixture()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "7", Quantity: 1})

	cases := map[string]func(*CheckoutRequest){
		"missing address": func(r *CheckoutRequest) { r.ShippingAddress = " " },
		"long city":       func(r *CheckoutRequest) { r.City = string(make([]byte, 101)) },
		"bad phone":       func(r *CheckoutRequest) { r.PhoneNumber = "call me" },
		"long notes":      func(r *CheckoutRequest) { r.Notes = fmt.Sprintf("%501s", "x") },
		"no user":         func(r *CheckoutRequest) { r.UserID = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := checkout("u1", "c1")
			mutate(&req)
			_, _, err := f.svc.CreateFromCart(context.Background(), req)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
	assert.Empty(t, f.repo.orders)
}

func TestCheckoutScenario_ProductSeven(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "7", Quantity: 2})

	o, _, err := f.svc.CreateFromCart(ctx, checkout("u1", "c1"))
	require.NoError(t, err)
	assert.True(t, price("20").Equal(o.Total))

	ok, err := f.svc.HasPurchased(ctx, "u1", "7")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.HasPurchased(ctx, "u1", "8")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.Cancel(ctx, o.ID, auth.Identity{UserID: "u1"})
	require.NoError(t, err)

	ok, err = f.svc.HasPurchased(ctx, "u1", "7")
	require.NoError(t, err)
	assert.True(t, ok, "a cancelled order still counts as a purchase")
}

func TestUpdateStatus_Lifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "7", Quantity: 1})
	o, _, err := f.svc.CreateFromCart(ctx, checkout("u1", "c1"))
	require.NoError(t, err)

	shipped := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	delivered := shipped.Add(24 * time.Hour)

	_, err = f.svc.UpdateStatus(ctx, o.ID, StatusUpdate{Status: StatusDelivered, DeliveredAt: &delivered})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.UpdateStatus(ctx, o.ID, StatusUpdate{Status: StatusProcessing})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, o.ID, StatusUpdate{Status: StatusShipped, ShippedAt: &shipped})
	require.NoError(t, err)
	got, err := f.svc.UpdateStatus(ctx, o.ID, StatusUpdate{Status: StatusDelivered, DeliveredAt: &delivered, Notes: "signed by porter"})
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, got.Status)
	assert.Equal(t, "signed by porter", got.Notes)

	_, err = f.svc.Cancel(ctx, o.ID, auth.Identity{UserID: "u1"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.UpdateStatus(ctx, "missing", StatusUpdate{Status: StatusProcessing})
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = f.svc.UpdateStatus(ctx, o.ID, StatusUpdate{Status: "Teleported"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCancel_Ownership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.addCart("c1", "u1", CartLine{ID: "l1", ProductID: "7", Quantity: 1})
	o, _, err := f.svc.CreateFromCart(ctx, checkout("u1", "c1"))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, o.ID, auth.Identity{UserID: "u2", Roles: []string{auth.RoleCustomer}})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NotErrorIs(t, err, apperr.ErrForbidden)
	assert.Equal(t, StatusPending, f.repo.orders[o.ID].Status)

	got, err := f.svc.Cancel(ctx, o.ID, auth.Identity{UserID: "admin", Roles: []string{auth.RoleAdmin}})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, cancelNote, got.Notes)
}

func TestListByUser_NewestFirstWithNames(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		f.svc.now = func() time.Time { return day.AddDate(0, 0, i) }
		f.repo.addCart(fmt.Sprintf("c%d", i), "u1", CartLine{ID: fmt.Sprintf("l%d", i), ProductID: "8", Quantity: i + 1})
		_, _, err := f.svc.CreateFromCart(ctx, checkout("u1", fmt.Sprintf("c%d", i)))
		require.NoError(t, err)
		f.repo.carts[fmt.Sprintf("c%d", i)].active = false
	}

	got, err := f.svc.ListByUser(ctx, "u1", 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].OrderDate.After(got[i].OrderDate))
	}
	assert.Equal(t, "ana", got[0].UserName)
	assert.Equal(t, 3, got[0].Items[0].Quantity)

	all, err := f.svc.ListAll(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := f.svc.ListByUser(ctx, "u9", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGet_UnknownUserHasEmptyName(t *testing.T) {
	f := newFixture()
	f.repo.addCart("c1", "u7", CartLine{ID: "l1", ProductID: "7", Quantity: 1})
	o, _, err := f.svc.CreateFromCart(context.Background(), checkout("u7", "c1"))
	require.NoError(t, err)

	got, err := f.svc.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.UserName)
	assert.Equal(t, "u7", got.UserID)

	_, err = f.svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
