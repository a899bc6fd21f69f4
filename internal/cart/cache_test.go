package cart

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_RoundTripAndTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	_, err := cache.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	gen, err := cache.Generation(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, gen)

	in := &Cart{ID: "c1", UserID: "u1", Lines: []Line{{ID: "l1", CartID: "c1", ProductID: "7", Quantity: 3}}}
	require.NoError(t, cache.SetIfGeneration(ctx, "u1", in, gen))

	assert.True(t, mr.Exists("cart:u1"))
	ttl := mr.TTL("cart:u1")
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.Less(t, ttl, 20*time.Minute)

	out, err := cache.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, out.ItemCount())
	assert.Equal(t, "c1", out.ID)

	require.NoError(t, cache.Delete(ctx, "u1"))
	_, err = cache.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	gen, err = cache.Generation(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	assert.Greater(t, mr.TTL("cart:u1:gen"), 20*time.Minute)
}

func TestRedisCache_SetRefusedAfterInvalidation(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	gen, err := cache.Generation(ctx, "u1")
	require.NoError(t, err)

	require.NoError(t, cache.Delete(ctx, "u1"))

	stale := &Cart{ID: "c1", UserID: "u1", Lines: []Line{{ProductID: "7", Quantity: 3}}}
	require.NoError(t, cache.SetIfGeneration(ctx, "u1", stale, gen))
	assert.False(t, mr.Exists("cart:u1"))

	gen, err = cache.Generation(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, cache.SetIfGeneration(ctx, "u1", stale, gen))
	assert.True(t, mr.Exists("cart:u1"))
}

func TestRedisCache_CorruptPayload(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("cart:u1", "{not json"))

	_, err := cache.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

// gatedRepo parks the first armed FindByUser after it has read the cart,
// until release is closed.
type gatedRepo struct {
	*memRepo
	armed   atomic.Bool
	loaded  chan struct{}
	release chan struct{}
}

func newGatedRepo() *gatedRepo {
	return &gatedRepo{memRepo: newMemRepo(), loaded: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedRepo) FindByUser(ctx context.Context, userID string) (*Cart, error) {
	c, err := g.memRepo.FindByUser(ctx, userID)
	if !g.armed.CompareAndSwap(true, false) {
		return c, err
	}
	close(g.loaded)
	<-g.release
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return c, err
}

type countResult struct {
	n   int
	err error
}

func TestItemCount_LoadRacingClearDoesNotRepopulateCache(t *testing.T) {
	cache, mr := setupTestRedis(t)
	repo := newGatedRepo()
	svc := NewService(repo, stubCatalog{}, cache, nil)
	ctx := context.Background()

	cartID, err := svc.AddItem(ctx, "u1", "", "7", 3)
	require.NoError(t, err)

	repo.armed.Store(true)
	first := make(chan countResult, 1)
	go func() {
		n, err := svc.ItemCount(ctx, "u1")
		first <- countResult{n, err}
	}()
	<-repo.loaded

	require.NoError(t, svc.Clear(ctx, cartID))

	// a reader arriving after Clear does not join the parked load
	n, err := svc.ItemCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	close(repo.release)
	res := <-first
	require.NoError(t, res.err)
	assert.Equal(t, 3, res.n)
	assert.False(t, mr.Exists("cart:u1"))

	n, err = svc.ItemCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestItemCount_SharedLoadSurvivesCallerCancellation(t *testing.T) {
	cache, _ := setupTestRedis(t)
	repo := newGatedRepo()
	svc := NewService(repo, stubCatalog{}, cache, nil)

	_, err := svc.AddItem(context.Background(), "u1", "", "7", 3)
	require.NoError(t, err)

	repo.armed.Store(true)
	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan countResult, 1)
	go func() {
		n, err := svc.ItemCount(ctx, "u1")
		first <- countResult{n, err}
	}()
	<-repo.loaded

	cancel()
	close(repo.release)

	res := <-first
	require.NoError(t, res.err)
	assert.Equal(t, 3, res.n)

	n, err := svc.ItemCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
