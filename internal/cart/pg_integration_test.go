package cart_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/valora-ecom/internal/cart"
	"github.com/MikeMC777/valora-ecom/internal/db/dbtest"
)

func TestPGRepo(t *testing.T) {
	pool := dbtest.Start(t)
	repo := cart.NewPGRepo(pool)
	ctx := context.Background()

	t.Run("one active cart per user under concurrent creation", func(t *testing.T) {
		const n = 8
		ids := make([]string, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c, err := repo.GetOrCreate(ctx, "race-user")
				if assert.NoError(t, err) {
					ids[i] = c.ID
				}
			}(i)
		}
		wg.Wait()
		for _, id := range ids {
			assert.Equal(t, ids[0], id)
		}
	})

	t.Run("add accumulates and remove tombstones at zero", func(t *testing.T) {
		c, err := repo.GetOrCreate(ctx, "u-lines")
		require.NoError(t, err)

		require.NoError(t, repo.AddLine(ctx, c.ID, "7", 2))
		require.NoError(t, repo.AddLine(ctx, c.ID, "7", 3))
		require.NoError(t, repo.AddLine(ctx, c.ID, "8", 1))

		got, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, got.Lines, 2)
		assert.Equal(t, 6, got.ItemCount())

		require.NoError(t, repo.RemoveLine(ctx, c.ID, "7", 4))
		require.NoError(t, repo.RemoveLine(ctx, c.ID, "8", cart.RemoveAll))

		got, err = repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, "7", got.Lines[0].ProductID)
		assert.Equal(t, 1, got.Lines[0].Quantity)

		// a removed product comes back as a fresh line
		require.NoError(t, repo.AddLine(ctx, c.ID, "8", 2))
		got, err = repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.ItemCount())
	})

	t.Run("tombstoned cart is replaced on next use", func(t *testing.T) {
		c, err := repo.GetOrCreate(ctx, "u-clear")
		require.NoError(t, err)
		require.NoError(t, repo.AddLine(ctx, c.ID, "7", 1))
		require.NoError(t, repo.Tombstone(ctx, c.ID))

		_, err = repo.FindByID(ctx, c.ID)
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
		assert.ErrorIs(t, repo.AddLine(ctx, c.ID, "7", 1), cart.ErrCartNotFound)

		fresh, err := repo.GetOrCreate(ctx, "u-clear")
		require.NoError(t, err)
		assert.NotEqual(t, c.ID, fresh.ID)
		assert.Empty(t, fresh.Lines)
	})
}
