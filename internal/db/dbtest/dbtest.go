// Package dbtest starts a throwaway Postgres for repository tests.
package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MikeMC777/valora-ecom/internal/catalog"
	"github.com/MikeMC777/valora-ecom/internal/db"
)

// Start runs postgres in a container, applies the migrations and returns a
// pool on it. The test is skipped under -short or without a docker provider.
func Start(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("valoradb"),
		postgres.WithUsername("valora"),
		postgres.WithPassword("valora"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := pg.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	pool, err := db.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(pool); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return pool
}

// Catalog resolves products straight from the products table, standing in
// for product-service.
type Catalog struct{ Repo *catalog.PGRepo }

func NewCatalog(pool *pgxpool.Pool) Catalog { return Catalog{Repo: catalog.NewPGRepo(pool)} }

func (c Catalog) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return c.Repo.GetByID(ctx, id)
}

// SeedProduct inserts an active product with the given price.
func (c Catalog) SeedProduct(t *testing.T, id, name, price string) {
	t.Helper()
	p := &catalog.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), Stock: 10}
	if err := c.Repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seed product %s: %v", id, err)
	}
}
