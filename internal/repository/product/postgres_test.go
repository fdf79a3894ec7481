package product

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"fakestore-sync/internal/domain"
	"fakestore-sync/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE products`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func jacket() domain.Product {
	return domain.Product{
		ID:          uuid.NewString(),
		Name:        "Red Jacket",
		Category:    "Clothing",
		Description: "Red jacket with pocket",
		Price:       decimal.RequireFromString("250.00"),
		Image:       "http://images/jacket.png",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, jacket())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.UpdatedAt != nil {
		t.Fatalf("fresh record must not carry updated_at, got %v", created.UpdatedAt)
	}

	byName, err := repo.GetByName(ctx, "Red Jacket")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName.ID != created.ID || !byName.Price.Equal(created.Price) {
		t.Fatalf("unexpected record %+v", byName)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Name != "Red Jacket" {
		t.Fatalf("unexpected record %+v", byID)
	}
}

func TestPostgres_CreateDuplicateNameConflicts(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if _, err := repo.Create(ctx, jacket()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	second := jacket()
	second.ID = uuid.NewString()
	if _, err := repo.Create(ctx, second); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected a single record, got %d", len(list))
	}
}

func TestPostgres_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, jacket())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	created.Description = "Updated description"
	created.Price = decimal.RequireFromString("199.90")
	created.UpdatedAt = &now
	updated, err := repo.Update(ctx, *created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Description != "Updated description" || !updated.Price.Equal(created.Price) {
		t.Fatalf("unexpected record %+v", updated)
	}
	if updated.UpdatedAt == nil {
		t.Fatalf("expected updated_at set")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at mutated: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}

	exists, err := repo.ExistsByName(ctx, "Red Jacket")
	if err != nil || !exists {
		t.Fatalf("ExistsByName: exists=%v err=%v", exists, err)
	}

	if err := repo.DeleteByName(ctx, "Red Jacket"); err != nil {
		t.Fatalf("DeleteByName: %v", err)
	}
	if err := repo.DeleteByName(ctx, "Red Jacket"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
