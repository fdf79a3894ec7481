package product

import (
	"context"

	"fakestore-sync/internal/domain"
)

// Repository is the persistence gateway for products. Create is an atomic
// insert-if-absent keyed on name: it returns domain.ErrAlreadyExists instead
// of inserting a second product with the same name, so callers never need a
// separate existence check before a write.
type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	DeleteByName(ctx context.Context, name string) error
}
