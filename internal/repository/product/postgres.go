package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"fakestore-sync/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, category, description, price, image, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.Image, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the product unless another row already holds its name. The
// insert and the name check are a single statement, so two concurrent
// creates for the same name cannot both succeed.
func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, category, description, price, image, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (name) DO NOTHING
RETURNING ` + productColumns
	created, err := scanProduct(r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Category, p.Description, p.Price, p.Image, p.CreatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("product repo: create conflict", zap.String("name", p.Name))
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("product repo: create", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: created", zap.String("name", created.Name), zap.String("id", created.ID))
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET description = $2, price = $3, image = $4, updated_at = $5
WHERE id = $1
RETURNING ` + productColumns
	updated, err := scanProduct(r.pool.QueryRow(ctx, q, p.ID, p.Description, p.Price, p.Image, p.UpdatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: update", zap.String("id", p.ID), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("product repo: updated", zap.String("name", updated.Name), zap.String("id", updated.ID))
	return updated, nil
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get by name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product repo: get by id", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY created_at`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("product repo: list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.Image, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product repo: list rows", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, name).Scan(&exists); err != nil {
		r.logger.Error("product repo: exists", zap.String("name", name), zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) DeleteByName(ctx context.Context, name string) error {
	const q = `DELETE FROM products WHERE name = $1`
	tag, err := r.pool.Exec(ctx, q, name)
	if err != nil {
		r.logger.Error("product repo: delete", zap.String("name", name), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Debug("product repo: deleted", zap.String("name", name))
	return nil
}
