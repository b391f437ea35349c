package repositories

import (
	"context"

	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// FindByID returns a nil product and a nil error when no row matches.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Save(ctx context.Context, product *models.Product) error
	DeleteByID(ctx context.Context, id uint) error
	SearchProducts(ctx context.Context, name string, minPrice, maxPrice *float64) ([]models.Product, error)

	// WithinTransaction runs fn against a repository bound to a single
	// transaction. The transaction commits when fn returns nil.
	WithinTransaction(ctx context.Context, fn func(repo ProductRepository) error) error
}
