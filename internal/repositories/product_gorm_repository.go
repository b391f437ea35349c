package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/models"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// FindAll retrieves all products ordered by ID.
func (r *GORMProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID.
func (r *GORMProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// ExistsByID reports whether a product with the given ID exists.
func (r *GORMProductRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	return count > 0, nil
}

// Save inserts the product when it has no ID, otherwise overwrites the row.
func (r *GORMProductRepository) Save(ctx context.Context, product *models.Product) error {
	// Save writes every column, zero values included, and inserts when ID is 0.
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// DeleteByID deletes a product by its ID.
func (r *GORMProductRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// SearchProducts returns products whose name contains name, ignoring case,
// with price inside the optional [minPrice, maxPrice] range.
func (r *GORMProductRepository) SearchProducts(ctx context.Context, name string, minPrice, maxPrice *float64) ([]models.Product, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"
	query := r.db.WithContext(ctx).Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	if minPrice != nil {
		query = query.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		query = query.Where("price <= ?", *maxPrice)
	}

	var products []models.Product
	if err := query.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// WithinTransaction runs fn inside a database transaction.
func (r *GORMProductRepository) WithinTransaction(ctx context.Context, fn func(repo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMProductRepository(tx))
	})
}
