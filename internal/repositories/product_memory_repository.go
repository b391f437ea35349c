package repositories

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
	txMu     sync.Mutex
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// FindAll returns all products ordered by ID.
func (r *InMemoryProductRepository) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(func(models.Product) bool { return true }), nil
}

// FindByID returns a product by its ID, or nil when absent.
func (r *InMemoryProductRepository) FindByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	product = cloneProduct(product)
	return &product, nil
}

// ExistsByID reports whether a product with the given ID exists.
func (r *InMemoryProductRepository) ExistsByID(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.products[id]
	return ok, nil
}

// Save inserts the product when it has no ID, otherwise overwrites it.
func (r *InMemoryProductRepository) Save(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

// DeleteByID removes a product by its ID.
func (r *InMemoryProductRepository) DeleteByID(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

// SearchProducts filters products by case-insensitive name substring and
// an optional price range. Products without a price never match a bound.
func (r *InMemoryProductRepository) SearchProducts(_ context.Context, name string, minPrice, maxPrice *float64) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	return r.sortedLocked(func(p models.Product) bool {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			return false
		}
		if minPrice != nil && (!p.Price.Valid || p.Price.Decimal.LessThan(decimal.NewFromFloat(*minPrice))) {
			return false
		}
		if maxPrice != nil && (!p.Price.Valid || p.Price.Decimal.GreaterThan(decimal.NewFromFloat(*maxPrice))) {
			return false
		}
		return true
	}), nil
}

// WithinTransaction serializes fn against other transactions and restores
// the previous state when fn fails.
func (r *InMemoryProductRepository) WithinTransaction(_ context.Context, fn func(repo ProductRepository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.RLock()
	snapshot := maps.Clone(r.products)
	nextID := r.nextID
	r.mu.RUnlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.products = snapshot
		r.nextID = nextID
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *InMemoryProductRepository) sortedLocked(keep func(models.Product) bool) []models.Product {
	ids := slices.Sorted(maps.Keys(r.products))
	productList := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p := r.products[id]; keep(p) {
			productList = append(productList, cloneProduct(p))
		}
	}
	return productList
}

// cloneProduct detaches the pointer fields so stored rows are never shared
// with callers.
func cloneProduct(p models.Product) models.Product {
	if p.Quantity != nil {
		q := *p.Quantity
		p.Quantity = &q
	}
	return p
}
