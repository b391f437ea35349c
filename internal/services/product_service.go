package services

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/dto"
	"catalog/internal/mapper"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/rs/zerolog"
)

// ProductService handles business logic related to products. Every
// operation runs inside a single repository transaction.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With().Str("service", "product").Logger(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]dto.ProductDTO, error) {
	s.logger.Info().Msg("fetching all products")

	var products []models.Product
	err := s.repo.WithinTransaction(ctx, func(repo repositories.ProductRepository) error {
		var err error
		products, err = repo.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return mapper.ToDTOList(products), nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*dto.ProductDTO, error) {
	s.logger.Info().Uint("product_id", id).Msg("fetching product")

	var product *models.Product
	err := s.repo.WithinTransaction(ctx, func(repo repositories.ProductRepository) error {
		var err error
		product, err = repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return &NotFoundError{ID: id}
		}
		return nil
	})
	if err != nil {
		return nil, wrapUnlessNotFound(err, "failed to get product")
	}

	result := mapper.ToDTO(*product)
	return &result, nil
}

// SearchProducts returns products matching name with price inside the
// optional range.
func (s *ProductService) SearchProducts(ctx context.Context, name string, minPrice, maxPrice *float64) ([]dto.ProductDTO, error) {
	event := s.logger.Info().Str("name", name)
	if minPrice != nil {
		event = event.Float64("min_price", *minPrice)
	}
	if maxPrice != nil {
		event = event.Float64("max_price", *maxPrice)
	}
	event.Msg("searching products")

	var products []models.Product
	err := s.repo.WithinTransaction(ctx, func(repo repositories.ProductRepository) error {
		var err error
		products, err = repo.SearchProducts(ctx, name, minPrice, maxPrice)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return mapper.ToDTOList(products), nil
}

// SaveProduct creates a new product. Any ID on the input is ignored.
func (s *ProductService) SaveProduct(ctx context.Context, productDTO dto.ProductDTO) (*dto.ProductDTO, error) {
	s.logger.Info().Str("name", productDTO.Name).Msg("saving product")

	product := mapper.ToEntity(productDTO)
	product.ID = 0
	err := s.repo.WithinTransaction(ctx, func(repo repositories.ProductRepository) error {
		return repo.Save(ctx, &product)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	saved := mapper.ToDTO(product)
	s.publish(EventProductCreated, saved.ID, &saved)
	return &saved, nil
}

// UpdateProduct verifies the product exists and persists it again.
// The stored row is re-saved as found; fields of productDTO are not applied.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, productDTO dto.ProductDTO) (*dto.ProductDTO, error) {
	s.logger.Info().Uint("product_id", id).Str("name", productDTO.Name).Msg("updating product")

	var product *models.Product
	err := s.repo.WithinTransaction(ctx, func(repo repositories.ProductRepository) error {
		var err error
		product, err = repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return &NotFoundError{ID: id}
		}
		return repo.Save(ctx, product)
	})
	if err != nil {
		return nil, wrapUnlessNotFound(err, "failed to update product")
	}

	updated := mapper.ToDTO(*product)
	s.publish(EventProductUpdated, updated.ID, &updated)
	return &updated, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	s.logger.Info().Uint("product_id", id).Msg("deleting product")

	err := s.repo.WithinTransaction(ctx, func(repo repositories.ProductRepository) error {
		exists, err := repo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &NotFoundError{ID: id}
		}
		return repo.DeleteByID(ctx, id)
	})
	if err != nil {
		return wrapUnlessNotFound(err, "failed to delete product")
	}

	s.publish(EventProductDeleted, id, nil)
	return nil
}

func wrapUnlessNotFound(err error, msg string) error {
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}
