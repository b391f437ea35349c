package handlers

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"catalog/internal/dto"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ProductService is the set of product operations the handler depends on.
type ProductService interface {
	GetAllProducts(ctx context.Context) ([]dto.ProductDTO, error)
	GetProductByID(ctx context.Context, id uint) (*dto.ProductDTO, error)
	SearchProducts(ctx context.Context, name string, minPrice, maxPrice *float64) ([]dto.ProductDTO, error)
	SaveProduct(ctx context.Context, productDTO dto.ProductDTO) (*dto.ProductDTO, error)
	UpdateProduct(ctx context.Context, id uint, productDTO dto.ProductDTO) (*dto.ProductDTO, error)
	DeleteProduct(ctx context.Context, id uint) error
}

var _ ProductService = (*services.ProductService)(nil)

// SearchParams holds the query parameters of GET /products/search.
type SearchParams struct {
	Name     *string  `query:"name" validate:"required"`
	MinPrice *float64 `query:"minPrice"`
	MaxPrice *float64 `query:"maxPrice"`
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  ProductService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service ProductService, logger zerolog.Logger) *ProductHandler {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("query"); name != "" {
			return name
		}
		return field.Name
	})

	return &ProductHandler{
		service:  service,
		validate: validate,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	// Registered before /:id so "search" is not parsed as an id.
	productRoutes.Get("/search", h.HandleSearchProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	h.logger.Info().Msg("received request to get all products")

	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	h.logger.Info().Uint("product_id", id).Msg("received request to get product")

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleSearchProducts searches products by name and optional price range.
func (h *ProductHandler) HandleSearchProducts(c *fiber.Ctx) error {
	params, err := h.parseSearchParams(c)
	if err != nil {
		return err
	}
	h.logger.Info().Str("name", *params.Name).Msg("received request to search products")

	products, err := h.service.SearchProducts(c.UserContext(), *params.Name, params.MinPrice, params.MaxPrice)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var productDTO dto.ProductDTO
	if err := c.BodyParser(&productDTO); err != nil {
		h.logger.Debug().Err(err).Msg("failed to parse request body")
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	h.logger.Info().Str("name", productDTO.Name).Msg("received request to add product")

	created, err := h.service.SaveProduct(c.UserContext(), productDTO)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var productDTO dto.ProductDTO
	if err := c.BodyParser(&productDTO); err != nil {
		h.logger.Debug().Err(err).Msg("failed to parse request body")
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	h.logger.Info().Uint("product_id", id).Msg("received request to update product")

	updated, err := h.service.UpdateProduct(c.UserContext(), id, productDTO)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	h.logger.Info().Uint("product_id", id).Msg("received request to delete product")

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) parseSearchParams(c *fiber.Ctx) (*SearchParams, error) {
	var params SearchParams

	// An empty name is valid and matches every product; only absence is rejected.
	if c.Context().QueryArgs().Has("name") {
		name := c.Query("name")
		params.Name = &name
	}

	var err error
	if params.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return nil, err
	}
	if params.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return nil, err
	}

	if err := h.validate.Struct(params); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, err
		}
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("Query parameter '%s' failed on the '%s' tag", e.Field(), e.Tag()))
		}
		return nil, fiber.NewError(fiber.StatusBadRequest, strings.Join(messages, "; "))
	}
	return &params, nil
}

func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid product id: %s", raw))
	}
	return uint(id), nil
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid value for query parameter '%s': %s", key, raw))
	}
	return &v, nil
}
