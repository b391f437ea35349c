package mapper

import (
	"catalog/internal/dto"
	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// ToDTO converts a product entity into its transfer representation.
func ToDTO(product models.Product) dto.ProductDTO {
	return dto.ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Country:     product.Country,
		Price:       priceToFloat(product.Price),
		Quantity:    copyInt(product.Quantity),
	}
}

// ToEntity converts a transfer object into a product entity.
func ToEntity(productDTO dto.ProductDTO) models.Product {
	return models.Product{
		ID:          productDTO.ID,
		Name:        productDTO.Name,
		Description: productDTO.Description,
		Country:     productDTO.Country,
		Price:       floatToPrice(productDTO.Price),
		Quantity:    copyInt(productDTO.Quantity),
	}
}

// ToDTOList converts products in order. The result is never nil.
func ToDTOList(products []models.Product) []dto.ProductDTO {
	dtos := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ToDTO(p))
	}
	return dtos
}

// ToEntityList converts transfer objects in order. The result is never nil.
func ToEntityList(productDTOs []dto.ProductDTO) []models.Product {
	products := make([]models.Product, 0, len(productDTOs))
	for _, d := range productDTOs {
		products = append(products, ToEntity(d))
	}
	return products
}

func priceToFloat(price decimal.NullDecimal) *float64 {
	if !price.Valid {
		return nil
	}
	f := price.Decimal.InexactFloat64()
	return &f
}

func floatToPrice(price *float64) decimal.NullDecimal {
	if price == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*price))
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
