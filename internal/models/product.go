package models

import "github.com/shopspring/decimal"

// Product represents a product row in the catalog.
type Product struct {
	ID          uint                `gorm:"primaryKey;autoIncrement"`
	Name        string              `gorm:"type:varchar(255);not null"`
	Description string              `gorm:"type:text"`
	Country     string              `gorm:"type:varchar(100)"`
	Price       decimal.NullDecimal `gorm:"type:numeric;index"`
	Quantity    *int
}

func (p *Product) TableName() string {
	return "products"
}
