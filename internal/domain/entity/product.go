package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la farmacia.
// StockQuantity es el total autoritativo; solo el motor de movimientos lo muta,
// siempre en pareja con un StockMovement dentro de la misma transacción.
type Product struct {
	ID                   string
	SKU                  string // código único
	Barcode              string
	CategoryID           string
	Name                 string
	Description          string
	BasePrice            decimal.Decimal // precio de compra
	SellingPrice         decimal.Decimal // precio de venta al público
	MarkupPercentage     decimal.Decimal
	StockQuantity        int
	MinimumStock         int
	Unit                 string // pcs, caja, frasco, etc.
	RequiresPrescription bool
	ExpiryDate           *time.Time
	BatchNumber          string
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsLowStock indica si el producto está en o por debajo de su stock mínimo.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinimumStock
}
