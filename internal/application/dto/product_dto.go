package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU                  string          `json:"sku"`
	Barcode              string          `json:"barcode,omitempty"`
	CategoryID           string          `json:"category_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	BasePrice            decimal.Decimal `json:"base_price"`
	SellingPrice         decimal.Decimal `json:"selling_price"`
	MinimumStock         int             `json:"minimum_stock"`
	Unit                 string          `json:"unit,omitempty"`
	RequiresPrescription bool            `json:"requires_prescription"`
	ExpiryDate           string          `json:"expiry_date,omitempty"` // YYYY-MM-DD
	BatchNumber          string          `json:"batch_number,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// StockQuantity no es editable por esta vía: solo el motor de movimientos lo muta.
type UpdateProductRequest struct {
	Name         string           `json:"name,omitempty"`
	Description  string           `json:"description,omitempty"`
	BasePrice    *decimal.Decimal `json:"base_price,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	MinimumStock *int             `json:"minimum_stock,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID                   string          `json:"id"`
	SKU                  string          `json:"sku"`
	Barcode              string          `json:"barcode,omitempty"`
	CategoryID           string          `json:"category_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	BasePrice            decimal.Decimal `json:"base_price"`
	SellingPrice         decimal.Decimal `json:"selling_price"`
	StockQuantity        int             `json:"stock_quantity"`
	MinimumStock         int             `json:"minimum_stock"`
	Unit                 string          `json:"unit"`
	RequiresPrescription bool            `json:"requires_prescription"`
	IsActive             bool            `json:"is_active"`
	LowStock             bool            `json:"low_stock"`
	CreatedAt            time.Time       `json:"created_at"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse categoría de productos.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
}
