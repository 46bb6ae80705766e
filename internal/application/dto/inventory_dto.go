package dto

import "time"

// AdjustStockRequest body para POST /api/inventory/adjustments.
// type=in suma Quantity al stock; type=adjustment fija el stock en Quantity
// y el movimiento registrado guarda el delta.
type AdjustStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Type      string `json:"type"` // in | adjustment
	Notes     string `json:"notes,omitempty"`
}

// StockMovementResponse movimiento de stock registrado.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}
