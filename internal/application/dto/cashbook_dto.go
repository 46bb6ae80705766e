package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashEntryRequest body para POST /api/cashbook.
type CashEntryRequest struct {
	TransactionDate string          `json:"transaction_date,omitempty"` // YYYY-MM-DD, hoy si vacío
	Description     string          `json:"description"`
	Type            string          `json:"type"` // income | expense
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	PaymentMethod   string          `json:"payment_method"`
	Notes           string          `json:"notes,omitempty"`
}

// CashEntryResponse asiento de caja registrado.
type CashEntryResponse struct {
	ID              string          `json:"id"`
	TransactionDate string          `json:"transaction_date"`
	Description     string          `json:"description"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	PaymentMethod   string          `json:"payment_method"`
	UserID          string          `json:"user_id"`
	CreatedAt       time.Time       `json:"created_at"`
}
