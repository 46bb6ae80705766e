package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de asiento del libro de caja.
const (
	CashEntryTypeIncome  = "income"
	CashEntryTypeExpense = "expense"
)

// CashEntry es un asiento del libro de caja: ledger independiente de
// ingresos y egresos, solo append, sin relación con ventas ni inventario.
type CashEntry struct {
	ID              string
	TransactionDate time.Time
	Description     string
	Type            string // income, expense
	Amount          decimal.Decimal
	Category        string
	ReferenceNumber string
	PaymentMethod   string
	Notes           string
	UserID          string
	CreatedAt       time.Time
}
