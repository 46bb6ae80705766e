package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la farmacia.
// En la venta rápida se crea implícitamente por nombre si no existe.
type Customer struct {
	ID             string
	Name           string
	Phone          string
	Email          string
	Address        string
	CreditLimit    decimal.Decimal
	CurrentBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
