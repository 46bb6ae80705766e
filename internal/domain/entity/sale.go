package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una venta (derivados de paid vs total).
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
	PaymentStatusUnpaid  = "unpaid"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCredit   = "credit"
)

// Tipos de venta.
const (
	SaleTypeGeneral      = "general"
	SaleTypePrescription = "prescription"
)

// Sale es la cabecera de una venta. Se crea de forma atómica junto con sus
// ítems y los movimientos de stock resultantes, o no se crea en absoluto.
type Sale struct {
	ID             string
	InvoiceNumber  string // único, formato INV-YYYYMMDD-NNNN
	CustomerID     string // vacío para venta de mostrador sin cliente
	UserID         string
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	BalanceAmount  decimal.Decimal
	PaymentStatus  string // paid, partial, unpaid
	PaymentMethod  string // cash, card, transfer, credit
	SaleType       string // general, prescription
	IsReturn       bool
	OriginalSaleID string // venta original si IsReturn
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaleItem es una línea de venta con el precio unitario congelado al momento
// de la transacción.
type SaleItem struct {
	ID             string
	SaleID         string
	ProductID      string
	Quantity       int
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalPrice     decimal.Decimal
}

// ValidPaymentMethod valida el método de pago de una venta.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCredit:
		return true
	}
	return false
}
