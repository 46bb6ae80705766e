package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada (compra, devolución)
	MovementTypeOut        = "out"        // salida (venta)
	MovementTypeAdjustment = "adjustment" // ajuste a un nivel absoluto
	MovementTypeTransfer   = "transfer"   // entre sucursales
)

// Tipos de referencia del movimiento (documento que lo originó).
const (
	ReferenceTypeSale       = "sale"
	ReferenceTypePurchase   = "purchase"
	ReferenceTypeAdjustment = "adjustment"
)

// StockMovement es el registro inmutable de un cambio de inventario.
// Invariante: NewStock == PreviousStock + delta firmado según Type.
// Para in/out Quantity es la magnitud positiva; para adjustment es el
// delta (NewStock - PreviousStock) y puede ser negativo.
// Nunca se actualiza ni se borra después de creado.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string
	Quantity      int
	PreviousStock int
	NewStock      int
	ReferenceType string // sale, purchase, adjustment
	ReferenceID   string // ID del documento referenciado (vacío en ajustes manuales)
	BatchNumber   string
	ExpiryDate    *time.Time
	Notes         string
	UserID        string
	CreatedAt     time.Time
}
