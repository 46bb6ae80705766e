package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye los
// repos del motor de ventas: movimientos, productos, clientes, ventas y el
// consecutivo de facturas.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		counterRepo repository.InvoiceCounterRepository,
	) error) error
}

// StockLedger integra ventas con inventario. RegisterSaleOutInTx ejecuta la
// salida usando los repositorios del caller (misma transacción); si retorna
// error (ej: ErrInsufficientStock) el caller debe hacer rollback.
type StockLedger interface {
	RegisterSaleOutInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		productID string,
		quantity int,
		userID, saleID string,
		now time.Time,
	) (*entity.StockMovement, error)
}

// ReceiptLine línea del recibo para el generador PDF.
type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// PharmacyInfo datos del encabezado del recibo.
type PharmacyInfo struct {
	Name    string
	Address string
	Phone   string
}

// ReceiptPDFGenerator genera la representación PDF del recibo de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, customerName string, lines []ReceiptLine, pharmacy PharmacyInfo) ([]byte, error)
}
