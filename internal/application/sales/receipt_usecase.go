package sales

import (
	"context"

	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// ReceiptUseCase arma los datos del recibo de una venta y delega el render al
// generador PDF.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    ReceiptPDFGenerator
	pharmacy     PharmacyInfo
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
	pharmacy PharmacyInfo,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
		pharmacy:     pharmacy,
	}
}

// GenerateReceipt genera el PDF del recibo de la venta indicada.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(saleID)
	if err != nil {
		return nil, err
	}

	customerName := "Venta de mostrador"
	if sale.CustomerID != "" {
		if customer, _ := uc.customerRepo.GetByID(sale.CustomerID); customer != nil {
			customerName = customer.Name
		}
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, item := range items {
		name := item.ProductID
		if product, _ := uc.productRepo.GetByID(item.ProductID); product != nil {
			name = product.Name
		}
		lines = append(lines, ReceiptLine{
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	return uc.generator.GenerateReceiptPDF(ctx, sale, customerName, lines, uc.pharmacy)
}
