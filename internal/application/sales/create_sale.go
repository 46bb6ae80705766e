package sales

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// CreateSaleUseCase procesa la venta rápida: valida el carrito, resuelve el
// cliente, precia contra el precio de venta vigente, numera la factura,
// descuenta el stock y persiste cabecera + ítems + movimientos como una sola
// transacción todo-o-nada.
type CreateSaleUseCase struct {
	txRunner     SaleTxRunner
	ledger       StockLedger
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
}

// NewCreateSaleUseCase construye el caso de uso. productRepo, saleRepo y
// customerRepo son instancias atadas al pool para lecturas fuera de transacción.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	ledger StockLedger,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
	}
}

// CreateSale ejecuta la venta. Cualquier fallo (producto inexistente, stock
// insuficiente, colisión de número) revierte todo: ni venta, ni ítems, ni
// movimientos, ni cliente nuevo.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if userID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validación de catálogo fuera de la tx (solo lectura); el precio
	// autoritativo se toma adentro, con la fila bloqueada.
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, domain.ErrNotFound
		}
	}

	// Las filas de producto se bloquean siempre en orden de ID, sin importar
	// el orden del carrito.
	lineItems := make([]dto.SaleItemRequest, len(in.Items))
	copy(lineItems, in.Items)
	sort.Slice(lineItems, func(i, j int) bool { return lineItems[i].ProductID < lineItems[j].ProductID })

	now := time.Now()
	saleID := uuid.New().String() // referencia de los movimientos de la venta
	var sale *entity.Sale
	var items []*entity.SaleItem
	productNames := make(map[string]string)
	customerName := normalizeName(in.CustomerName)
	var customerID string

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		counterRepo repository.InvoiceCounterRepository,
	) error {
		// 1) Resolver cliente por nombre exacto; crear si no existe.
		// La creación participa de la tx: un rollback no deja cliente huérfano.
		if customerName != "" {
			customer, err := customerRepo.GetByName(customerName)
			if err != nil {
				return err
			}
			if customer == nil {
				customer = &entity.Customer{
					ID:             uuid.New().String(),
					Name:           customerName,
					Phone:          "",
					CreditLimit:    decimal.Zero,
					CurrentBalance: decimal.Zero,
					IsActive:       true,
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := customerRepo.Create(customer); err != nil {
					return err
				}
			}
			customerID = customer.ID
		}

		// 2) Por cada ítem: bloquear la fila del producto, congelar el precio
		// vigente y registrar la salida vía el libro de stock (misma tx).
		subtotal := decimal.Zero
		items = items[:0]
		for _, itemReq := range lineItems {
			product, err := productRepo.GetByIDForUpdate(itemReq.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			productNames[product.ID] = product.Name

			unitPrice := product.SellingPrice
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(itemReq.Quantity)))
			subtotal = subtotal.Add(lineTotal)

			if _, err := uc.ledger.RegisterSaleOutInTx(
				movRepo, productRepo,
				itemReq.ProductID, itemReq.Quantity,
				userID, saleID, now,
			); err != nil {
				return err
			}

			items = append(items, &entity.SaleItem{
				ID:             uuid.New().String(),
				SaleID:         saleID,
				ProductID:      itemReq.ProductID,
				Quantity:       itemReq.Quantity,
				UnitPrice:      unitPrice,
				DiscountAmount: decimal.Zero,
				TotalPrice:     lineTotal,
			})
		}
		total := subtotal // sin impuestos ni descuentos en la venta rápida

		// 3) Número de factura: consecutivo por día, atómico dentro de la tx.
		seq, err := counterRepo.Next(now)
		if err != nil {
			return err
		}
		invoiceNumber := FormatInvoiceNumber(now, seq)

		// 4) Semántica de pago: crédito queda todo en saldo, el resto pagado.
		paid, balance, status := paymentAmounts(in.PaymentMethod, total)

		sale = &entity.Sale{
			ID:             saleID,
			InvoiceNumber:  invoiceNumber,
			CustomerID:     customerID,
			UserID:         userID,
			Subtotal:       subtotal,
			TaxAmount:      decimal.Zero,
			DiscountAmount: decimal.Zero,
			TotalAmount:    total,
			PaidAmount:     paid,
			BalanceAmount:  balance,
			PaymentStatus:  status,
			PaymentMethod:  in.PaymentMethod,
			SaleType:       entity.SaleTypeGeneral,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, customerName, items, productNames), nil
}

// paymentAmounts deriva pagado, saldo y estado según el método de pago.
func paymentAmounts(method string, total decimal.Decimal) (paid, balance decimal.Decimal, status string) {
	if method == entity.PaymentMethodCredit {
		return decimal.Zero, total, entity.PaymentStatusUnpaid
	}
	return total, decimal.Zero, entity.PaymentStatusPaid
}

// normalizeName recorta espacios y normaliza a NFC para que el find-or-create
// por nombre no cree duplicados por diferencias de codificación Unicode.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func toSaleResponse(sale *entity.Sale, customerName string, items []*entity.SaleItem, productNames map[string]string) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		CustomerID:    sale.CustomerID,
		CustomerName:  customerName,
		UserID:        sale.UserID,
		Subtotal:      sale.Subtotal,
		TaxAmount:     sale.TaxAmount,
		TotalAmount:   sale.TotalAmount,
		PaidAmount:    sale.PaidAmount,
		BalanceAmount: sale.BalanceAmount,
		PaymentStatus: sale.PaymentStatus,
		PaymentMethod: sale.PaymentMethod,
		SaleType:      sale.SaleType,
		CreatedAt:     sale.CreatedAt,
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: productNames[item.ProductID],
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return resp
}

// GetSale obtiene una venta por ID con sus ítems.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if sale.CustomerID != "" {
		if customer, _ := uc.customerRepo.GetByID(sale.CustomerID); customer != nil {
			customerName = customer.Name
		}
	}
	productNames := make(map[string]string, len(items))
	for _, item := range items {
		if product, _ := uc.productRepo.GetByID(item.ProductID); product != nil {
			productNames[item.ProductID] = product.Name
		}
	}
	return toSaleResponse(sale, customerName, items, productNames), nil
}

// ListRecent devuelve las ventas más recientes (cabeceras, sin ítems).
func (uc *CreateSaleUseCase) ListRecent(ctx context.Context, limit int) ([]*dto.SaleResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.saleRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s, "", nil, nil))
	}
	return out, nil
}
