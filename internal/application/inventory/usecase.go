package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// Policy ajusta el comportamiento del libro de stock.
// AllowNegativeStock permite que una salida deje el stock bajo cero
// (farmacias que venden contra pedido); por defecto está deshabilitado.
type Policy struct {
	AllowNegativeStock bool
}

// StockLedgerUseCase aplica movimientos de stock de forma transaccional
// (IN, OUT, ADJUSTMENT) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Cada cambio de products.stock_quantity queda emparejado con exactamente un
// registro en stock_movements dentro de la misma transacción.
type StockLedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
	policy   Policy
}

// NewStockLedgerUseCase construye el caso de uso. movRepo es la instancia
// atada al pool, solo para lecturas fuera de transacción.
func NewStockLedgerUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository, policy Policy) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner, movRepo: movRepo, policy: policy}
}

// MovementInput entrada para aplicar un movimiento de stock.
// Para in/out Quantity es la magnitud (>= 1); para adjustment es el nivel
// absoluto objetivo y el movimiento guarda el delta.
type MovementInput struct {
	ProductID     string
	Type          string
	Quantity      int
	ReferenceType string
	ReferenceID   string
	Notes         string
	UserID        string
	Now           time.Time
}

// ApplyMovementInTx aplica un movimiento usando los repositorios del caller
// (misma transacción). El caller ya inició la tx; aquí se bloquea la fila del
// producto, se calcula el nuevo stock y se persisten producto + movimiento.
func (uc *StockLedgerUseCase) ApplyMovementInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	in MovementInput,
) (*entity.StockMovement, error) {
	product, err := productRepo.GetByIDForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	previous := product.StockQuantity
	var newStock, storedQty int

	switch in.Type {
	case entity.MovementTypeIn:
		if in.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		newStock = previous + in.Quantity
		storedQty = in.Quantity
	case entity.MovementTypeOut:
		if in.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		newStock = previous - in.Quantity
		if newStock < 0 && !uc.policy.AllowNegativeStock {
			return nil, domain.ErrInsufficientStock
		}
		storedQty = in.Quantity
	case entity.MovementTypeAdjustment:
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		newStock = in.Quantity
		storedQty = newStock - previous // delta, puede ser negativo
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := productRepo.SetStock(in.ProductID, newStock); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      storedQty,
		PreviousStock: previous,
		NewStock:      newStock,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		UserID:        in.UserID,
		CreatedAt:     in.Now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterSaleOutInTx ejecuta la salida de una venta usando los repositorios
// proporcionados (misma transacción del caller). Implementa sales.StockLedger;
// saleID queda como referencia del movimiento.
func (uc *StockLedgerUseCase) RegisterSaleOutInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity int,
	userID, saleID string,
	now time.Time,
) (*entity.StockMovement, error) {
	return uc.ApplyMovementInTx(movRepo, productRepo, MovementInput{
		ProductID:     productID,
		Type:          entity.MovementTypeOut,
		Quantity:      quantity,
		ReferenceType: entity.ReferenceTypeSale,
		ReferenceID:   saleID,
		UserID:        userID,
		Now:           now,
	})
}

// AdjustStock es el punto de entrada para entradas y ajustes manuales de stock.
// type=in suma Quantity; type=adjustment fija Quantity como nivel absoluto.
// Inicia su propia transacción; Commit si todo ok, Rollback si algo falla.
func (uc *StockLedgerUseCase) AdjustStock(ctx context.Context, userID string, in dto.AdjustStockRequest) (*dto.StockMovementResponse, error) {
	if in.ProductID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeIn:
		if in.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		mov, err = uc.ApplyMovementInTx(movRepo, productRepo, MovementInput{
			ProductID:     in.ProductID,
			Type:          in.Type,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferenceTypeAdjustment,
			Notes:         in.Notes,
			UserID:        userID,
			Now:           time.Now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// ListMovements devuelve el historial de movimientos de un producto (solo lectura).
func (uc *StockLedgerUseCase) ListMovements(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*dto.StockMovementResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.StockMovementResponse {
	if m == nil {
		return nil
	}
	return &dto.StockMovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
	}
}
