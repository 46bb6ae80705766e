package repository

import (
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos de stock. Solo append: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error)
}
