package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El StockQuantity solo se muta vía SetStock, dentro de una transacción que
// haya bloqueado la fila con GetByIDForUpdate.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar el ciclo leer-modificar-escribir del stock.
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	SetStock(productID string, quantity int) error
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock(limit int) ([]*entity.Product, error)
}
