package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetByInvoiceNumber(invoiceNumber string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	ListRecent(limit int) ([]*entity.Sale, error)
}
