package repository

import (
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// CashBookRepository define el puerto de persistencia para el libro de caja.
// Ledger solo append: no hay Update ni Delete.
type CashBookRepository interface {
	Create(entry *entity.CashEntry) error
	List(from, to *time.Time, limit, offset int) ([]*entity.CashEntry, error)
}
