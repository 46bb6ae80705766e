package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.InvoiceCounterRepository = (*InvoiceCounterRepo)(nil)

// InvoiceCounterRepo implementa el consecutivo de facturas por día.
// El upsert con RETURNING es atómico: dos transacciones concurrentes
// serializan sobre la fila del día y reciben valores distintos.
type InvoiceCounterRepo struct {
	q Querier
}

// NewInvoiceCounterRepository construye el adaptador. Debe usarse con la
// misma tx que crea la venta.
func NewInvoiceCounterRepository(q Querier) *InvoiceCounterRepo {
	return &InvoiceCounterRepo{q: q}
}

// Next incrementa y devuelve el contador del día indicado.
func (r *InvoiceCounterRepo) Next(day time.Time) (int, error) {
	query := `
		INSERT INTO invoice_counters (day, last_value)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET last_value = invoice_counters.last_value + 1
		RETURNING last_value`
	var seq int
	if err := r.q.QueryRow(context.Background(), query, day.Format("2006-01-02")).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice counter: %w", err)
	}
	return seq, nil
}
