package repository

import "time"

// InvoiceCounterRepository define el puerto del consecutivo de facturas por día.
// Next incrementa y devuelve el contador del día de forma atómica; llamado
// dentro de la misma transacción que crea la venta para que dos ventas
// concurrentes nunca reciban el mismo número.
type InvoiceCounterRepository interface {
	Next(day time.Time) (int, error)
}
