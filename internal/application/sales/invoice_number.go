package sales

import (
	"fmt"
	"time"
)

// FormatInvoiceNumber arma el número de factura legible: INV-YYYYMMDD-NNNN.
// El consecutivo NNNN viene del contador por día (invoice_counters), que se
// incrementa de forma atómica dentro de la transacción de la venta; derivarlo
// del total de ventas produciría duplicados bajo concurrencia.
func FormatInvoiceNumber(day time.Time, seq int) string {
	return fmt.Sprintf("INV-%s-%04d", day.Format("20060102"), seq)
}
