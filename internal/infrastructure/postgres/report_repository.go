package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el dashboard. Siempre sobre el
// pool: no participa en transacciones del motor de ventas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetDashboardStats devuelve los contadores del dashboard. El total de ventas
// de hoy se calcula sobre el rango [medianoche, medianoche+24h).
func (r *ReportRepo) GetDashboardStats(ctx context.Context, today time.Time) (*repository.DashboardStats, error) {
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT
			(SELECT COUNT(*) FROM products WHERE is_active = true),
			(SELECT COUNT(*) FROM products WHERE is_active = true AND stock_quantity <= minimum_stock),
			(SELECT COUNT(*) FROM customers WHERE is_active = true),
			(SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE created_at >= $1 AND created_at < $2)`
	var stats repository.DashboardStats
	err := r.q.QueryRow(ctx, query, dayStart, dayEnd).Scan(
		&stats.TotalProducts, &stats.LowStockProducts,
		&stats.TotalCustomers, &stats.TodaySalesTotal,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}

// GetTopProducts devuelve los productos más vendidos por unidades.
func (r *ReportRepo) GetTopProducts(ctx context.Context, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT p.id, p.sku, p.name, COALESCE(c.name, ''),
			SUM(si.quantity) AS units_sold,
			SUM(si.total_price) AS revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		GROUP BY p.id, p.sku, p.name, c.name
		ORDER BY units_sold DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var t repository.TopProductResult
		if err := rows.Scan(&t.ProductID, &t.SKU, &t.Name, &t.CategoryName,
			&t.UnitsSold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
