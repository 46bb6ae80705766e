package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats agrupa los contadores del dashboard.
type DashboardStats struct {
	TotalProducts    int
	LowStockProducts int
	TotalCustomers   int
	TodaySalesTotal  decimal.Decimal
}

// TopProductResult es una fila de la agregación de más vendidos.
type TopProductResult struct {
	ProductID    string
	SKU          string
	Name         string
	CategoryName string
	UnitsSold    int64
	Revenue      decimal.Decimal
}

// ReportRepository define consultas de solo lectura para el dashboard.
// No participa en transacciones del motor de ventas.
type ReportRepository interface {
	GetDashboardStats(ctx context.Context, today time.Time) (*DashboardStats, error)
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)
}
