package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO contadores principales del dashboard.
type DashboardStatsDTO struct {
	TotalProducts    int             `json:"total_products"`
	LowStockProducts int             `json:"low_stock_products"`
	TotalCustomers   int             `json:"total_customers"`
	TodaySales       decimal.Decimal `json:"today_sales"`
}

// LowStockItemDTO producto en o por debajo del stock mínimo.
type LowStockItemDTO struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stock_quantity"`
	MinimumStock  int    `json:"minimum_stock"`
}

// TopProductDTO producto más vendido por unidades.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name,omitempty"`
	UnitsSold    int64           `json:"units_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Stats         DashboardStatsDTO `json:"stats"`
	RecentSales   []SaleResponse    `json:"recent_sales"`
	LowStockItems []LowStockItemDTO `json:"low_stock_items"`
	TopProducts   []TopProductDTO   `json:"top_products"`
}
