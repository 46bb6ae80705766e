package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// DashboardUseCase arma las vistas de solo lectura del dashboard: contadores,
// ventas recientes, bajo stock y más vendidos. No participa en las
// transacciones del motor de ventas.
type DashboardUseCase struct {
	reportRepo  repository.ReportRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	reportRepo repository.ReportRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, saleRepo: saleRepo, productRepo: productRepo}
}

// GetDashboard devuelve estadísticas, 5 ventas recientes, hasta 10 productos
// en bajo stock y el top 5 de más vendidos.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	stats, err := uc.reportRepo.GetDashboardStats(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	recent, err := uc.saleRepo.ListRecent(5)
	if err != nil {
		return nil, err
	}
	recentSales := make([]dto.SaleResponse, 0, len(recent))
	for _, s := range recent {
		recentSales = append(recentSales, dto.SaleResponse{
			ID:            s.ID,
			InvoiceNumber: s.InvoiceNumber,
			CustomerID:    s.CustomerID,
			UserID:        s.UserID,
			Subtotal:      s.Subtotal,
			TaxAmount:     s.TaxAmount,
			TotalAmount:   s.TotalAmount,
			PaidAmount:    s.PaidAmount,
			BalanceAmount: s.BalanceAmount,
			PaymentStatus: s.PaymentStatus,
			PaymentMethod: s.PaymentMethod,
			SaleType:      s.SaleType,
			CreatedAt:     s.CreatedAt,
		})
	}

	lowStock, err := uc.productRepo.ListLowStock(10)
	if err != nil {
		return nil, err
	}
	lowStockItems := make([]dto.LowStockItemDTO, 0, len(lowStock))
	for _, p := range lowStock {
		lowStockItems = append(lowStockItems, dto.LowStockItemDTO{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			StockQuantity: p.StockQuantity,
			MinimumStock:  p.MinimumStock,
		})
	}

	top, err := uc.reportRepo.GetTopProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	topProducts := make([]dto.TopProductDTO, 0, len(top))
	for _, row := range top {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID:    row.ProductID,
			SKU:          row.SKU,
			Name:         row.Name,
			CategoryName: row.CategoryName,
			UnitsSold:    row.UnitsSold,
			Revenue:      row.Revenue,
		})
	}

	return &dto.DashboardResponse{
		Stats: dto.DashboardStatsDTO{
			TotalProducts:    stats.TotalProducts,
			LowStockProducts: stats.LowStockProducts,
			TotalCustomers:   stats.TotalCustomers,
			TodaySales:       stats.TodaySalesTotal,
		},
		RecentSales:   recentSales,
		LowStockItems: lowStockItems,
		TopProducts:   topProducts,
	}, nil
}
