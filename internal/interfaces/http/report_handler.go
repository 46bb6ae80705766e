package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/reports"
)

// ReportHandler maneja las vistas de reporte (protegido).
type ReportHandler struct {
	dashboard *reports.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboard *reports.DashboardUseCase) *ReportHandler {
	return &ReportHandler{dashboard: dashboard}
}

// Dashboard godoc
// @Summary      Dashboard operativo
// @Description  Contadores, ventas recientes, productos con stock bajo y más vendidos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetDashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
