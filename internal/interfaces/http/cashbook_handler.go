package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pos/internal/application/cashbook"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
)

// CashBookHandler maneja el libro de caja (protegido).
type CashBookHandler struct {
	uc *cashbook.CashBookUseCase
}

// NewCashBookHandler construye el handler.
func NewCashBookHandler(uc *cashbook.CashBookUseCase) *CashBookHandler {
	return &CashBookHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar asiento de caja
// @Tags         cashbook
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashEntryRequest  true  "description, type (income | expense), amount, payment_method"
// @Success      201   {object}  dto.CashEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cashbook [post]
func (h *CashBookHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CashEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordEntry(c.Context(), userID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del asiento inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asientos de caja
// @Tags         cashbook
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Fecha inicial YYYY-MM-DD"
// @Param        to      query  string  false  "Fecha final YYYY-MM-DD"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.CashEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cashbook [get]
func (h *CashBookHandler) List(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, formato YYYY-MM-DD"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, formato YYYY-MM-DD"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.Context(), from, to, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
