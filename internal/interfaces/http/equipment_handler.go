package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/entregas-epp/internal/application/dto"
	"github.com/jhoicas/entregas-epp/internal/application/inventory"
)

// EquipmentHandler consultas de stock de EPP (protegido, solo lectura).
type EquipmentHandler struct {
	uc  *inventory.StockQueryUseCase
	log zerolog.Logger
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *inventory.StockQueryUseCase, log zerolog.Logger) *EquipmentHandler {
	return &EquipmentHandler{uc: uc, log: log}
}

// GetStock godoc
// @Summary      Stock de un equipo (con tallas)
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del equipo"
// @Success      200  {object}  dto.EquipmentStockDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id}/stock [get]
func (h *EquipmentHandler) GetStock(c *fiber.Ctx) error {
	st, err := h.uc.GetStock(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(st)
}

// ListLowStock godoc
// @Summary      Equipos en reorden o nivel crítico
// @Description  Posiciones (equipo o talla) bajo umbral, ordenadas por déficit, con cantidad sugerida de compra.
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LowStockItemDTO
// @Router       /api/equipment/low-stock [get]
func (h *EquipmentHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}

// ListMovements godoc
// @Summary      Kardex de un equipo
// @Tags         equipment
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del equipo"
// @Param        limit   query  int     false  "Máximo 100"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.StockMovementDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipment/{id}/movements [get]
func (h *EquipmentHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.uc.ListMovements(c.Context(), c.Params("id"), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}
