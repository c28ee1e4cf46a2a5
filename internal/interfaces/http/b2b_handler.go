package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/application/stock"
	"github.com/jhoicas/Alquileres-api/internal/domain"
)

// B2BHandler maneja las compras a proveedor sobre pools B2B (protegido).
type B2BHandler struct {
	uc *stock.StockUseCase
}

// NewB2BHandler construye el handler.
func NewB2BHandler(uc *stock.StockUseCase) *B2BHandler {
	return &B2BHandler{uc: uc}
}

// RegisterPurchase godoc
// @Summary      Registrar compra a proveedor en un pool B2B
// @Description  Agrega una entrada al historial (solo inserción) y suma la
//
//	cantidad al pool. Las restas ocurren por despacho o traslado.
//
// @Tags         b2b
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del pool B2B"
// @Param        body  body  dto.RegisterPurchaseRequest  true  "quantity, price, supplier_name"
// @Success      201   {object}  dto.B2BPurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/b2b/{id}/purchases [post]
func (h *B2BHandler) RegisterPurchase(c *fiber.Ctx) error {
	b2bStockID := c.Params("id")
	if b2bStockID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.RegisterPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.uc.RegisterPurchase(c.Context(), b2bStockID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pool B2B no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}
