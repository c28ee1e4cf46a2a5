package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Alquileres-api/internal/application/dispatch"
	"github.com/jhoicas/Alquileres-api/internal/application/dto"
	"github.com/jhoicas/Alquileres-api/internal/application/events"
	"github.com/jhoicas/Alquileres-api/internal/application/returns"
	"github.com/jhoicas/Alquileres-api/internal/application/settlement"
	"github.com/jhoicas/Alquileres-api/internal/domain"
)

// EventHandler maneja el ciclo de vida de los eventos: creación, consulta,
// despacho, devoluciones y liquidación (protegido).
type EventHandler struct {
	eventUC      *events.EventUseCase
	dispatchUC   *dispatch.DispatchUseCase
	returnUC     *returns.ReturnUseCase
	settlementUC *settlement.SettlementUseCase
}

// NewEventHandler construye el handler.
func NewEventHandler(
	eventUC *events.EventUseCase,
	dispatchUC *dispatch.DispatchUseCase,
	returnUC *returns.ReturnUseCase,
	settlementUC *settlement.SettlementUseCase,
) *EventHandler {
	return &EventHandler{
		eventUC:      eventUC,
		dispatchUC:   dispatchUC,
		returnUC:     returnUC,
		settlementUC: settlementUC,
	}
}

// Create godoc
// @Summary      Crear evento en borrador
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEventRequest  true  "client_id, name, date_from, date_to, advance, security"
// @Success      201   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	event, err := h.eventUC.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CLIENT_NOT_FOUND", Message: "el cliente no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// List godoc
// @Summary      Listar eventos
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.EventResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.eventUC.List(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Detalle de un evento con despachos y devoluciones
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	detail, err := h.eventUC.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "evento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(detail)
}

// Dispatch godoc
// @Summary      Despachar stock a un evento (Stock Out)
// @Description  Congela precios y cantidades en un snapshot. Todo-o-nada: si
//
//	alguna línea no tiene stock suficiente, no se descuenta ningún pool.
//
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del evento"
// @Param        body  body  dto.DispatchRequest  true  "items: product_id, quantity, source (primary|b2b), b2b_stock_id"
// @Success      201   {object}  dto.DispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/events/{id}/dispatch [post]
func (h *EventHandler) Dispatch(c *fiber.Ctx) error {
	userID := GetUserID(c)
	eventID := c.Params("id")
	if eventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.DispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.dispatchUC.Dispatch(c.Context(), userID, eventID, in)
	if err != nil {
		var insufficient *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "evento, producto o pool no encontrado"})
		case errors.Is(err, domain.ErrEventClosed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EVENT_CLOSED", Message: "el evento ya está cerrado"})
		case errors.As(err, &insufficient):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:       "INSUFFICIENT_STOCK",
				Message:    "stock insuficiente",
				ProductIDs: []string{insufficient.ProductID},
			})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Outstanding godoc
// @Summary      Pendiente de devolución del último despacho
// @Description  Base del formulario de devolución: por línea, lo despachado,
//
//	lo ya devuelto acumulado y la mora sugerida para esta pasada.
//
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del evento"
// @Success      200  {object}  dto.OutstandingResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id}/outstanding [get]
func (h *EventHandler) Outstanding(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if eventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.returnUC.Outstanding(c.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "evento o despacho no encontrado"})
		}
		if errors.Is(err, domain.ErrAlreadyReturned) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ALREADY_RETURNED", Message: "la devolución del evento ya está completada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SubmitReturn godoc
// @Summary      Registrar una pasada de devolución (Stock In)
// @Description  Liquida faltantes, daños y mora por línea, acredita stock al
//
//	pool de origen y cierra el evento cuando no queda pendiente.
//	Si otra devolución se aplicó primero, responde 409 con las
//	líneas en conflicto para recargar el formulario.
//
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del evento"
// @Param        body  body  dto.SubmitReturnRequest  true  "items con returned, already_returned, damage_amount, late_fee, close"
// @Success      201   {object}  dto.SubmitReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/events/{id}/returns [post]
func (h *EventHandler) SubmitReturn(c *fiber.Ctx) error {
	userID := GetUserID(c)
	eventID := c.Params("id")
	if eventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.SubmitReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.returnUC.SubmitReturn(c.Context(), userID, eventID, in)
	if err != nil {
		var conflict *domain.ReturnConflictError
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "evento o despacho no encontrado"})
		case errors.Is(err, domain.ErrAlreadyReturned):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ALREADY_RETURNED", Message: "la devolución del evento ya está completada"})
		case errors.As(err, &conflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:       "RETURN_CONFLICT",
				Message:    "otra devolución se aplicó primero; recargue el pendiente",
				ProductIDs: conflict.ProductIDs,
			})
		case errors.Is(err, domain.ErrReturnConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "RETURN_CONFLICT", Message: "devolución concurrente detectada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BuildInvoice godoc
// @Summary      Construir la factura de liquidación de un evento
// @Description  Deriva líneas base del despacho, suma ajustes de las
//
//	devoluciones (faltante, daño, mora) y aplica descuento y
//	anticipo. No muta el evento.
//
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del evento"
// @Param        body  body  dto.BuildInvoiceRequest  true  "manual_lines, discount_pct, include_security, status (draft|final)"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/events/{id}/invoice [post]
func (h *EventHandler) BuildInvoice(c *fiber.Ctx) error {
	eventID := c.Params("id")
	if eventID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.BuildInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.settlementUC.BuildInvoice(c.Context(), eventID, in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "evento o despacho no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
