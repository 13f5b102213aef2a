package http

import (
	"errors"

	"github.com/clinivet/clinivet-api/internal/application/dto"
	"github.com/clinivet/clinivet-api/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// respondError traduce los errores de dominio al contrato HTTP.
// Cada error viaja con contexto estructurado suficiente para que la UI
// construya un mensaje específico (campo ofendido, actual vs. solicitado).
func respondError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: vErr.Error(),
			Details: map[string]any{"field": vErr.Field, "reason": vErr.Reason},
		})
	}

	var dupErr *domain.DuplicateBatchError
	if errors.As(err, &dupErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DUPLICATE_BATCH",
			Message: dupErr.Error(),
			Details: map[string]any{
				"product_id":      dupErr.ProductID,
				"barcode":         dupErr.Barcode,
				"supplier_id":     dupErr.SupplierID,
				"expiration_date": dupErr.Expiration.String(),
			},
		})
	}

	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: stockErr.Error(),
			Details: map[string]any{
				"batch_id":         stockErr.BatchID,
				"current_quantity": stockErr.Current,
				"requested_delta":  stockErr.Delta,
			},
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	}

	// Fallas de transporte/almacén: el caller puede decidir reintentar
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
