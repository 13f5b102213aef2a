package http

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/clinivet/clinivet-api/internal/application/dto"
	"github.com/clinivet/clinivet-api/internal/application/ledger"
	"github.com/clinivet/clinivet-api/internal/domain"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	domledger "github.com/clinivet/clinivet-api/internal/domain/ledger"
	"github.com/clinivet/clinivet-api/pkg/barcode"
	"github.com/gofiber/fiber/v2"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario:
// lotes, deltas de stock y rollups por producto.
type InventoryHandler struct {
	batches   *ledger.BatchUseCase
	stock     *ledger.StockUseCase
	rollups   *ledger.RollupUseCase
	threshold int64
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(batches *ledger.BatchUseCase, stock *ledger.StockUseCase, rollups *ledger.RollupUseCase, threshold int64) *InventoryHandler {
	return &InventoryHandler{batches: batches, stock: stock, rollups: rollups, threshold: threshold}
}

// parseIntegerNumber convierte un json.Number a entero; las fracciones se
// rechazan con error de validación, nunca se truncan.
func parseIntegerNumber(n json.Number, field string) (int64, error) {
	s := n.String()
	if s == "" {
		return 0, &domain.ValidationError{Field: field, Reason: "es obligatorio"}
	}
	if strings.ContainsAny(s, ".eE") {
		return 0, &domain.ValidationError{Field: field, Reason: "debe ser un entero, no una fracción"}
	}
	v, err := n.Int64()
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Reason: "debe ser un número entero"}
	}
	return v, nil
}

func parseIDParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: "id", Reason: "debe ser un entero positivo"}
	}
	return id, nil
}

func (h *InventoryHandler) present(b *entity.Batch) dto.BatchResponse {
	return dto.BatchResponse{
		ID:             b.ID,
		ProductID:      b.ProductID,
		SupplierID:     b.SupplierID,
		SKU:            b.SKU,
		Barcode:        b.Barcode,
		Price:          b.Price,
		Quantity:       b.Quantity,
		TotalCount:     b.TotalCount,
		ItemSold:       b.ItemSold,
		ExpirationDate: b.Expiration,
		Archived:       b.Archived,
		ProductName:    b.ProductName,
		SupplierName:   b.SupplierName,
		StockLevel:     string(domledger.Classify(b.Quantity, h.threshold)),
	}
}

func (h *InventoryHandler) presentAll(batches []*entity.Batch) []dto.BatchResponse {
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, h.present(b))
	}
	return out
}

// CreateBatch godoc
// @Summary      Crear lote de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "product_id, supplier_id, sku, barcode (opcional), price, quantity, expiration_date (null/\"00\" = sin vencimiento)"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	quantity, err := parseIntegerNumber(in.Quantity, "quantity")
	if err != nil {
		return respondError(c, err)
	}

	// El cliente genera el código de barras; si no vino, se genera aquí en el
	// borde. El libro solo valida unicidad.
	if in.Barcode == "" {
		in.Barcode = barcode.Default()
	}

	created, err := h.batches.Create(c.Context(), ledger.CreateBatchInput{
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		SKU:        in.SKU,
		Barcode:    in.Barcode,
		Price:      in.Price,
		Quantity:   quantity,
		Expiration: in.ExpirationDate,
		CreatedBy:  in.CreatedBy,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.present(created))
}

// UpdateBatch godoc
// @Summary      Editar metadatos de un lote
// @Description  Patch parcial: sku, barcode, supplier_id, price, expiration_date.
//
//	Nunca modifica quantity/total_count/item_sold; los deltas van por /stock.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del lote"
// @Param        body  body  dto.UpdateBatchRequest  true  "campos a modificar"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) UpdateBatch(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	updated, err := h.batches.UpdateMetadata(c.Context(), id, ledger.MetadataPatch{
		SKU:        in.SKU,
		Barcode:    in.Barcode,
		SupplierID: in.SupplierID,
		Price:      in.Price,
		Expiration: in.ExpirationDate,
		UpdatedBy:  in.UpdatedBy,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.present(updated))
}

// ApplyDelta godoc
// @Summary      Aplicar delta de stock a un lote
// @Description  Delta con signo: positivo repone (incrementa total_count),
//
//	negativo corrige. Falla con 409 si la cantidad quedaría negativa.
//	El header Idempotency-Key deduplica reintentos.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path    int  true  "ID del lote"
// @Param        Idempotency-Key  header  string  false  "clave de idempotencia para reintentos"
// @Param        body  body    dto.ApplyDeltaRequest  true  "delta entero con signo"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/stock [post]
func (h *InventoryHandler) ApplyDelta(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ApplyDeltaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	delta, err := parseIntegerNumber(in.Delta, "delta")
	if err != nil {
		return respondError(c, err)
	}

	idemKey := c.Get("Idempotency-Key")
	updated, err := h.stock.ApplyDelta(c.Context(), id, delta, idemKey, in.UpdatedBy)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.present(updated))
}

// ArchiveBatch godoc
// @Summary      Archivar un lote (borrado lógico)
// @Tags         inventory
// @Produce      json
// @Param        id  path  int  true  "ID del lote"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/archive [post]
func (h *InventoryHandler) ArchiveBatch(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.batches.Archive(c.Context(), id, c.Get("X-Actor")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote archivado"})
}

// RestoreBatch godoc
// @Summary      Restaurar un lote archivado
// @Description  Vuelve a correr la guardia de duplicados contra los lotes
//
//	activos actuales antes de reactivar.
//
// @Tags         inventory
// @Produce      json
// @Param        id  path  int  true  "ID del lote"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/restore [post]
func (h *InventoryHandler) RestoreBatch(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.batches.Restore(c.Context(), id, c.Get("X-Actor")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote restaurado"})
}

// DeleteBatch godoc
// @Summary      Borrar físicamente un lote (administrativo)
// @Tags         inventory
// @Produce      json
// @Param        id  path  int  true  "ID del lote"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) DeleteBatch(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.batches.HardDelete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "lote eliminado"})
}

// ListInventory godoc
// @Summary      Listar lotes de inventario
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  int   false  "filtrar por producto"
// @Param        archived    query  bool  false  "listar archivados (default false)"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	archived := c.QueryBool("archived", false)

	if productParam := c.Query("product_id"); productParam != "" {
		productID, err := strconv.ParseInt(productParam, 10, 64)
		if err != nil || productID <= 0 {
			return respondError(c, &domain.ValidationError{Field: "product_id", Reason: "debe ser un entero positivo"})
		}
		batches, err := h.batches.ListByProduct(c.Context(), productID, archived)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.InventoryListResponse{
			TotalInventory: int64(len(batches)),
			Inventory:      h.presentAll(batches),
		})
	}

	batches, total, err := h.batches.List(c.Context(), archived)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.InventoryListResponse{
		TotalInventory: total,
		Inventory:      h.presentAll(batches),
	})
}

// GetProductRollup godoc
// @Summary      Rollup de stock por producto
// @Description  Suma total_count, quantity e item_sold sobre los lotes activos;
//
//	la lista viene ordenada por nombre de proveedor (ascendente, sin
//	distinguir mayúsculas) con empates por id.
//
// @Tags         inventory
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.RollupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/rollup [get]
func (h *InventoryHandler) GetProductRollup(c *fiber.Ctx) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return respondError(c, err)
	}
	rollup, err := h.rollups.GetProductRollup(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RollupResponse{
		ProductID:  rollup.ProductID,
		TotalCount: rollup.TotalCount,
		Quantity:   rollup.Quantity,
		ItemSold:   rollup.ItemSold,
		Batches:    h.presentAll(rollup.Batches),
	})
}
