package dto

import (
	"encoding/json"

	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateBatchRequest body para POST /api/inventory.
// barcode es opcional: si falta, el handler genera el token (el libro no genera
// identificadores). expiration_date acepta null, "" o el sentinel "00" como
// "sin vencimiento".
type CreateBatchRequest struct {
	ProductID      int64                 `json:"product_id"`
	SupplierID     int64                 `json:"supplier_id"`
	SKU            string                `json:"sku"`
	Barcode        string                `json:"barcode,omitempty"`
	Price          decimal.Decimal       `json:"price"`
	Quantity       json.Number           `json:"quantity"`
	ExpirationDate entity.ExpirationDate `json:"expiration_date"`
	CreatedBy      string                `json:"created_by"`
}

// UpdateBatchRequest body para PUT /api/inventory/:id. Campos ausentes no se tocan.
type UpdateBatchRequest struct {
	SKU            *string                `json:"sku,omitempty"`
	Barcode        *string                `json:"barcode,omitempty"`
	SupplierID     *int64                 `json:"supplier_id,omitempty"`
	Price          *decimal.Decimal       `json:"price,omitempty"`
	ExpirationDate *entity.ExpirationDate `json:"expiration_date,omitempty"`
	UpdatedBy      string                 `json:"updated_by"`
}

// ApplyDeltaRequest body para POST /api/inventory/:id/stock.
// delta viaja como json.Number para poder rechazar fracciones con un error de
// validación en vez de truncarlas silenciosamente.
type ApplyDeltaRequest struct {
	Delta     json.Number `json:"delta"`
	UpdatedBy string      `json:"updated_by"`
}

// BatchResponse representación de un lote en respuestas.
type BatchResponse struct {
	ID             int64                 `json:"id"`
	ProductID      int64                 `json:"product_id"`
	SupplierID     int64                 `json:"supplier_id"`
	SKU            string                `json:"sku"`
	Barcode        string                `json:"barcode"`
	Price          decimal.Decimal       `json:"price"`
	Quantity       int64                 `json:"quantity"`
	TotalCount     int64                 `json:"total_count"`
	ItemSold       int64                 `json:"item_sold"`
	ExpirationDate entity.ExpirationDate `json:"expiration_date"`
	Archived       bool                  `json:"archived"`
	ProductName    string                `json:"product_name,omitempty"`
	SupplierName   string                `json:"supplier_name,omitempty"`
	StockLevel     string                `json:"stock_level"`
}

// InventoryListResponse respuesta de GET /api/inventory, con el total histórico
// de entradas como lo entregaba la consola original.
type InventoryListResponse struct {
	TotalInventory int64           `json:"total_inventory"`
	Inventory      []BatchResponse `json:"inventory"`
}

// RollupResponse respuesta de GET /api/products/:id/rollup.
type RollupResponse struct {
	ProductID  int64           `json:"product_id"`
	TotalCount int64           `json:"total_count"`
	Quantity   int64           `json:"quantity"`
	ItemSold   int64           `json:"item_sold"`
	Batches    []BatchResponse `json:"batches"`
}

// ReferenceRequest body para crear/renombrar una entidad de referencia nombrada.
type ReferenceRequest struct {
	Name string `json:"name"`
}

// ReferenceResponse representación de una referencia nombrada.
type ReferenceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived"`
}
