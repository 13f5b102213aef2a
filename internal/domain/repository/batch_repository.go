package repository

import "github.com/clinivet/clinivet-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia del Batch Store (DIP).
// GetByID devuelve (nil, nil) si el lote no existe.
type BatchRepository interface {
	// Create persiste un lote nuevo y asigna su ID.
	Create(batch *entity.Batch) error
	GetByID(id int64) (*entity.Batch, error)
	// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	GetForUpdate(id int64) (*entity.Batch, error)
	// UpdateMetadata actualiza sku, barcode, precio, proveedor y vencimiento.
	// Nunca toca quantity, total_count ni item_sold.
	UpdateMetadata(batch *entity.Batch) error
	// UpdateQuantities escribe los contadores ya validados por el Stock Mutator.
	UpdateQuantities(id int64, quantity, totalCount int64, updatedBy string) error
	SetArchived(id int64, archived bool, updatedBy string) error
	// Delete borra físicamente (operación administrativa, fuera de las garantías del libro).
	Delete(id int64) error
	// ListByProduct devuelve los lotes del producto con nombres de despliegue resueltos.
	ListByProduct(productID int64, includeArchived bool) ([]*entity.Batch, error)
	// List devuelve todos los lotes filtrados por estado de archivo.
	List(archived bool) ([]*entity.Batch, error)
	CountAll() (int64, error)
	ExistsSKU(sku string) (bool, error)
}
