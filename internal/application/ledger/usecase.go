package ledger

import (
	"context"

	"github.com/clinivet/clinivet-api/internal/domain"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	domledger "github.com/clinivet/clinivet-api/internal/domain/ledger"
	"github.com/clinivet/clinivet-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// BatchUseCase operaciones del Batch Store: alta de lotes con guardia de duplicados,
// edición de metadatos, archivo/restauración y borrado administrativo.
// Toda mutación corre dentro de una transacción con bloqueo de fila.
type BatchUseCase struct {
	txRunner     TxRunner
	batchRepo    repository.BatchRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	alerts       *AlertEngine
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	txRunner TxRunner,
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	alerts *AlertEngine,
) *BatchUseCase {
	return &BatchUseCase{
		txRunner:     txRunner,
		batchRepo:    batchRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		alerts:       alerts,
	}
}

// CreateBatchInput entrada para crear un lote. Barcode ya viene resuelto por el
// caller (el cliente lo genera; el libro solo valida unicidad).
type CreateBatchInput struct {
	ProductID  int64
	SupplierID int64
	SKU        string
	Barcode    string
	Price      decimal.Decimal
	Quantity   int64
	Expiration entity.ExpirationDate
	CreatedBy  string
}

func (in CreateBatchInput) validate() error {
	if in.ProductID <= 0 {
		return &domain.ValidationError{Field: "product_id", Reason: "es obligatorio"}
	}
	if in.SupplierID <= 0 {
		return &domain.ValidationError{Field: "supplier_id", Reason: "es obligatorio"}
	}
	if in.SKU == "" {
		return &domain.ValidationError{Field: "sku", Reason: "es obligatorio"}
	}
	if in.Barcode == "" {
		return &domain.ValidationError{Field: "barcode", Reason: "es obligatorio"}
	}
	if in.Price.IsNegative() {
		return &domain.ValidationError{Field: "price", Reason: "no puede ser negativo"}
	}
	if in.Quantity < 0 {
		return &domain.ValidationError{Field: "quantity", Reason: "no puede ser negativa"}
	}
	return nil
}

// Create valida la entrada, corre la guardia de duplicados sobre los lotes activos
// del producto y persiste el lote con quantity = total_count = stock inicial e
// item_sold = 0. Todo dentro de una transacción.
func (uc *BatchUseCase) Create(ctx context.Context, in CreateBatchInput) (*entity.Batch, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	batch := &entity.Batch{
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		SKU:        in.SKU,
		Barcode:    in.Barcode,
		Price:      in.Price,
		Quantity:   in.Quantity,
		TotalCount: in.Quantity,
		ItemSold:   0,
		Expiration: in.Expiration,
		CreatedBy:  in.CreatedBy,
	}

	err = uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository) error {
		exists, err := batchRepo.ExistsSKU(in.SKU)
		if err != nil {
			return err
		}
		if exists {
			return &domain.ValidationError{Field: "sku", Reason: "ya existe, debe ser único"}
		}

		active, err := batchRepo.ListByProduct(in.ProductID, false)
		if err != nil {
			return err
		}
		if domledger.CheckDuplicate(batch.Key(), active) {
			return &domain.DuplicateBatchError{
				ProductID:  in.ProductID,
				Barcode:    in.Barcode,
				SupplierID: in.SupplierID,
				Expiration: in.Expiration,
			}
		}
		return batchRepo.Create(batch)
	})
	if err != nil {
		return nil, err
	}

	batch.ProductName = product.Name
	batch.SupplierName = supplier.Name
	return batch, nil
}

// MetadataPatch cambios parciales de metadatos de un lote. Los campos nil no se
// tocan. Nunca modifica quantity, total_count ni item_sold: los deltas de stock
// pasan por el Stock Mutator.
type MetadataPatch struct {
	SKU        *string
	Barcode    *string
	SupplierID *int64
	Price      *decimal.Decimal
	Expiration *entity.ExpirationDate
	UpdatedBy  string
}

// UpdateMetadata aplica un patch parcial sobre un lote activo. Si el patch cambia
// algún componente de la tripleta de deduplicación, la guardia se vuelve a correr
// contra los demás lotes activos del producto.
func (uc *BatchUseCase) UpdateMetadata(ctx context.Context, id int64, patch MetadataPatch) (*entity.Batch, error) {
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, &domain.ValidationError{Field: "price", Reason: "no puede ser negativo"}
	}
	if patch.SKU != nil && *patch.SKU == "" {
		return nil, &domain.ValidationError{Field: "sku", Reason: "no puede quedar vacío"}
	}
	if patch.Barcode != nil && *patch.Barcode == "" {
		return nil, &domain.ValidationError{Field: "barcode", Reason: "no puede quedar vacío"}
	}

	var updated *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository) error {
		batch, err := batchRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		// Un lote archivado es inmutable salvo restore: se trata como inexistente.
		if batch == nil || batch.Archived {
			return domain.ErrNotFound
		}

		if patch.SKU != nil && *patch.SKU != batch.SKU {
			exists, err := batchRepo.ExistsSKU(*patch.SKU)
			if err != nil {
				return err
			}
			if exists {
				return &domain.ValidationError{Field: "sku", Reason: "ya existe, debe ser único"}
			}
			batch.SKU = *patch.SKU
		}
		if patch.Barcode != nil {
			batch.Barcode = *patch.Barcode
		}
		if patch.SupplierID != nil {
			supplier, err := uc.supplierRepo.GetByID(*patch.SupplierID)
			if err != nil {
				return err
			}
			// NotFound a secas sería indistinguible de "lote inexistente";
			// el campo ofendido viaja en el error.
			if supplier == nil {
				return &domain.ValidationError{Field: "supplier_id", Reason: "no existe"}
			}
			batch.SupplierID = *patch.SupplierID
			batch.SupplierName = supplier.Name
		}
		if patch.Price != nil {
			batch.Price = *patch.Price
		}
		if patch.Expiration != nil {
			batch.Expiration = *patch.Expiration
		}
		batch.UpdatedBy = patch.UpdatedBy

		// Re-chequeo de la tripleta contra los demás lotes activos del producto
		if patch.Barcode != nil || patch.SupplierID != nil || patch.Expiration != nil {
			active, err := batchRepo.ListByProduct(batch.ProductID, false)
			if err != nil {
				return err
			}
			others := make([]*entity.Batch, 0, len(active))
			for _, b := range active {
				if b.ID != batch.ID {
					others = append(others, b)
				}
			}
			if domledger.CheckDuplicate(batch.Key(), others) {
				return &domain.DuplicateBatchError{
					ProductID:  batch.ProductID,
					Barcode:    batch.Barcode,
					SupplierID: batch.SupplierID,
					Expiration: batch.Expiration,
				}
			}
		}

		updated = batch
		return batchRepo.UpdateMetadata(batch)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Archive marca el lote como archivado (borrado lógico). Idempotente: archivar
// un lote ya archivado no es error. Los lotes archivados quedan fuera del
// agregador y del motor de alertas pero se conservan para auditoría.
func (uc *BatchUseCase) Archive(ctx context.Context, id int64, actor string) error {
	return uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository) error {
		batch, err := batchRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if batch.Archived {
			return nil
		}
		return batchRepo.SetArchived(id, true, actor)
	})
}

// Restore reactiva un lote archivado. Antes de reactivar vuelve a correr la
// guardia de duplicados contra los lotes activos actuales del producto: otro
// lote con la misma tripleta pudo haberse creado mientras estuvo archivado.
func (uc *BatchUseCase) Restore(ctx context.Context, id int64, actor string) error {
	return uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository) error {
		batch, err := batchRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		if !batch.Archived {
			return nil
		}

		active, err := batchRepo.ListByProduct(batch.ProductID, false)
		if err != nil {
			return err
		}
		if domledger.CheckDuplicate(batch.Key(), active) {
			return &domain.DuplicateBatchError{
				ProductID:  batch.ProductID,
				Barcode:    batch.Barcode,
				SupplierID: batch.SupplierID,
				Expiration: batch.Expiration,
			}
		}
		return batchRepo.SetArchived(id, false, actor)
	})
}

// HardDelete borra físicamente un lote. Operación administrativa fuera de las
// garantías del libro; el flujo normal es Archive.
func (uc *BatchUseCase) HardDelete(ctx context.Context, id int64) error {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	return uc.batchRepo.Delete(id)
}

// List devuelve los lotes filtrados por estado de archivo junto con el total
// histórico de entradas de inventario. Toda lectura pasa por el motor de alertas.
func (uc *BatchUseCase) List(ctx context.Context, archived bool) ([]*entity.Batch, int64, error) {
	batches, err := uc.batchRepo.List(archived)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.batchRepo.CountAll()
	if err != nil {
		return nil, 0, err
	}
	if !archived {
		uc.alerts.Observe(batches)
	}
	return batches, total, nil
}

// ListByProduct devuelve los lotes de un producto para el drill-down de la consola.
func (uc *BatchUseCase) ListByProduct(ctx context.Context, productID int64, includeArchived bool) ([]*entity.Batch, error) {
	batches, err := uc.batchRepo.ListByProduct(productID, includeArchived)
	if err != nil {
		return nil, err
	}
	uc.alerts.Observe(batches)
	return batches, nil
}
