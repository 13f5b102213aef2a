package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinivet/clinivet-api/internal/domain"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/clinivet/clinivet-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación del Batch Store sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `
	i.id, i.product_id, i.supplier_id, i.sku, i.barcode, i.price,
	i.quantity, i.total_count, i.item_sold, i.expiration_date, i.archived,
	i.created_at, i.created_by, COALESCE(i.updated_by, ''),
	COALESCE(p.product_name, ''), COALESCE(s.supplier_name, '')`

const batchJoins = `
	FROM inventory i
	LEFT JOIN products p ON p.id = i.product_id
	LEFT JOIN suppliers s ON s.id = i.supplier_id`

// Índice único parcial sobre (product_id, barcode, supplier_id, expiration_date)
// de los lotes activos (migrations/schema.sql). Es el respaldo en BD de la
// guardia de duplicados: dos creates concurrentes de la misma tripleta pueden
// pasar ambos el SELECT de la guardia; el índice hace fallar al segundo.
const activeTripleIndex = "inventory_active_triple_idx"

// mapBatchUniqueError traduce una violación de unicidad del insert/update de
// lotes a su error de dominio: la tripleta activa se reporta con todo su
// contexto, cualquier otro constraint (sku) como duplicado genérico.
func mapBatchUniqueError(err error, batch *entity.Batch) error {
	if constraintName(err) == activeTripleIndex {
		return &domain.DuplicateBatchError{
			ProductID:  batch.ProductID,
			Barcode:    batch.Barcode,
			SupplierID: batch.SupplierID,
			Expiration: batch.Expiration,
		}
	}
	return domain.ErrDuplicate
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.ProductID, &b.SupplierID, &b.SKU, &b.Barcode, &b.Price,
		&b.Quantity, &b.TotalCount, &b.ItemSold, &b.Expiration, &b.Archived,
		&b.CreatedAt, &b.CreatedBy, &b.UpdatedBy,
		&b.ProductName, &b.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create persiste un lote nuevo y asigna el ID generado por la BD.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	query := `
		INSERT INTO inventory (product_id, supplier_id, sku, barcode, price, quantity, total_count, item_sold, expiration_date, archived, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, now(), $10)
		RETURNING id, created_at`
	err := r.q.QueryRow(context.Background(), query,
		batch.ProductID, batch.SupplierID, batch.SKU, batch.Barcode, batch.Price,
		batch.Quantity, batch.TotalCount, batch.ItemSold, batch.Expiration, batch.CreatedBy,
	).Scan(&batch.ID, &batch.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return mapBatchUniqueError(err, batch)
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID con nombres de despliegue. (nil, nil) si no existe.
func (r *BatchRepo) GetByID(id int64) (*entity.Batch, error) {
	query := `SELECT` + batchColumns + batchJoins + ` WHERE i.id = $1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// GetForUpdate obtiene el lote bloqueando la fila (SELECT FOR UPDATE OF i).
// Solo tiene sentido dentro de una transacción.
func (r *BatchRepo) GetForUpdate(id int64) (*entity.Batch, error) {
	query := `SELECT` + batchColumns + batchJoins + ` WHERE i.id = $1 FOR UPDATE OF i`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch for update: %w", err)
	}
	return b, nil
}

// UpdateMetadata actualiza los metadatos editables del lote. Nunca toca los contadores.
func (r *BatchRepo) UpdateMetadata(batch *entity.Batch) error {
	query := `
		UPDATE inventory
		SET sku = $2, barcode = $3, supplier_id = $4, price = $5, expiration_date = $6, updated_by = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.SKU, batch.Barcode, batch.SupplierID, batch.Price, batch.Expiration, batch.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapBatchUniqueError(err, batch)
		}
		return fmt.Errorf("update batch metadata: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateQuantities escribe los contadores ya validados por el Stock Mutator.
func (r *BatchRepo) UpdateQuantities(id int64, quantity, totalCount int64, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory SET quantity = $2, total_count = $3, updated_by = $4 WHERE id = $1`,
		id, quantity, totalCount, updatedBy,
	)
	if err != nil {
		return fmt.Errorf("update batch quantities: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetArchived archiva o restaura un lote.
func (r *BatchRepo) SetArchived(id int64, archived bool, updatedBy string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE inventory SET archived = $2, updated_by = $3 WHERE id = $1`,
		id, archived, updatedBy,
	)
	if err != nil {
		// Restaurar puede chocar con el índice de tripleta activa si entre la
		// guardia y el update apareció otro lote con la misma tripleta.
		if isUniqueViolation(err) && constraintName(err) == activeTripleIndex {
			return domain.ErrDuplicateBatch
		}
		return fmt.Errorf("set batch archived: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra físicamente un lote (operación administrativa).
func (r *BatchRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

// ListByProduct lista los lotes de un producto con nombres de despliegue.
func (r *BatchRepo) ListByProduct(productID int64, includeArchived bool) ([]*entity.Batch, error) {
	query := `SELECT` + batchColumns + batchJoins + ` WHERE i.product_id = $1`
	if !includeArchived {
		query += ` AND i.archived = false`
	}
	query += ` ORDER BY i.id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list batches by product: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

// List lista todos los lotes por estado de archivo.
func (r *BatchRepo) List(archived bool) ([]*entity.Batch, error) {
	query := `SELECT` + batchColumns + batchJoins + ` WHERE i.archived = $1 ORDER BY i.id`
	rows, err := r.q.Query(context.Background(), query, archived)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	return collectBatches(rows)
}

func collectBatches(rows pgx.Rows) ([]*entity.Batch, error) {
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// CountAll devuelve el total histórico de entradas de inventario (incluye archivados).
func (r *BatchRepo) CountAll() (int64, error) {
	var total int64
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM inventory`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count inventory: %w", err)
	}
	return total, nil
}

// ExistsSKU indica si ya hay un lote con ese SKU.
func (r *BatchRepo) ExistsSKU(sku string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM inventory WHERE sku = $1)`, sku,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sku: %w", err)
	}
	return exists, nil
}
