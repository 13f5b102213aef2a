package domain

import (
	"errors"
	"fmt"

	"github.com/clinivet/clinivet-api/internal/domain/entity"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrDuplicateBatch    = errors.New("lote duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrConflict          = errors.New("conflicto con el estado actual")
)

// ValidationError entrada malformada: el caller debe corregir el campo, nunca se reintenta.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: campo %q %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// DuplicateBatchError viola la clave de deduplicación (barcode, supplier_id, expiration_date)
// entre lotes activos del mismo producto.
type DuplicateBatchError struct {
	ProductID  int64
	Barcode    string
	SupplierID int64
	Expiration entity.ExpirationDate
}

func (e *DuplicateBatchError) Error() string {
	return fmt.Sprintf("lote duplicado: producto %d ya tiene un lote activo con barcode %q, proveedor %d y vencimiento %s",
		e.ProductID, e.Barcode, e.SupplierID, e.Expiration)
}

func (e *DuplicateBatchError) Is(target error) bool { return target == ErrDuplicateBatch }

// InsufficientStockError el delta llevaría la cantidad por debajo de cero.
// Lleva la cantidad actual y el delta solicitado para que el caller pueda ajustar o abortar.
type InsufficientStockError struct {
	BatchID int64
	Current int64
	Delta   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: lote %d tiene %d unidades, delta solicitado %d",
		e.BatchID, e.Current, e.Delta)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }
