package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa un lote comprable de un producto (entrada individual del inventario).
// Quantity es el stock en mano y nunca baja de cero; TotalCount acumula todo lo que
// entró al lote (solo crece); ItemSold acumula unidades vendidas y lo incrementa el
// subsistema de órdenes, el libro solo lo reporta.
type Batch struct {
	ID         int64
	ProductID  int64
	SupplierID int64
	SKU        string
	Barcode    string
	Price      decimal.Decimal
	Quantity   int64
	TotalCount int64
	ItemSold   int64
	Expiration ExpirationDate
	Archived   bool
	CreatedAt  time.Time
	CreatedBy  string
	UpdatedBy  string

	// Nombres de despliegue resueltos por JOIN (solo lectura, no se persisten aquí).
	ProductName  string
	SupplierName string
}

// DedupKey la tripleta que identifica un lote dentro de un producto.
type DedupKey struct {
	Barcode    string
	SupplierID int64
	Expiration ExpirationDate
}

// Key devuelve la tripleta de deduplicación del lote.
func (b *Batch) Key() DedupKey {
	return DedupKey{Barcode: b.Barcode, SupplierID: b.SupplierID, Expiration: b.Expiration}
}

// SameKey compara la tripleta (barcode, supplier, expiration) a nivel de día.
func (k DedupKey) SameKey(other DedupKey) bool {
	return k.Barcode == other.Barcode &&
		k.SupplierID == other.SupplierID &&
		k.Expiration.Equal(other.Expiration)
}
