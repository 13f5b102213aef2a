package ledger

// StockLevel estado de nivel de stock de un lote según su cantidad en mano.
type StockLevel string

const (
	OutOfStock StockLevel = "OUT_OF_STOCK" // cantidad == 0
	LowStock   StockLevel = "LOW_STOCK"    // 1 <= cantidad <= umbral
	InStock    StockLevel = "IN_STOCK"     // cantidad > umbral
)

// DefaultLowStockThreshold umbral histórico de la consola: 5 unidades o menos es stock bajo.
const DefaultLowStockThreshold int64 = 5

// Classify clasifica una cantidad con el umbral dado. Un umbral <= 0 usa el por defecto.
func Classify(quantity, threshold int64) StockLevel {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	switch {
	case quantity <= 0:
		return OutOfStock
	case quantity <= threshold:
		return LowStock
	default:
		return InStock
	}
}

// Alertable indica si el estado genera notificación (IN_STOCK nunca alerta).
func (s StockLevel) Alertable() bool {
	return s == OutOfStock || s == LowStock
}
