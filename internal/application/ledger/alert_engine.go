package ledger

import (
	"fmt"
	"sync"

	"github.com/clinivet/clinivet-api/internal/domain/entity"
	domledger "github.com/clinivet/clinivet-api/internal/domain/ledger"
	"github.com/clinivet/clinivet-api/pkg/logger"
)

// Severidades de notificación.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notification evento de alerta de stock emitido hacia la capa de UI.
type Notification struct {
	Severity  string               `json:"severity"`
	ProductID int64                `json:"product_id"`
	BatchID   int64                `json:"batch_id"`
	Quantity  int64                `json:"quantity"`
	Level     domledger.StockLevel `json:"level"`
	Message   string               `json:"message"`
}

// pairKey par (producto, cantidad) observado; la deduplicación es por par,
// no por estado: una caída de 5 a 3 dentro de LOW_STOCK vuelve a alertar.
type pairKey struct {
	productID int64
	quantity  int64
}

// AlertEngine observa cantidades de lotes y emite a lo sumo una notificación por
// par (producto, cantidad) visto. El set de deduplicación vive en el proceso y
// nunca se persiste ni se comparte entre sesiones; es estado explícito e
// inyectable, no un singleton escondido. Solo observa: jamás bloquea ni rechaza
// operaciones del Stock Mutator.
type AlertEngine struct {
	threshold int64
	notifier  Notifier
	log       *logger.Logger

	mu   sync.Mutex
	seen map[pairKey]struct{}
}

// NewAlertEngine construye el motor con el umbral de stock bajo (<=0 usa el por defecto).
func NewAlertEngine(threshold int64, notifier Notifier, log *logger.Logger) *AlertEngine {
	return &AlertEngine{
		threshold: threshold,
		notifier:  notifier,
		log:       log.Component("alert-engine"),
		seen:      make(map[pairKey]struct{}),
	}
}

// Observe inspecciona un conjunto de lotes (tras una lectura o un delta aplicado).
// Lotes archivados no se evalúan.
func (e *AlertEngine) Observe(batches []*entity.Batch) {
	for _, b := range batches {
		e.ObserveBatch(b)
	}
}

// ObserveBatch evalúa un lote: registra el par (producto, cantidad) y, si es la
// primera vez que se ve y el estado amerita alerta, publica la notificación.
func (e *AlertEngine) ObserveBatch(b *entity.Batch) {
	if b == nil || b.Archived {
		return
	}

	key := pairKey{productID: b.ProductID, quantity: b.Quantity}

	e.mu.Lock()
	if _, ok := e.seen[key]; ok {
		e.mu.Unlock()
		return
	}
	e.seen[key] = struct{}{}
	e.mu.Unlock()

	level := domledger.Classify(b.Quantity, e.threshold)
	if !level.Alertable() {
		return
	}

	n := Notification{
		ProductID: b.ProductID,
		BatchID:   b.ID,
		Quantity:  b.Quantity,
		Level:     level,
	}
	supplier := b.SupplierName
	if supplier == "" {
		supplier = "proveedor desconocido"
	}
	product := b.ProductName
	if product == "" {
		product = fmt.Sprintf("producto %d", b.ProductID)
	}
	switch level {
	case domledger.OutOfStock:
		n.Severity = SeverityError
		n.Message = fmt.Sprintf("%s de %s se quedó sin stock", product, supplier)
	case domledger.LowStock:
		n.Severity = SeverityWarning
		n.Message = fmt.Sprintf("%s de %s tiene stock bajo (%d unidades)", product, supplier, b.Quantity)
	}

	e.log.Warn().
		Int64("product_id", b.ProductID).
		Int64("batch_id", b.ID).
		Int64("quantity", b.Quantity).
		Str("level", string(level)).
		Msg("alerta de stock")

	if e.notifier != nil {
		e.notifier.Publish(n)
	}
}

// Reset limpia el set de deduplicación (nueva sesión de observación).
func (e *AlertEngine) Reset() {
	e.mu.Lock()
	e.seen = make(map[pairKey]struct{})
	e.mu.Unlock()
}
