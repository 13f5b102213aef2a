package bus

import (
	"github.com/asaskevich/EventBus"
	"github.com/clinivet/clinivet-api/internal/application/ledger"
	"github.com/clinivet/clinivet-api/pkg/logger"
)

// Tópico del bus para alertas de stock.
const TopicStockAlert = "ledger:stock_alert"

var _ ledger.Notifier = (*StockNotifier)(nil)

// StockNotifier publica las notificaciones del motor de alertas en un bus de
// eventos en proceso. Los consumidores (capa de UI, websockets, correo) se
// suscriben al tópico; la entrega es asíncrona y nunca bloquea al libro.
type StockNotifier struct {
	bus EventBus.Bus
	log *logger.Logger
}

// NewStockNotifier construye el notificador con su propio bus.
func NewStockNotifier(log *logger.Logger) *StockNotifier {
	return &StockNotifier{
		bus: EventBus.New(),
		log: log.Component("stock-notifier"),
	}
}

// Publish emite la notificación al tópico de alertas (fan-out asíncrono).
func (n *StockNotifier) Publish(event ledger.Notification) {
	n.log.Info().
		Str("severity", event.Severity).
		Int64("product_id", event.ProductID).
		Int64("quantity", event.Quantity).
		Str("message", event.Message).
		Msg("notificación de stock publicada")
	n.bus.Publish(TopicStockAlert, event)
}

// Subscribe registra un consumidor de alertas; los callbacks se ejecutan en
// goroutines del bus.
func (n *StockNotifier) Subscribe(fn func(ledger.Notification)) error {
	return n.bus.SubscribeAsync(TopicStockAlert, fn, false)
}

// Unsubscribe retira un consumidor del tópico.
func (n *StockNotifier) Unsubscribe(fn func(ledger.Notification)) error {
	return n.bus.Unsubscribe(TopicStockAlert, fn)
}
