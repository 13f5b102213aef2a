package ledger

import (
	"context"

	"github.com/clinivet/clinivet-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de lotes atado a esa tx. Garantiza la atomicidad del chequeo
// cantidad + delta >= 0 y de la validación de duplicados en el create.
type TxRunner interface {
	Run(ctx context.Context, fn func(batchRepo repository.BatchRepository) error) error
}

// Notifier puerto de salida para las alertas de stock. La entrega y la
// presentación (toasts, websockets) quedan fuera del libro.
type Notifier interface {
	Publish(n Notification)
}
