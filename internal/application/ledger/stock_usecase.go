package ledger

import (
	"context"
	"sync"

	"github.com/clinivet/clinivet-api/internal/domain"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/clinivet/clinivet-api/internal/domain/repository"
)

// MaxIdempotencyEntries tope del registro de claves de idempotencia; al
// superarlo se desaloja la clave más antigua (los reintentos llegan en
// segundos, no en miles de operaciones).
const MaxIdempotencyEntries = 4096

// idemEntry desenlace de una clave de idempotencia. done se cierra cuando la
// primera llamada con la clave termina; batch o err quedan fijados antes.
type idemEntry struct {
	done  chan struct{}
	batch *entity.Batch
	err   error
}

// StockUseCase el Stock Mutator: aplica deltas con signo sobre la cantidad de un
// lote dentro de una transacción con bloqueo de fila (SELECT FOR UPDATE), de modo
// que el chequeo de no-negatividad y la escritura son atómicos por petición.
type StockUseCase struct {
	txRunner TxRunner
	alerts   *AlertEngine

	// Registro de claves de idempotencia (local al proceso, acotado).
	// La clave se reserva bajo el lock ANTES de abrir la transacción: un
	// reintento concurrente con la misma clave espera el desenlace de la
	// primera llamada en vez de volver a aplicar el delta. Si la primera
	// falla, la reserva se libera y un reintento posterior puede aplicar.
	mu      sync.Mutex
	applied map[string]*idemEntry
	order   []string
}

// NewStockUseCase construye el mutador de stock.
func NewStockUseCase(txRunner TxRunner, alerts *AlertEngine) *StockUseCase {
	return &StockUseCase{
		txRunner: txRunner,
		alerts:   alerts,
		applied:  make(map[string]*idemEntry),
	}
}

// ApplyDelta aplica un delta con signo a la cantidad del lote.
//
// Precondición: quantity + delta >= 0; si se viola, falla con
// InsufficientStockError (cantidad actual y delta solicitado) sin mutar nada.
// Un delta positivo es reposición y también incrementa total_count; un delta
// negativo es una corrección y deja total_count intacto (las ventas las
// registra el subsistema de órdenes vía item_sold, no esta operación).
// idemKey vacío desactiva la deduplicación de reintentos.
func (uc *StockUseCase) ApplyDelta(ctx context.Context, batchID, delta int64, idemKey, actor string) (*entity.Batch, error) {
	if idemKey == "" {
		updated, err := uc.apply(ctx, batchID, delta, actor)
		if err != nil {
			return nil, err
		}
		uc.alerts.ObserveBatch(updated)
		return updated, nil
	}

	uc.mu.Lock()
	if prev, ok := uc.applied[idemKey]; ok {
		uc.mu.Unlock()
		// Clave ya reservada: esperar el desenlace de la primera llamada y
		// reutilizarlo sin tocar el lote.
		<-prev.done
		if prev.err != nil {
			return nil, prev.err
		}
		copied := *prev.batch
		return &copied, nil
	}
	entry := &idemEntry{done: make(chan struct{})}
	uc.applied[idemKey] = entry
	uc.order = append(uc.order, idemKey)
	uc.evictLocked()
	uc.mu.Unlock()

	updated, err := uc.apply(ctx, batchID, delta, actor)
	if err != nil {
		uc.mu.Lock()
		uc.releaseLocked(idemKey, entry)
		uc.mu.Unlock()
		entry.err = err
		close(entry.done)
		return nil, err
	}

	copied := *updated
	entry.batch = &copied
	close(entry.done)

	uc.alerts.ObserveBatch(updated)
	return updated, nil
}

// apply ejecuta el delta dentro de la transacción con bloqueo de fila.
func (uc *StockUseCase) apply(ctx context.Context, batchID, delta int64, actor string) (*entity.Batch, error) {
	var updated *entity.Batch
	err := uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository) error {
		batch, err := batchRepo.GetForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil || batch.Archived {
			return domain.ErrNotFound
		}

		newQty := batch.Quantity + delta
		if newQty < 0 {
			return &domain.InsufficientStockError{
				BatchID: batchID,
				Current: batch.Quantity,
				Delta:   delta,
			}
		}

		batch.Quantity = newQty
		if delta > 0 {
			batch.TotalCount += delta
		}
		batch.UpdatedBy = actor

		if err := batchRepo.UpdateQuantities(batchID, batch.Quantity, batch.TotalCount, actor); err != nil {
			return err
		}
		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// evictLocked desaloja las claves más antiguas cuando el registro supera el tope.
func (uc *StockUseCase) evictLocked() {
	for len(uc.order) > MaxIdempotencyEntries {
		oldest := uc.order[0]
		uc.order = uc.order[1:]
		delete(uc.applied, oldest)
	}
}

// releaseLocked libera la reserva de una clave si aún apunta a esta entrada
// (pudo haber sido desalojada y re-reservada por otra llamada).
func (uc *StockUseCase) releaseLocked(key string, entry *idemEntry) {
	if uc.applied[key] != entry {
		return
	}
	delete(uc.applied, key)
	for i, k := range uc.order {
		if k == key {
			uc.order = append(uc.order[:i], uc.order[i+1:]...)
			break
		}
	}
}
