package postgres

import (
	"context"
	"fmt"

	"github.com/clinivet/clinivet-api/internal/application/ledger"
	"github.com/clinivet/clinivet-api/internal/domain/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con un repositorio de lotes atado a la
// tx y hace Commit o Rollback. El bloqueo de fila (GetForUpdate) vive mientras
// dure la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(batchRepo repository.BatchRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batchRepo := NewBatchRepository(tx)

	if err := fn(batchRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
