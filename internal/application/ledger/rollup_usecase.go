package ledger

import (
	"context"

	"github.com/clinivet/clinivet-api/internal/domain"
	domledger "github.com/clinivet/clinivet-api/internal/domain/ledger"
	"github.com/clinivet/clinivet-api/internal/domain/repository"
)

// RollupUseCase el Aggregator: vista de solo lectura sobre el Batch Store.
// Sin estado propio; el rollup se recalcula completo en cada lectura.
type RollupUseCase struct {
	batchRepo   repository.BatchRepository
	productRepo repository.ProductRepository
	alerts      *AlertEngine
}

// NewRollupUseCase construye el agregador.
func NewRollupUseCase(
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	alerts *AlertEngine,
) *RollupUseCase {
	return &RollupUseCase{batchRepo: batchRepo, productRepo: productRepo, alerts: alerts}
}

// GetProductRollup suma total_count, quantity e item_sold sobre los lotes
// activos del producto y devuelve la lista para drill-down, ordenada por nombre
// de proveedor. La lectura pasa por el motor de alertas.
func (uc *RollupUseCase) GetProductRollup(ctx context.Context, productID int64) (*domledger.Rollup, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	batches, err := uc.batchRepo.ListByProduct(productID, false)
	if err != nil {
		return nil, err
	}

	rollup := domledger.Aggregate(productID, batches)
	uc.alerts.Observe(rollup.Batches)
	return rollup, nil
}
