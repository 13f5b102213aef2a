package ledger_test

import (
	"context"
	"sync"
	"time"

	"github.com/clinivet/clinivet-api/internal/application/ledger"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/clinivet/clinivet-api/internal/domain/repository"
	"github.com/clinivet/clinivet-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria para los casos de uso del libro: repositorio de lotes,
// datos maestros, runner de transacciones y notificador que graba lo emitido.
// ──────────────────────────────────────────────────────────────────────────────

type memBatchRepo struct {
	mu      sync.Mutex
	nextID  int64
	batches map[int64]*entity.Batch
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{nextID: 1, batches: make(map[int64]*entity.Batch)}
}

func (r *memBatchRepo) seed(b *entity.Batch) *entity.Batch {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == 0 {
		b.ID = r.nextID
		r.nextID++
	} else if b.ID >= r.nextID {
		r.nextID = b.ID + 1
	}
	stored := *b
	r.batches[b.ID] = &stored
	return b
}

func (r *memBatchRepo) Create(batch *entity.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch.ID = r.nextID
	r.nextID++
	batch.CreatedAt = time.Now()
	stored := *batch
	r.batches[batch.ID] = &stored
	return nil
}

func (r *memBatchRepo) GetByID(id int64) (*entity.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *memBatchRepo) GetForUpdate(id int64) (*entity.Batch, error) {
	return r.GetByID(id)
}

func (r *memBatchRepo) UpdateMetadata(batch *entity.Batch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.batches[batch.ID]
	stored.SKU = batch.SKU
	stored.Barcode = batch.Barcode
	stored.SupplierID = batch.SupplierID
	stored.Price = batch.Price
	stored.Expiration = batch.Expiration
	stored.UpdatedBy = batch.UpdatedBy
	return nil
}

func (r *memBatchRepo) UpdateQuantities(id int64, quantity, totalCount int64, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.batches[id]
	stored.Quantity = quantity
	stored.TotalCount = totalCount
	stored.UpdatedBy = updatedBy
	return nil
}

func (r *memBatchRepo) SetArchived(id int64, archived bool, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.batches[id]
	stored.Archived = archived
	stored.UpdatedBy = updatedBy
	return nil
}

func (r *memBatchRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.batches, id)
	return nil
}

func (r *memBatchRepo) ListByProduct(productID int64, includeArchived bool) ([]*entity.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Batch
	for _, b := range r.batches {
		if b.ProductID != productID {
			continue
		}
		if b.Archived && !includeArchived {
			continue
		}
		copied := *b
		list = append(list, &copied)
	}
	return list, nil
}

func (r *memBatchRepo) List(archived bool) ([]*entity.Batch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Batch
	for _, b := range r.batches {
		if b.Archived == archived {
			copied := *b
			list = append(list, &copied)
		}
	}
	return list, nil
}

func (r *memBatchRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.batches)), nil
}

func (r *memBatchRepo) ExistsSKU(sku string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.batches {
		if b.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

// memTxRunner ejecuta el callback directamente contra el repo en memoria.
type memTxRunner struct {
	repo *memBatchRepo
}

func (t *memTxRunner) Run(_ context.Context, fn func(batchRepo repository.BatchRepository) error) error {
	return fn(t.repo)
}

// memCatalog datos maestros fijos para producto y proveedor.
type memCatalog struct {
	products  map[int64]*entity.Product
	suppliers map[int64]*entity.Supplier
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		products: map[int64]*entity.Product{
			42: {ID: 42, Name: "Amoxicilina 500mg"},
			77: {ID: 77, Name: "Vacuna antirrábica"},
		},
		suppliers: map[int64]*entity.Supplier{
			7: {ID: 7, Name: "VetPharma"},
			9: {ID: 9, Name: "Droguería Central"},
		},
	}
}

func (c *memCatalog) GetByID(id int64) (*entity.Product, error) { return c.products[id], nil }
func (c *memCatalog) List(limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range c.products {
		list = append(list, p)
	}
	return list, nil
}

type memSuppliers struct{ c *memCatalog }

func (s *memSuppliers) GetByID(id int64) (*entity.Supplier, error) { return s.c.suppliers[id], nil }
func (s *memSuppliers) List(limit, offset int) ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	for _, sup := range s.c.suppliers {
		list = append(list, sup)
	}
	return list, nil
}

// recordingNotifier acumula las notificaciones publicadas.
type recordingNotifier struct {
	mu     sync.Mutex
	events []ledger.Notification
}

func (n *recordingNotifier) Publish(event ledger.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) all() []ledger.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ledger.Notification, len(n.events))
	copy(out, n.events)
	return out
}

// testEnv cablea un juego completo de casos de uso sobre los dobles.
type testEnv struct {
	repo     *memBatchRepo
	catalog  *memCatalog
	notifier *recordingNotifier
	alerts   *ledger.AlertEngine
	batches  *ledger.BatchUseCase
	stock    *ledger.StockUseCase
	rollups  *ledger.RollupUseCase
}

func newTestEnv() *testEnv {
	repo := newMemBatchRepo()
	catalog := newMemCatalog()
	notifier := &recordingNotifier{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	alerts := ledger.NewAlertEngine(5, notifier, log)
	tx := &memTxRunner{repo: repo}
	suppliers := &memSuppliers{c: catalog}
	return &testEnv{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		alerts:   alerts,
		batches:  ledger.NewBatchUseCase(tx, repo, catalog, suppliers, alerts),
		stock:    ledger.NewStockUseCase(tx, alerts),
		rollups:  ledger.NewRollupUseCase(repo, catalog, alerts),
	}
}
