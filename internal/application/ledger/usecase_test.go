package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/clinivet/clinivet-api/internal/application/ledger"
	"github.com/clinivet/clinivet-api/internal/domain"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() ledger.CreateBatchInput {
	return ledger.CreateBatchInput{
		ProductID:  42,
		SupplierID: 7,
		SKU:        "AMX-001",
		Barcode:    "ABC123",
		Price:      decimal.NewFromFloat(12.50),
		Quantity:   10,
		Expiration: entity.NoExpiration(),
		CreatedBy:  "user-1",
	}
}

func TestCreate_InicializaContadores(t *testing.T) {
	env := newTestEnv()

	batch, err := env.batches.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	// quantity = total_count = stock inicial; item_sold arranca en 0
	assert.Equal(t, int64(10), batch.Quantity)
	assert.Equal(t, int64(10), batch.TotalCount)
	assert.Equal(t, int64(0), batch.ItemSold)
	assert.NotZero(t, batch.ID)
	assert.Equal(t, "Amoxicilina 500mg", batch.ProductName)
	assert.Equal(t, "VetPharma", batch.SupplierName)
}

func TestCreate_TripletaDuplicadaFalla(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)

	// Misma tripleta (barcode, supplier, sin vencimiento) => DuplicateBatchError
	in := validCreateInput()
	in.SKU = "AMX-002"
	_, err = env.batches.Create(ctx, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateBatch)

	var dup *domain.DuplicateBatchError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, int64(42), dup.ProductID)
	assert.Equal(t, "ABC123", dup.Barcode)
}

func TestCreate_CambiarUnComponenteDeLaTripletaPasa(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)

	// Distinto barcode
	in := validCreateInput()
	in.SKU = "AMX-002"
	in.Barcode = "XYZ789"
	_, err = env.batches.Create(ctx, in)
	assert.NoError(t, err)

	// Distinto proveedor
	in = validCreateInput()
	in.SKU = "AMX-003"
	in.SupplierID = 9
	_, err = env.batches.Create(ctx, in)
	assert.NoError(t, err)

	// Distinto vencimiento: una fecha real nunca empata con "sin vencimiento"
	in = validCreateInput()
	in.SKU = "AMX-004"
	in.Expiration = entity.NewExpiration(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC))
	_, err = env.batches.Create(ctx, in)
	assert.NoError(t, err)
}

func TestCreate_SKURepetidoFalla(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)

	in := validCreateInput()
	in.Barcode = "OTRO1234"
	_, err = env.batches.Create(ctx, in) // mismo SKU
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_Validaciones(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*ledger.CreateBatchInput)
		field  string
	}{
		{"sin producto", func(in *ledger.CreateBatchInput) { in.ProductID = 0 }, "product_id"},
		{"sin proveedor", func(in *ledger.CreateBatchInput) { in.SupplierID = 0 }, "supplier_id"},
		{"sin sku", func(in *ledger.CreateBatchInput) { in.SKU = "" }, "sku"},
		{"precio negativo", func(in *ledger.CreateBatchInput) { in.Price = decimal.NewFromInt(-1) }, "price"},
		{"cantidad negativa", func(in *ledger.CreateBatchInput) { in.Quantity = -5 }, "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validCreateInput()
			tc.mutate(&in)
			_, err := env.batches.Create(ctx, in)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestCreate_ProductoInexistenteEsNotFound(t *testing.T) {
	env := newTestEnv()
	in := validCreateInput()
	in.ProductID = 999
	_, err := env.batches.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateMetadata_NoTocaContadores(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)

	newPrice := decimal.NewFromFloat(15.75)
	newSKU := "AMX-900"
	updated, err := env.batches.UpdateMetadata(ctx, created.ID, ledger.MetadataPatch{
		SKU:       &newSKU,
		Price:     &newPrice,
		UpdatedBy: "user-2",
	})
	require.NoError(t, err)

	assert.Equal(t, "AMX-900", updated.SKU)
	assert.True(t, newPrice.Equal(updated.Price))
	// Los contadores no se mueven por un patch de metadatos
	assert.Equal(t, int64(10), updated.Quantity)
	assert.Equal(t, int64(10), updated.TotalCount)
	assert.Equal(t, int64(0), updated.ItemSold)
}

func TestUpdateMetadata_ReChequeaTripleta(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)

	in := validCreateInput()
	in.SKU = "AMX-002"
	in.Barcode = "XYZ789"
	second, err := env.batches.Create(ctx, in)
	require.NoError(t, err)

	// Cambiar el barcode del segundo a la tripleta del primero debe chocar
	collide := "ABC123"
	_, err = env.batches.UpdateMetadata(ctx, second.ID, ledger.MetadataPatch{Barcode: &collide})
	assert.ErrorIs(t, err, domain.ErrDuplicateBatch)
}

func TestUpdateMetadata_ProveedorInexistenteEsValidacion(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)

	// Proveedor inexistente en el patch: error de validación con el campo
	// ofendido, no un 404 indistinguible de "lote inexistente"
	bad := int64(999)
	_, err = env.batches.UpdateMetadata(ctx, created.ID, ledger.MetadataPatch{SupplierID: &bad})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "supplier_id", vErr.Field)
}

func TestUpdateMetadata_LoteArchivadoEsNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)
	require.NoError(t, env.batches.Archive(ctx, created.ID, "admin"))

	// Un lote archivado es inmutable: se trata como inexistente
	newSKU := "AMX-777"
	_, err = env.batches.UpdateMetadata(ctx, created.ID, ledger.MetadataPatch{SKU: &newSKU})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiveRestore_CicloConservaElRegistro(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)

	require.NoError(t, env.batches.Archive(ctx, created.ID, "admin"))
	archived, err := env.repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	require.NoError(t, env.batches.Restore(ctx, created.ID, "admin"))
	restored, err := env.repo.GetByID(created.ID)
	require.NoError(t, err)

	// Restaurado sin cambios salvo archived=false
	assert.False(t, restored.Archived)
	assert.Equal(t, created.SKU, restored.SKU)
	assert.Equal(t, created.Barcode, restored.Barcode)
	assert.Equal(t, created.Quantity, restored.Quantity)
	assert.Equal(t, created.TotalCount, restored.TotalCount)
}

func TestRestore_ConTripletaOcupadaFalla(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)
	require.NoError(t, env.batches.Archive(ctx, first.ID, "admin"))

	// Mientras estaba archivado se creó otro lote con la misma tripleta
	in := validCreateInput()
	in.SKU = "AMX-002"
	_, err = env.batches.Create(ctx, in)
	require.NoError(t, err)

	err = env.batches.Restore(ctx, first.ID, "admin")
	assert.ErrorIs(t, err, domain.ErrDuplicateBatch)
}

func TestArchive_EsIdempotente(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.batches.Create(ctx, validCreateInput())
	require.NoError(t, err)

	require.NoError(t, env.batches.Archive(ctx, created.ID, "admin"))
	require.NoError(t, env.batches.Archive(ctx, created.ID, "admin"))
}

func TestHardDelete_Inexistente(t *testing.T) {
	env := newTestEnv()
	err := env.batches.HardDelete(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetProductRollup_SumaSoloActivos(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.repo.seed(&entity.Batch{ProductID: 42, SupplierID: 7, SKU: "A", Barcode: "B1", Quantity: 4, TotalCount: 10, ItemSold: 6, SupplierName: "VetPharma"})
	env.repo.seed(&entity.Batch{ProductID: 42, SupplierID: 9, SKU: "B", Barcode: "B2", Quantity: 8, TotalCount: 8, ItemSold: 0, SupplierName: "Droguería Central"})
	env.repo.seed(&entity.Batch{ProductID: 42, SupplierID: 9, SKU: "C", Barcode: "B3", Quantity: 50, TotalCount: 50, Archived: true, SupplierName: "Droguería Central"})

	rollup, err := env.rollups.GetProductRollup(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(12), rollup.Quantity)
	assert.Equal(t, int64(18), rollup.TotalCount)
	assert.Equal(t, int64(6), rollup.ItemSold)
	require.Len(t, rollup.Batches, 2)
	// Orden por nombre de proveedor ascendente
	assert.Equal(t, "Droguería Central", rollup.Batches[0].SupplierName)
	assert.Equal(t, "VetPharma", rollup.Batches[1].SupplierName)
}

func TestGetProductRollup_ProductoInexistente(t *testing.T) {
	env := newTestEnv()
	_, err := env.rollups.GetProductRollup(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
