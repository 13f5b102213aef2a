package http

import (
	"github.com/clinivet/clinivet-api/internal/application/ledger"
	"github.com/clinivet/clinivet-api/internal/application/usecase"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BatchUC           *ledger.BatchUseCase
	StockUC           *ledger.StockUseCase
	RollupUC          *ledger.RollupUseCase
	CatalogUC         *usecase.CatalogUseCase
	ReferenceUC       *usecase.ReferenceUseCase
	LowStockThreshold int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Inventario: el núcleo del libro de stock
	inventoryHandler := NewInventoryHandler(deps.BatchUC, deps.StockUC, deps.RollupUC, deps.LowStockThreshold)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.ListInventory)
	inv.Post("/", inventoryHandler.CreateBatch)
	inv.Put("/:id", inventoryHandler.UpdateBatch)
	inv.Delete("/:id", inventoryHandler.DeleteBatch)
	inv.Post("/:id/stock", inventoryHandler.ApplyDelta)
	inv.Post("/:id/archive", inventoryHandler.ArchiveBatch)
	inv.Post("/:id/restore", inventoryHandler.RestoreBatch)

	// Datos maestros (solo lectura para el libro)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := api.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Get("/:id/rollup", inventoryHandler.GetProductRollup)

	suppliers := api.Group("/suppliers")
	suppliers.Get("/", catalogHandler.ListSuppliers)

	// Entidades de referencia nombradas (marcas, categorías, unidades, genéricos)
	referenceHandler := NewReferenceHandler(deps.ReferenceUC)
	refs := api.Group("/refs/:kind")
	refs.Get("/", referenceHandler.List)
	refs.Post("/", referenceHandler.Create)
	refs.Put("/:id", referenceHandler.Rename)
	refs.Post("/:id/archive", referenceHandler.Archive)
	refs.Post("/:id/restore", referenceHandler.Restore)
}
