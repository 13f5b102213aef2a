package usecase

import (
	"github.com/clinivet/clinivet-api/internal/domain"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/clinivet/clinivet-api/internal/domain/repository"
)

// CatalogUseCase lecturas de datos maestros (productos y proveedores).
// Colaboradores externos del libro: solo lookup por id y listados para despliegue.
type CatalogUseCase struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(productRepo repository.ProductRepository, supplierRepo repository.SupplierRepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, supplierRepo: supplierRepo}
}

// GetProduct obtiene un producto por id.
func (uc *CatalogUseCase) GetProduct(id int64) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// ListProducts lista productos con paginación.
func (uc *CatalogUseCase) ListProducts(limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// GetSupplier obtiene un proveedor por id.
func (uc *CatalogUseCase) GetSupplier(id int64) (*entity.Supplier, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return supplier, nil
}

// ListSuppliers lista proveedores con paginación.
func (uc *CatalogUseCase) ListSuppliers(limit, offset int) ([]*entity.Supplier, error) {
	return uc.supplierRepo.List(limit, offset)
}
