package repository

import "github.com/clinivet/clinivet-api/internal/domain/entity"

// ProductRepository puerto de lectura de datos maestros de producto.
// El libro de inventario nunca escribe productos; solo los consulta para despliegue.
type ProductRepository interface {
	GetByID(id int64) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}

// SupplierRepository puerto de lectura de datos maestros de proveedor.
type SupplierRepository interface {
	GetByID(id int64) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
}
