package repository

import "github.com/clinivet/clinivet-api/internal/domain/entity"

// ReferenceRepository puerto de persistencia para entidades de referencia nombradas
// (marcas, categorías, unidades, genéricos). Una sola interfaz parametrizada por kind
// en lugar de cuatro repositorios casi idénticos.
type ReferenceRepository interface {
	Create(kind entity.ReferenceKind, ref *entity.Reference) error
	GetByID(kind entity.ReferenceKind, id int64) (*entity.Reference, error)
	Rename(kind entity.ReferenceKind, id int64, name string) error
	SetArchived(kind entity.ReferenceKind, id int64, archived bool) error
	List(kind entity.ReferenceKind, includeArchived bool) ([]*entity.Reference, error)
}
