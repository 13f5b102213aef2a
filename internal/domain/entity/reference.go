package entity

import "time"

// ReferenceKind clase de entidad de referencia nombrada.
// Marcas, categorías, unidades de medida y genéricos comparten la misma forma
// {id, name}; una sola capacidad CRUD en lugar de cuatro módulos casi idénticos.
type ReferenceKind string

const (
	RefBrand    ReferenceKind = "brands"
	RefCategory ReferenceKind = "categories"
	RefUnit     ReferenceKind = "units"
	RefGeneric  ReferenceKind = "generics"
)

// ValidReferenceKind indica si el kind corresponde a una tabla conocida.
func ValidReferenceKind(k ReferenceKind) bool {
	switch k {
	case RefBrand, RefCategory, RefUnit, RefGeneric:
		return true
	}
	return false
}

// Reference entidad de referencia nombrada (marca, categoría, unidad o genérico).
type Reference struct {
	ID        int64
	Name      string
	Archived  bool
	CreatedAt time.Time
}
