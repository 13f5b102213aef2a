package usecase

import (
	"strings"

	"github.com/clinivet/clinivet-api/internal/domain"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/clinivet/clinivet-api/internal/domain/repository"
)

// ReferenceUseCase CRUD de entidades de referencia nombradas (marcas, categorías,
// unidades, genéricos). Una capacidad genérica {id, name} con crear / renombrar /
// archivar / restaurar, en lugar de cuatro módulos duplicados.
type ReferenceUseCase struct {
	refRepo repository.ReferenceRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(refRepo repository.ReferenceRepository) *ReferenceUseCase {
	return &ReferenceUseCase{refRepo: refRepo}
}

func validateKindAndName(kind entity.ReferenceKind, name string) error {
	if !entity.ValidReferenceKind(kind) {
		return &domain.ValidationError{Field: "kind", Reason: "no es una clase de referencia conocida"}
	}
	if strings.TrimSpace(name) == "" {
		return &domain.ValidationError{Field: "name", Reason: "es obligatorio"}
	}
	return nil
}

// Create crea una referencia nombrada.
func (uc *ReferenceUseCase) Create(kind entity.ReferenceKind, name string) (*entity.Reference, error) {
	if err := validateKindAndName(kind, name); err != nil {
		return nil, err
	}
	ref := &entity.Reference{Name: strings.TrimSpace(name)}
	if err := uc.refRepo.Create(kind, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// Rename cambia el nombre de una referencia existente.
func (uc *ReferenceUseCase) Rename(kind entity.ReferenceKind, id int64, name string) (*entity.Reference, error) {
	if err := validateKindAndName(kind, name); err != nil {
		return nil, err
	}
	ref, err := uc.refRepo.GetByID(kind, id)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.refRepo.Rename(kind, id, strings.TrimSpace(name)); err != nil {
		return nil, err
	}
	ref.Name = strings.TrimSpace(name)
	return ref, nil
}

// SetArchived archiva o restaura una referencia.
func (uc *ReferenceUseCase) SetArchived(kind entity.ReferenceKind, id int64, archived bool) error {
	if !entity.ValidReferenceKind(kind) {
		return &domain.ValidationError{Field: "kind", Reason: "no es una clase de referencia conocida"}
	}
	ref, err := uc.refRepo.GetByID(kind, id)
	if err != nil {
		return err
	}
	if ref == nil {
		return domain.ErrNotFound
	}
	return uc.refRepo.SetArchived(kind, id, archived)
}

// List lista las referencias de una clase.
func (uc *ReferenceUseCase) List(kind entity.ReferenceKind, includeArchived bool) ([]*entity.Reference, error) {
	if !entity.ValidReferenceKind(kind) {
		return nil, &domain.ValidationError{Field: "kind", Reason: "no es una clase de referencia conocida"}
	}
	return uc.refRepo.List(kind, includeArchived)
}
