package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/clinivet/clinivet-api/internal/domain"
	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"github.com/clinivet/clinivet-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// Tablas por clase de referencia. El nombre de tabla se interpola solo desde
// esta lista cerrada, nunca desde la entrada del usuario.
var referenceTables = map[entity.ReferenceKind]string{
	entity.RefBrand:    "brands",
	entity.RefCategory: "categories",
	entity.RefUnit:     "unit_of_measurement",
	entity.RefGeneric:  "generic_cms",
}

// ReferenceRepo persistencia de entidades de referencia nombradas sobre PostgreSQL.
// Cuatro tablas con la misma forma {id, name, archived}, un solo adaptador.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

func referenceTable(kind entity.ReferenceKind) (string, error) {
	table, ok := referenceTables[kind]
	if !ok {
		return "", domain.ErrInvalidInput
	}
	return table, nil
}

// Create inserta una referencia y asigna su ID.
func (r *ReferenceRepo) Create(kind entity.ReferenceKind, ref *entity.Reference) error {
	table, err := referenceTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (name, archived, created_at) VALUES ($1, false, now()) RETURNING id, created_at`, table)
	err = r.q.QueryRow(context.Background(), query, ref.Name).Scan(&ref.ID, &ref.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// GetByID obtiene una referencia por ID. (nil, nil) si no existe.
func (r *ReferenceRepo) GetByID(kind entity.ReferenceKind, id int64) (*entity.Reference, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, name, archived, created_at FROM %s WHERE id = $1`, table)
	var ref entity.Reference
	err = r.q.QueryRow(context.Background(), query, id).Scan(&ref.ID, &ref.Name, &ref.Archived, &ref.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	return &ref, nil
}

// Rename cambia el nombre de la referencia.
func (r *ReferenceRepo) Rename(kind entity.ReferenceKind, id int64, name string) error {
	table, err := referenceTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET name = $2 WHERE id = $1`, table)
	cmd, err := r.q.Exec(context.Background(), query, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("rename %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetArchived archiva o restaura la referencia.
func (r *ReferenceRepo) SetArchived(kind entity.ReferenceKind, id int64, archived bool) error {
	table, err := referenceTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET archived = $2 WHERE id = $1`, table)
	cmd, err := r.q.Exec(context.Background(), query, id, archived)
	if err != nil {
		return fmt.Errorf("set archived %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista las referencias de una clase.
func (r *ReferenceRepo) List(kind entity.ReferenceKind, includeArchived bool) ([]*entity.Reference, error) {
	table, err := referenceTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, name, archived, created_at FROM %s`, table)
	if !includeArchived {
		query += ` WHERE archived = false`
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	var list []*entity.Reference
	for rows.Next() {
		var ref entity.Reference
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Archived, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		list = append(list, &ref)
	}
	return list, rows.Err()
}
