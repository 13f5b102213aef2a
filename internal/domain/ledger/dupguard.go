package ledger

import "github.com/clinivet/clinivet-api/internal/domain/entity"

// CheckDuplicate predicado puro de deduplicación: true si algún lote activo del
// producto ya tiene exactamente la misma tripleta (barcode, supplier_id, expiration_date).
// "Sin vencimiento" solo empata con "sin vencimiento", nunca con una fecha real.
// Los lotes archivados no participan.
func CheckDuplicate(key entity.DedupKey, active []*entity.Batch) bool {
	return FindDuplicate(key, active) != nil
}

// FindDuplicate devuelve el lote activo que colisiona con la tripleta, o nil.
// Útil para construir el error con contexto del lote existente.
func FindDuplicate(key entity.DedupKey, active []*entity.Batch) *entity.Batch {
	for _, b := range active {
		if b.Archived {
			continue
		}
		if key.SameKey(b.Key()) {
			return b
		}
	}
	return nil
}
