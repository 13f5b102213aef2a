package ledger

import (
	"sort"

	"github.com/clinivet/clinivet-api/internal/domain/entity"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Rollup vista agregada del stock de un producto sobre sus lotes activos.
// No tiene estado propio: se recalcula en cada lectura desde el Batch Store,
// así nunca puede divergir del conjunto de lotes.
type Rollup struct {
	ProductID  int64
	TotalCount int64
	Quantity   int64
	ItemSold   int64
	Batches    []*entity.Batch
}

// Aggregate suma TotalCount, Quantity e ItemSold sobre los lotes no archivados
// y devuelve la lista ordenada para despliegue: nombre de proveedor ascendente
// sin distinguir mayúsculas, empates por id ascendente. Función determinista pura.
func Aggregate(productID int64, batches []*entity.Batch) *Rollup {
	r := &Rollup{ProductID: productID}

	active := make([]*entity.Batch, 0, len(batches))
	for _, b := range batches {
		if b.Archived {
			continue
		}
		active = append(active, b)
		r.TotalCount += b.TotalCount
		r.Quantity += b.Quantity
		r.ItemSold += b.ItemSold
	}

	cl := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(active, func(i, j int) bool {
		if c := cl.CompareString(active[i].SupplierName, active[j].SupplierName); c != 0 {
			return c < 0
		}
		return active[i].ID < active[j].ID
	})

	r.Batches = active
	return r
}
