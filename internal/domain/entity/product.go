package entity

import "time"

// Product datos maestros de producto (colaborador externo: el libro de inventario
// solo los lee para despliegue, nunca los escribe).
type Product struct {
	ID         int64
	Name       string
	Generic    string
	BrandID    int64
	CategoryID int64
	UnitID     int64
	Archived   bool
	CreatedAt  time.Time
}

// Supplier datos maestros de proveedor (colaborador externo, solo lectura).
type Supplier struct {
	ID        int64
	Name      string
	Contact   string
	Archived  bool
	CreatedAt time.Time
}
