package barcode

import (
	"strings"

	"github.com/google/uuid"
)

// Longitudes permitidas para el token de código de barras.
const (
	MinLength     = 8
	MaxLength     = 12
	DefaultLength = 12
)

// Generate produce un token de código de barras de n caracteres hexadecimales
// a partir de un UUID v4 sin guiones. n se ajusta al rango [MinLength, MaxLength].
// Es una función pura respecto del inventario: el libro solo valida unicidad,
// nunca genera identificadores por sí mismo.
func Generate(n int) string {
	if n < MinLength {
		n = MinLength
	}
	if n > MaxLength {
		n = MaxLength
	}
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return token[:n]
}

// Default genera un token con la longitud por defecto.
func Default() string {
	return Generate(DefaultLength)
}
