package entity

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"time"
)

// Formato de fecha en el API (solo fecha, sin hora).
const expirationLayout = "2006-01-02"

// legacySentinel el cliente histórico enviaba "00" para "sin vencimiento".
const legacySentinel = "00"

// ExpirationDate fecha de vencimiento opcional de un lote.
// "Sin vencimiento" es un estado explícito (Valid=false), nunca un string vacío
// ni una fecha cero comparada por igualdad de texto. Dos fechas se comparan a
// nivel de día; "sin vencimiento" solo es igual a "sin vencimiento".
type ExpirationDate struct {
	Time  time.Time
	Valid bool
}

// NewExpiration crea una fecha de vencimiento normalizada al día (UTC).
func NewExpiration(t time.Time) ExpirationDate {
	y, m, d := t.Date()
	return ExpirationDate{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// NoExpiration representa la ausencia de fecha de vencimiento.
func NoExpiration() ExpirationDate {
	return ExpirationDate{}
}

// ParseExpiration interpreta el valor recibido por el API: vacío, null o el
// sentinel histórico "00" significan "sin vencimiento".
func ParseExpiration(s string) (ExpirationDate, error) {
	if s == "" || s == legacySentinel {
		return NoExpiration(), nil
	}
	t, err := time.Parse(expirationLayout, s)
	if err != nil {
		return ExpirationDate{}, fmt.Errorf("fecha de vencimiento inválida %q: %w", s, err)
	}
	return NewExpiration(t), nil
}

// Equal compara a nivel de día. Sin vencimiento == sin vencimiento; nunca igual a una fecha real.
func (e ExpirationDate) Equal(other ExpirationDate) bool {
	if !e.Valid || !other.Valid {
		return e.Valid == other.Valid
	}
	y1, m1, d1 := e.Time.Date()
	y2, m2, d2 := other.Time.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// String para mensajes de error y logs.
func (e ExpirationDate) String() string {
	if !e.Valid {
		return "sin vencimiento"
	}
	return e.Time.Format(expirationLayout)
}

// MarshalJSON emite la fecha como "YYYY-MM-DD" o null si no hay vencimiento.
func (e ExpirationDate) MarshalJSON() ([]byte, error) {
	if !e.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + e.Time.Format(expirationLayout) + `"`), nil
}

// UnmarshalJSON acepta null, "", "00" (sentinel histórico) o "YYYY-MM-DD".
func (e *ExpirationDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*e = NoExpiration()
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	parsed, err := ParseExpiration(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Value implementa driver.Valuer: NULL en BD cuando no hay vencimiento.
func (e ExpirationDate) Value() (driver.Value, error) {
	if !e.Valid {
		return nil, nil
	}
	return e.Time, nil
}

// Scan implementa sql.Scanner: NULL en BD => sin vencimiento.
func (e *ExpirationDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*e = NoExpiration()
		return nil
	case time.Time:
		*e = NewExpiration(v)
		return nil
	case string:
		parsed, err := ParseExpiration(v)
		if err != nil {
			return err
		}
		*e = parsed
		return nil
	default:
		return fmt.Errorf("no se puede convertir %T a ExpirationDate", src)
	}
}
