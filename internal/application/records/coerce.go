// Package records convierte las filas dinámicas del Resource Gateway en las
// entidades tipadas del dominio. Toda coerción (strings numéricos, ids numéricos,
// timestamps) ocurre aquí, inmediatamente después de la llamada al gateway.
package records

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

// FieldError valor de una columna que no se pudo convertir.
type FieldError struct {
	Column string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("columna %q: %s (valor %v)", e.Column, e.Reason, e.Value)
}

// String devuelve la columna como texto; nil → "".
func String(row repository.Row, col string) string {
	switch v := row[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ID devuelve la columna id normalizada a texto; es obligatoria.
func ID(row repository.Row) (string, error) {
	id := String(row, "id")
	if id == "" {
		return "", &FieldError{Column: "id", Value: row["id"], Reason: "requerido"}
	}
	return id, nil
}

// Decimal acepta números JSON, strings numéricos y decimales; nil → 0.
func Decimal(row repository.Row, col string) (decimal.Decimal, error) {
	switch v := row[col].(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, &FieldError{Column: col, Value: v, Reason: "no es numérico"}
		}
		return d, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, &FieldError{Column: col, Value: v, Reason: "no es numérico"}
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Zero, &FieldError{Column: col, Value: v, Reason: "tipo no soportado"}
	}
}

// Int acepta enteros como número JSON o string; nil → 0.
func Int(row repository.Row, col string) (int, error) {
	switch v := row[col].(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, &FieldError{Column: col, Value: v, Reason: "no es entero"}
		}
		return int(v), nil
	default:
		d, err := Decimal(row, col)
		if err != nil {
			return 0, err
		}
		if !d.IsInteger() {
			return 0, &FieldError{Column: col, Value: v, Reason: "no es entero"}
		}
		return int(d.IntPart()), nil
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02",
}

// Time acepta timestamps RFC 3339 (con o sin zona); nil/"" → cero.
func Time(row repository.Row, col string) (time.Time, error) {
	switch v := row[col].(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case string:
		if v == "" {
			return time.Time{}, nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, &FieldError{Column: col, Value: v, Reason: "timestamp inválido"}
	default:
		return time.Time{}, &FieldError{Column: col, Value: v, Reason: "tipo no soportado"}
	}
}

// Ref lee el campo expandido table.field. Devuelve nil si la relación no vino
// (FK vacía o colgante) en lugar de fallar.
func Ref(row repository.Row, table, field string) *entity.Ref {
	var nested map[string]any
	switch v := row[table].(type) {
	case map[string]any:
		nested = v
	case repository.Row:
		nested = v
	case []any:
		if len(v) > 0 {
			nested, _ = v[0].(map[string]any)
		}
	}
	if nested == nil {
		return nil
	}
	return &entity.Ref{Name: String(nested, field)}
}

// DecodeAll aplica fn a cada fila; falla con la primera fila inválida.
func DecodeAll[T any](rows []repository.Row, fn func(repository.Row) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, r := range rows {
		v, err := fn(r)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
