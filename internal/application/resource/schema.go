// Package resource implementa el controlador genérico de páginas CRUD
// (products, categories, suppliers, stores): carga al montar, búsqueda local,
// formulario de alta/edición, confirmación de borrado y parcheo de la caché.
package resource

import (
	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

// Form valores del formulario tal como los escribió el usuario.
type Form map[string]string

// Authorizer fuente del rol actual (session.Store).
type Authorizer interface {
	IsAdmin() bool
}

// Lookup lista de opciones que se carga en paralelo al montar (ej. categorías
// para el selector de productos).
type Lookup struct {
	Key    string // clave en PageView.Options
	Entity string
	Label  string // columna mostrada
}

// Placement decide dónde queda una fila recién insertada en la caché.
type Placement[T any] struct {
	resort func([]T)
}

// Prepend inserta al inicio de la lista.
func Prepend[T any]() Placement[T] { return Placement[T]{} }

// Resorted inserta y reordena la lista completa con resort.
func Resorted[T any](resort func([]T)) Placement[T] {
	return Placement[T]{resort: resort}
}

// Schema contrato por entidad del controlador.
type Schema[T any] struct {
	Entity string
	Order  repository.Order
	Expand []repository.Expansion

	Lookups []Lookup
	// LoadErrorMessage reemplaza el mensaje del backend si falla la carga inicial.
	LoadErrorMessage string

	Decode     func(repository.Row) (T, error)
	ID         func(T) string
	SearchText func(T) []string

	Fields          []string
	Required        []string
	RequiredMessage string
	// Payload convierte el formulario en la fila a enviar; devuelve
	// *domain.ValidationError si algún valor no se puede interpretar.
	Payload func(Form) (repository.Row, error)
	FormOf  func(T) Form

	Placement Placement[T]
	Present   func(T) dto.ViewRow
}

func (s Schema[T]) emptyForm() Form {
	f := make(Form, len(s.Fields))
	for _, name := range s.Fields {
		f[name] = ""
	}
	return f
}

func (f Form) clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
