package repository

import "context"

// Row fila tal como la devuelve el backend. Las relaciones expandidas aparecen
// bajo el nombre de la tabla relacionada (row["categories"] = map{"name": ...})
// y valen nil si la FK está vacía o colgante.
type Row map[string]any

// Expansion embebe un campo de la fila relacionada vía FK en una lectura.
type Expansion struct {
	ForeignKey string // ej. category_id
	Table      string // ej. categories
	Field      string // ej. name
}

// Order orden por columna.
type Order struct {
	Column    string
	Ascending bool
}

// Filter filtro por igualdad.
type Filter struct {
	Column string
	Value  any
}

// ListOptions opciones de List.
type ListOptions struct {
	Columns []string // vacío = todas
	Filters []Filter
	OrderBy *Order
	Limit   int // 0 = sin límite
	Expand  []Expansion
}

// Gateway es el Resource Gateway: CRUD uniforme sobre colecciones remotas con expansión relacional.
// Cada operación es un único round trip; no hay reintentos ni batching.
type Gateway interface {
	List(ctx context.Context, entity string, opts ListOptions) ([]Row, error)
	Insert(ctx context.Context, entity string, payload Row, expand ...Expansion) (Row, error)
	Update(ctx context.Context, entity, id string, payload Row, expand ...Expansion) (Row, error)
	Delete(ctx context.Context, entity, id string) error
	Count(ctx context.Context, entity string) (int, error)
}

// Entidades (colecciones) que maneja la aplicación.
const (
	EntityProducts   = "products"
	EntityCategories = "categories"
	EntitySuppliers  = "suppliers"
	EntityStores     = "stores"
	EntitySales      = "sales"
)
