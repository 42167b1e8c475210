// Package memory implementa los puertos de persistencia en memoria del proceso.
// Sirve como backend de demo (BACKEND=memory) y como doble determinista en tests.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

type foreignKey struct {
	Column string
	Table  string
	Name   string
}

// Relaciones con semántica RESTRICT, como en el esquema SQL.
var foreignKeys = map[string][]foreignKey{
	repository.EntityProducts: {
		{Column: "category_id", Table: repository.EntityCategories, Name: "products_category_id_fkey"},
		{Column: "supplier_id", Table: repository.EntitySuppliers, Name: "products_supplier_id_fkey"},
	},
}

type uniqueKey struct {
	Column string
	Name   string
}

// Unicidad y CHECK (col >= 0) del esquema SQL.
var (
	uniqueKeys = map[string][]uniqueKey{
		repository.EntityCategories: {{Column: "name", Name: "categories_name_key"}},
	}
	nonNegative = map[string][]uniqueKey{
		repository.EntityProducts: {
			{Column: "price", Name: "products_price_check"},
			{Column: "stock", Name: "products_stock_check"},
		},
	}
)

// HookFunc se ejecuta antes de cada operación (op: list, insert, update, delete, count).
// Un error devuelto hace fallar la operación; puede bloquear para simular latencia.
type HookFunc func(ctx context.Context, op, entity string) error

var _ repository.Gateway = (*Gateway)(nil)

// Gateway Resource Gateway en memoria.
type Gateway struct {
	mu     sync.RWMutex
	tables map[string][]repository.Row
	hook   HookFunc
	now    func() time.Time
}

// NewGateway construye un gateway con las colecciones conocidas vacías.
func NewGateway() *Gateway {
	g := &Gateway{tables: make(map[string][]repository.Row), now: time.Now}
	for _, name := range []string{
		repository.EntityProducts, repository.EntityCategories, repository.EntitySuppliers,
		repository.EntityStores, repository.EntitySales,
	} {
		g.tables[name] = nil
	}
	return g
}

// SetHook instala (o quita con nil) el hook previo a cada operación.
func (g *Gateway) SetHook(h HookFunc) {
	g.mu.Lock()
	g.hook = h
	g.mu.Unlock()
}

// Seed agrega filas sin validar relaciones. Asigna id y created_at si faltan.
func (g *Gateway) Seed(entity string, rows ...repository.Row) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range rows {
		g.tables[entity] = append(g.tables[entity], g.stamp(r))
	}
}

func (g *Gateway) before(ctx context.Context, op, entity string) error {
	if err := ctx.Err(); err != nil {
		return &domain.GatewayError{Kind: domain.KindNetwork, Entity: entity, Op: op, Err: err}
	}
	g.mu.RLock()
	h := g.hook
	g.mu.RUnlock()
	if h == nil {
		return nil
	}
	if err := h(ctx, op, entity); err != nil {
		var gwErr *domain.GatewayError
		if errors.As(err, &gwErr) {
			return err
		}
		return &domain.GatewayError{Kind: domain.KindNetwork, Entity: entity, Op: op, Err: err}
	}
	return nil
}

// List devuelve las filas filtradas, ordenadas, limitadas y con expansiones.
func (g *Gateway) List(ctx context.Context, entity string, opts repository.ListOptions) ([]repository.Row, error) {
	if err := g.before(ctx, "list", entity); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	table, ok := g.tables[entity]
	if !ok {
		return nil, unknownTable(entity, "list")
	}

	matched := make([]repository.Row, 0, len(table))
	for _, r := range table {
		if matches(r, opts.Filters) {
			matched = append(matched, r)
		}
	}
	if opts.OrderBy != nil {
		col, asc := opts.OrderBy.Column, opts.OrderBy.Ascending
		sort.SliceStable(matched, func(i, j int) bool {
			c := compareValues(matched[i][col], matched[j][col])
			if asc {
				return c < 0
			}
			return c > 0
		})
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	out := make([]repository.Row, len(matched))
	for i, r := range matched {
		out[i] = g.present(r, opts.Columns, opts.Expand)
	}
	return out, nil
}

// Insert agrega la fila validando relaciones; devuelve la fila guardada.
func (g *Gateway) Insert(ctx context.Context, entity string, payload repository.Row, expand ...repository.Expansion) (repository.Row, error) {
	if err := g.before(ctx, "insert", entity); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.tables[entity]; !ok {
		return nil, unknownTable(entity, "insert")
	}
	row := g.stamp(payload)
	if err := g.checkParents(entity, "insert", row); err != nil {
		return nil, err
	}
	if err := g.checkRow(entity, "insert", row, -1); err != nil {
		return nil, err
	}
	id := fmt.Sprint(row["id"])
	if g.indexOf(entity, id) >= 0 {
		return nil, &domain.GatewayError{
			Kind: domain.KindConstraint, Entity: entity, Op: "insert", Code: "23505",
			Message: fmt.Sprintf(`duplicate key value violates unique constraint "%s_pkey"`, entity),
		}
	}
	g.tables[entity] = append(g.tables[entity], row)
	return g.present(row, nil, expand), nil
}

// Update aplica el payload sobre la fila id. not_found si no existe.
func (g *Gateway) Update(ctx context.Context, entity, id string, payload repository.Row, expand ...repository.Expansion) (repository.Row, error) {
	if err := g.before(ctx, "update", entity); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.tables[entity]; !ok {
		return nil, unknownTable(entity, "update")
	}
	idx := g.indexOf(entity, id)
	if idx < 0 {
		return nil, &domain.GatewayError{
			Kind: domain.KindNotFound, Entity: entity, Op: "update",
			Message: fmt.Sprintf("%s %s no encontrado", entity, id),
		}
	}
	merged := copyRow(g.tables[entity][idx])
	for k, v := range payload {
		if k == "id" {
			continue
		}
		merged[k] = v
	}
	if err := g.checkParents(entity, "update", merged); err != nil {
		return nil, err
	}
	if err := g.checkRow(entity, "update", merged, idx); err != nil {
		return nil, err
	}
	g.tables[entity][idx] = merged
	return g.present(merged, nil, expand), nil
}

// Delete elimina la fila id. Falla con constraint si otra fila la referencia.
// Borrar un id inexistente no es error.
func (g *Gateway) Delete(ctx context.Context, entity, id string) error {
	if err := g.before(ctx, "delete", entity); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.tables[entity]; !ok {
		return unknownTable(entity, "delete")
	}
	for child, fks := range foreignKeys {
		for _, fk := range fks {
			if fk.Table != entity {
				continue
			}
			for _, r := range g.tables[child] {
				if v, ok := r[fk.Column]; ok && v != nil && fmt.Sprint(v) == id {
					return &domain.GatewayError{
						Kind: domain.KindConstraint, Entity: entity, Op: "delete", Code: "23503",
						Message: fmt.Sprintf(`update or delete on table "%s" violates foreign key constraint "%s" on table "%s"`,
							entity, fk.Name, child),
					}
				}
			}
		}
	}
	idx := g.indexOf(entity, id)
	if idx < 0 {
		return nil
	}
	rows := g.tables[entity]
	g.tables[entity] = append(rows[:idx:idx], rows[idx+1:]...)
	return nil
}

// Count número de filas de la colección.
func (g *Gateway) Count(ctx context.Context, entity string) (int, error) {
	if err := g.before(ctx, "count", entity); err != nil {
		return 0, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	table, ok := g.tables[entity]
	if !ok {
		return 0, unknownTable(entity, "count")
	}
	return len(table), nil
}

// stamp copia la fila y completa id y created_at.
func (g *Gateway) stamp(r repository.Row) repository.Row {
	row := copyRow(r)
	if v, ok := row["id"]; !ok || v == nil || fmt.Sprint(v) == "" {
		row["id"] = uuid.New().String()
	}
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = g.now().UTC()
	}
	return row
}

func (g *Gateway) checkParents(entity, op string, row repository.Row) error {
	for _, fk := range foreignKeys[entity] {
		v, ok := row[fk.Column]
		if !ok || v == nil || fmt.Sprint(v) == "" {
			continue
		}
		if g.indexOf(fk.Table, fmt.Sprint(v)) < 0 {
			return &domain.GatewayError{
				Kind: domain.KindConstraint, Entity: entity, Op: op, Code: "23503",
				Message: fmt.Sprintf(`insert or update on table "%s" violates foreign key constraint "%s"`, entity, fk.Name),
			}
		}
	}
	return nil
}

// checkRow aplica CHECK (>= 0) y unicidad; self es el índice de la fila
// que se actualiza (-1 en un alta).
func (g *Gateway) checkRow(entity, op string, row repository.Row, self int) error {
	for _, c := range nonNegative[entity] {
		d, ok := numeric(row[c.Column])
		if ok && d.IsNegative() {
			return &domain.GatewayError{
				Kind: domain.KindValidation, Entity: entity, Op: op, Code: "23514",
				Message: fmt.Sprintf(`new row for relation "%s" violates check constraint "%s"`, entity, c.Name),
			}
		}
	}
	for _, u := range uniqueKeys[entity] {
		v, ok := row[u.Column]
		if !ok || v == nil {
			continue
		}
		for i, other := range g.tables[entity] {
			if i != self && other[u.Column] != nil && fmt.Sprint(other[u.Column]) == fmt.Sprint(v) {
				return &domain.GatewayError{
					Kind: domain.KindConstraint, Entity: entity, Op: op, Code: "23505",
					Message: fmt.Sprintf(`duplicate key value violates unique constraint "%s"`, u.Name),
				}
			}
		}
	}
	return nil
}

func (g *Gateway) indexOf(entity, id string) int {
	for i, r := range g.tables[entity] {
		if fmt.Sprint(r["id"]) == id {
			return i
		}
	}
	return -1
}

// present proyecta columnas y agrega las expansiones bajo el nombre de la tabla relacionada.
func (g *Gateway) present(r repository.Row, columns []string, expand []repository.Expansion) repository.Row {
	var out repository.Row
	if len(columns) == 0 {
		out = copyRow(r)
	} else {
		out = make(repository.Row, len(columns)+len(expand))
		for _, c := range columns {
			out[c] = r[c]
		}
	}
	for _, e := range expand {
		out[e.Table] = nil
		v, ok := r[e.ForeignKey]
		if !ok || v == nil {
			continue
		}
		if idx := g.indexOf(e.Table, fmt.Sprint(v)); idx >= 0 {
			out[e.Table] = map[string]any{e.Field: g.tables[e.Table][idx][e.Field]}
		}
	}
	return out
}

func matches(r repository.Row, filters []repository.Filter) bool {
	for _, f := range filters {
		if fmt.Sprint(r[f.Column]) != fmt.Sprint(f.Value) {
			return false
		}
	}
	return true
}

// compareValues ordena tiempos, números y texto; nil va al final en orden ascendente.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if da, ok := toDecimal(a); ok {
		if db, ok := toDecimal(b); ok {
			return da.Cmp(db)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

// numeric como toDecimal, aceptando además texto numérico.
func numeric(v any) (decimal.Decimal, bool) {
	if str, ok := v.(string); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(str))
		return d, err == nil
	}
	return toDecimal(v)
}

func copyRow(r repository.Row) repository.Row {
	out := make(repository.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func unknownTable(entity, op string) *domain.GatewayError {
	return &domain.GatewayError{
		Kind: domain.KindNotFound, Entity: entity, Op: op, Code: "42P01",
		Message: fmt.Sprintf(`relation "public.%s" does not exist`, entity),
	}
}
