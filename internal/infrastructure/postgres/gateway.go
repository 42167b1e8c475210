package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

var _ repository.Gateway = (*Gateway)(nil)

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Gateway Resource Gateway sobre PostgreSQL. Cada fila sale como jsonb
// (to_jsonb más las expansiones) para que tenga la misma forma que la API REST.
type Gateway struct {
	q Querier
}

// NewGateway construye el gateway. Pasar pool o tx (Querier).
func NewGateway(q Querier) *Gateway {
	return &Gateway{q: q}
}

// List ejecuta un SELECT con filtros de igualdad, orden, límite y expansiones.
func (g *Gateway) List(ctx context.Context, entity string, opts repository.ListOptions) ([]repository.Row, error) {
	query, args, err := buildList(entity, opts)
	if err != nil {
		return nil, invalidQuery(entity, "list", err)
	}
	rows, err := g.q.Query(ctx, query, args...)
	if err != nil {
		return nil, gatewayError(entity, "list", err)
	}
	out, err := pgx.CollectRows(rows, scanRow)
	if err != nil {
		return nil, gatewayError(entity, "list", err)
	}
	return out, nil
}

// Insert inserta la fila y devuelve la representación guardada con sus expansiones.
func (g *Gateway) Insert(ctx context.Context, entity string, payload repository.Row, expand ...repository.Expansion) (repository.Row, error) {
	row := make(repository.Row, len(payload)+1)
	for k, v := range payload {
		row[k] = v
	}
	if v, ok := row["id"]; !ok || v == nil || fmt.Sprint(v) == "" {
		row["id"] = uuid.New().String()
	}
	query, args, err := buildInsert(entity, row, expand)
	if err != nil {
		return nil, invalidQuery(entity, "insert", err)
	}
	return g.one(ctx, entity, "insert", "", query, args)
}

// Update aplica el payload a la fila id. not_found si no existe.
func (g *Gateway) Update(ctx context.Context, entity, id string, payload repository.Row, expand ...repository.Expansion) (repository.Row, error) {
	query, args, err := buildUpdate(entity, id, payload, expand)
	if err != nil {
		return nil, invalidQuery(entity, "update", err)
	}
	return g.one(ctx, entity, "update", id, query, args)
}

// Delete borra la fila id. Un id inexistente no es error.
func (g *Gateway) Delete(ctx context.Context, entity, id string) error {
	table, err := quote(entity)
	if err != nil {
		return invalidQuery(entity, "delete", err)
	}
	if _, err := g.q.Exec(ctx, "DELETE FROM "+table+` WHERE "id" = $1`, id); err != nil {
		return gatewayError(entity, "delete", err)
	}
	return nil
}

// Count número de filas de la colección.
func (g *Gateway) Count(ctx context.Context, entity string) (int, error) {
	table, err := quote(entity)
	if err != nil {
		return 0, invalidQuery(entity, "count", err)
	}
	var n int64
	if err := g.q.QueryRow(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		return 0, gatewayError(entity, "count", err)
	}
	return int(n), nil
}

func (g *Gateway) one(ctx context.Context, entity, op, id, query string, args []any) (repository.Row, error) {
	var raw []byte
	if err := g.q.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.GatewayError{
				Kind: domain.KindNotFound, Entity: entity, Op: op,
				Message: fmt.Sprintf("%s %s no encontrado", entity, id),
			}
		}
		return nil, gatewayError(entity, op, err)
	}
	row, err := decodeRow(raw)
	if err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindUnknown, Entity: entity, Op: op, Err: err}
	}
	return row, nil
}

func scanRow(r pgx.CollectableRow) (repository.Row, error) {
	var raw []byte
	if err := r.Scan(&raw); err != nil {
		return nil, err
	}
	return decodeRow(raw)
}

// decodeRow usa UseNumber para que NUMERIC no pierda precisión en float64.
func decodeRow(raw []byte) (repository.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var row repository.Row
	if err := dec.Decode(&row); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return row, nil
}

func invalidQuery(entity, op string, err error) error {
	return &domain.GatewayError{Kind: domain.KindValidation, Entity: entity, Op: op, Message: err.Error(), Err: err}
}

// quote valida el identificador (minúsculas, dígitos y _) y lo entrecomilla.
func quote(name string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("identificador inválido %q", name)
	}
	return pgx.Identifier{name}.Sanitize(), nil
}

// rowExpr arma la expresión jsonb de una fila de alias t: las columnas pedidas
// (o to_jsonb(t) completo) más una subconsulta correlacionada por expansión.
// Una FK nula o colgante deja la clave de la expansión en null.
func rowExpr(columns []string, expand []repository.Expansion) (string, error) {
	var b strings.Builder
	if len(columns) == 0 {
		b.WriteString("to_jsonb(t)")
	} else {
		parts := make([]string, 0, len(columns))
		for _, c := range columns {
			col, err := quote(c)
			if err != nil {
				return "", err
			}
			parts = append(parts, fmt.Sprintf("'%s', t.%s", c, col))
		}
		b.WriteString("jsonb_build_object(" + strings.Join(parts, ", ") + ")")
	}
	for i, e := range expand {
		table, err := quote(e.Table)
		if err != nil {
			return "", err
		}
		fk, err := quote(e.ForeignKey)
		if err != nil {
			return "", err
		}
		field, err := quote(e.Field)
		if err != nil {
			return "", err
		}
		alias := fmt.Sprintf("r%d", i)
		fmt.Fprintf(&b, " || jsonb_build_object('%s', (SELECT jsonb_build_object('%s', %s.%s) FROM %s %s WHERE %s.\"id\" = t.%s))",
			e.Table, e.Field, alias, field, table, alias, alias, fk)
	}
	return b.String(), nil
}

func buildList(entity string, opts repository.ListOptions) (string, []any, error) {
	table, err := quote(entity)
	if err != nil {
		return "", nil, err
	}
	expr, err := rowExpr(opts.Columns, opts.Expand)
	if err != nil {
		return "", nil, err
	}
	var args []any
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s AS t", expr, table)
	for i, f := range opts.Filters {
		col, err := quote(f.Column)
		if err != nil {
			return "", nil, err
		}
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		args = append(args, f.Value)
		fmt.Fprintf(&b, "t.%s = $%d", col, len(args))
	}
	if opts.OrderBy != nil {
		col, err := quote(opts.OrderBy.Column)
		if err != nil {
			return "", nil, err
		}
		dir := "DESC"
		if opts.OrderBy.Ascending {
			dir = "ASC"
		}
		fmt.Fprintf(&b, " ORDER BY t.%s %s", col, dir)
	}
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	return b.String(), args, nil
}

// sortedColumns da un orden estable a las claves del payload (SQL determinista).
func sortedColumns(payload repository.Row, skip string) []string {
	cols := make([]string, 0, len(payload))
	for k := range payload {
		if k != skip {
			cols = append(cols, k)
		}
	}
	slices.Sort(cols)
	return cols
}

func buildInsert(entity string, payload repository.Row, expand []repository.Expansion) (string, []any, error) {
	table, err := quote(entity)
	if err != nil {
		return "", nil, err
	}
	expr, err := rowExpr(nil, expand)
	if err != nil {
		return "", nil, err
	}
	cols := sortedColumns(payload, "")
	names := make([]string, len(cols))
	holders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		if names[i], err = quote(c); err != nil {
			return "", nil, err
		}
		holders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = payload[c]
	}
	query := fmt.Sprintf("WITH t AS (INSERT INTO %s (%s) VALUES (%s) RETURNING *) SELECT %s FROM t",
		table, strings.Join(names, ", "), strings.Join(holders, ", "), expr)
	return query, args, nil
}

func buildUpdate(entity, id string, payload repository.Row, expand []repository.Expansion) (string, []any, error) {
	table, err := quote(entity)
	if err != nil {
		return "", nil, err
	}
	expr, err := rowExpr(nil, expand)
	if err != nil {
		return "", nil, err
	}
	cols := sortedColumns(payload, "id")
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		col, err := quote(c)
		if err != nil {
			return "", nil, err
		}
		args = append(args, payload[c])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(sets) == 0 {
		sets = append(sets, `"id" = "id"`)
	}
	args = append(args, id)
	query := fmt.Sprintf(`WITH t AS (UPDATE %s SET %s WHERE "id" = $%d RETURNING *) SELECT %s FROM t`,
		table, strings.Join(sets, ", "), len(args), expr)
	return query, args, nil
}
