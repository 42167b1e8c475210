package supabase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

const restPath = "/rest/v1/"

// TokenSource token de la sesión actual ("" sin sesión).
type TokenSource interface {
	AccessToken(ctx context.Context) string
}

var _ repository.Gateway = (*Gateway)(nil)

// Gateway Resource Gateway sobre PostgREST. Cada método es un único request.
type Gateway struct {
	http    *resty.Client
	anonKey string
	tokens  TokenSource
}

// NewGateway construye el gateway. tokens puede ser nil (siempre clave anónima).
func NewGateway(client *resty.Client, anonKey string, tokens TokenSource) *Gateway {
	return &Gateway{http: client, anonKey: anonKey, tokens: tokens}
}

// request prepara un request autenticado con el token de la sesión o la clave anónima.
func (g *Gateway) request(ctx context.Context) *resty.Request {
	token := ""
	if g.tokens != nil {
		token = g.tokens.AccessToken(ctx)
	}
	if token == "" {
		token = g.anonKey
	}
	return g.http.R().SetContext(ctx).SetHeader("Authorization", bearer(token))
}

// SelectClause arma el parámetro select: columnas (o *) y expansiones
// con la forma tabla!fk(campo).
func SelectClause(columns []string, expand []repository.Expansion) string {
	parts := make([]string, 0, len(columns)+len(expand)+1)
	if len(columns) == 0 {
		parts = append(parts, "*")
	} else {
		parts = append(parts, columns...)
	}
	for _, e := range expand {
		parts = append(parts, fmt.Sprintf("%s!%s(%s)", e.Table, e.ForeignKey, e.Field))
	}
	return strings.Join(parts, ",")
}

// List GET /rest/v1/{entity}?select=...&order=...&limit=...&col=eq.value
func (g *Gateway) List(ctx context.Context, entity string, opts repository.ListOptions) ([]repository.Row, error) {
	req := g.request(ctx).SetQueryParam("select", SelectClause(opts.Columns, opts.Expand))
	if opts.OrderBy != nil {
		dir := "desc"
		if opts.OrderBy.Ascending {
			dir = "asc"
		}
		req.SetQueryParam("order", opts.OrderBy.Column+"."+dir)
	}
	if opts.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(opts.Limit))
	}
	for _, f := range opts.Filters {
		req.SetQueryParam(f.Column, "eq."+fmt.Sprint(f.Value))
	}

	resp, err := req.Get(restPath + entity)
	if err != nil {
		return nil, networkError(entity, "list", err)
	}
	if resp.IsError() {
		return nil, gatewayError(entity, "list", resp)
	}
	var rows []repository.Row
	if err := decodeJSON(resp.Body(), &rows); err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindUnknown, Entity: entity, Op: "list", Err: err}
	}
	return rows, nil
}

// Insert POST con Prefer: return=representation; devuelve la fila creada.
func (g *Gateway) Insert(ctx context.Context, entity string, payload repository.Row, expand ...repository.Expansion) (repository.Row, error) {
	resp, err := g.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetQueryParam("select", SelectClause(nil, expand)).
		SetBody(payload).
		Post(restPath + entity)
	if err != nil {
		return nil, networkError(entity, "insert", err)
	}
	return g.single(entity, "insert", resp)
}

// Update PATCH ?id=eq.{id}. Una representación vacía significa que el id no existe.
func (g *Gateway) Update(ctx context.Context, entity, id string, payload repository.Row, expand ...repository.Expansion) (repository.Row, error) {
	resp, err := g.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Prefer", "return=representation").
		SetQueryParam("id", "eq."+id).
		SetQueryParam("select", SelectClause(nil, expand)).
		SetBody(payload).
		Patch(restPath + entity)
	if err != nil {
		return nil, networkError(entity, "update", err)
	}
	return g.single(entity, "update", resp)
}

func (g *Gateway) single(entity, op string, resp *resty.Response) (repository.Row, error) {
	if resp.IsError() {
		return nil, gatewayError(entity, op, resp)
	}
	var rows []repository.Row
	if err := decodeJSON(resp.Body(), &rows); err != nil {
		return nil, &domain.GatewayError{Kind: domain.KindUnknown, Entity: entity, Op: op, Err: err}
	}
	if len(rows) == 0 {
		return nil, &domain.GatewayError{
			Kind: domain.KindNotFound, Entity: entity, Op: op,
			Message: fmt.Sprintf("%s: fila no encontrada o sin permiso", entity),
		}
	}
	return rows[0], nil
}

// Delete DELETE ?id=eq.{id}.
func (g *Gateway) Delete(ctx context.Context, entity, id string) error {
	resp, err := g.request(ctx).
		SetQueryParam("id", "eq."+id).
		Delete(restPath + entity)
	if err != nil {
		return networkError(entity, "delete", err)
	}
	if resp.IsError() {
		return gatewayError(entity, "delete", resp)
	}
	return nil
}

// Count HEAD con Prefer: count=exact; el total viene en Content-Range (ej. "0-24/573").
func (g *Gateway) Count(ctx context.Context, entity string) (int, error) {
	resp, err := g.request(ctx).
		SetHeader("Prefer", "count=exact").
		SetQueryParam("select", "*").
		Head(restPath + entity)
	if err != nil {
		return 0, networkError(entity, "count", err)
	}
	if resp.IsError() {
		return 0, gatewayError(entity, "count", resp)
	}
	n, err := ParseContentRange(resp.Header().Get("Content-Range"))
	if err != nil {
		return 0, &domain.GatewayError{Kind: domain.KindUnknown, Entity: entity, Op: "count", Err: err}
	}
	return n, nil
}

// ParseContentRange extrae el total de "0-24/573" o "*/0".
func ParseContentRange(h string) (int, error) {
	i := strings.LastIndexByte(h, '/')
	if i < 0 || i == len(h)-1 {
		return 0, fmt.Errorf("content-range inválido: %q", h)
	}
	total := h[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("content-range sin total: %q", h)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("content-range inválido: %q", h)
	}
	return n, nil
}

