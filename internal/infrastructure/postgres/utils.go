package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
)

// Querier es lo común entre *pgxpool.Pool y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Pool)(nil)
	_ Querier = (pgx.Tx)(nil)
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// gatewayError traduce un error de pgx al GatewayError del dominio. El mensaje
// de PostgreSQL se conserva tal cual; sin PgError el fallo es de transporte.
func gatewayError(entity, op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &domain.GatewayError{
			Kind:    domain.ClassifyCode(pgErr.Code),
			Entity:  entity,
			Op:      op,
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Err:     err,
		}
	}
	return &domain.GatewayError{Kind: domain.KindNetwork, Entity: entity, Op: op, Err: err}
}
