package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord registro mensual de ventas; solo lectura para el cliente.
type SaleRecord struct {
	ID           string
	MonthLabel   string
	SalesAmount  decimal.Decimal
	ProfitAmount decimal.Decimal
	CreatedAt    time.Time
}
