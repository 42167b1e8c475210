package records

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

func TestProduct_CoercionDeStringsYNumeros(t *testing.T) {
	row := repository.Row{
		"id":          json.Number("42"),
		"name":        "Beras 5kg",
		"price":       "65000.50",
		"stock":       json.Number("12"),
		"category_id": json.Number("3"),
		"supplier_id": "7",
		"created_at":  "2024-03-01T10:00:00.123456+00:00",
		"categories":  map[string]any{"name": "Sembako"},
		"suppliers":   nil,
	}

	p, err := Product(row)
	require.NoError(t, err)

	assert.Equal(t, "42", p.ID)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("65000.50")))
	assert.Equal(t, 12, p.Stock)
	assert.Equal(t, "3", p.CategoryID)
	assert.Equal(t, "Sembako", p.CategoryName())
	assert.Nil(t, p.Supplier, "FK colgante → relación nil, no error")
	assert.Equal(t, "", p.SupplierName())
	assert.Equal(t, 2024, p.CreatedAt.Year())
}

func TestProduct_StockNoEntero(t *testing.T) {
	_, err := Product(repository.Row{"id": "1", "stock": 1.5})
	assert.Error(t, err)

	_, err = Product(repository.Row{"id": "1", "price": "abc"})
	var fe *FieldError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, "price", fe.Column)
}

func TestRef_ArregloEmbebido(t *testing.T) {
	row := repository.Row{"categories": []any{map[string]any{"name": "Minuman"}}}
	ref := Ref(row, "categories", "name")
	require.NotNil(t, ref)
	assert.Equal(t, "Minuman", ref.Name)
	assert.Nil(t, Ref(repository.Row{"categories": []any{}}, "categories", "name"))
}

func TestCategory_IDRequerido(t *testing.T) {
	_, err := Category(repository.Row{"name": "Sin id"})
	assert.Error(t, err)
}

func TestSale_MesYMontos(t *testing.T) {
	s, err := Sale(repository.Row{
		"id": 1.0, "month": "Jan", "sales_amount": json.Number("1500000"), "profit_amount": "250000",
		"created_at": "2024-01-31T00:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", s.ID)
	assert.Equal(t, "Jan", s.MonthLabel)
	assert.True(t, s.SalesAmount.Equal(decimal.NewFromInt(1500000)))
	assert.True(t, s.ProfitAmount.Equal(decimal.NewFromInt(250000)))
	assert.Equal(t, time.January, s.CreatedAt.Month())

	s, err = Sale(repository.Row{"month_label": "Feb"})
	require.NoError(t, err)
	assert.Equal(t, "Feb", s.MonthLabel)
}

func TestDecodeAll_ReportaFila(t *testing.T) {
	rows := []repository.Row{{"id": "1"}, {"name": "sin id"}}
	_, err := DecodeAll(rows, Store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fila 1")
}
