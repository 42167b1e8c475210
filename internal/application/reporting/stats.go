package reporting

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

// LowStockThreshold umbral fijo de stock bajo (unidades). Cambiarlo requiere recompilar.
const LowStockThreshold = 30

// UnlabeledCategory grupo de los productos sin etiqueta de categoría.
const UnlabeledCategory = "Tanpa kategori"

// CategoryTotal stock acumulado de una etiqueta de categoría.
type CategoryTotal struct {
	Label string
	Stock int
}

// TotalStock Σ stock.
func TotalStock(products []entity.Product) int {
	total := 0
	for _, p := range products {
		total += p.Stock
	}
	return total
}

// InventoryValue Σ price × stock.
func InventoryValue(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return total
}

// LowStock productos con stock < threshold, en el orden recibido.
func LowStock(products []entity.Product, threshold int) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out
}

// AveragePrice precio promedio; 0 con el conjunto vacío.
func AveragePrice(products []entity.Product) decimal.Decimal {
	if len(products) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(p.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(products))))
}

// StockByCategory agrupa el stock por la etiqueta desnormalizada "category"
// (no por category_id), en orden de primera aparición. Las filas sin etiqueta
// van a UnlabeledCategory y se cuentan en unlabeled.
func StockByCategory(products []entity.Product) (groups []CategoryTotal, unlabeled int) {
	index := make(map[string]int)
	for _, p := range products {
		label := strings.TrimSpace(p.CategoryLabel)
		if label == "" {
			label = UnlabeledCategory
			unlabeled++
		}
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, CategoryTotal{Label: label})
		}
		groups[i].Stock += p.Stock
	}
	return groups, unlabeled
}

// SalesSeries convierte los registros de ventas en puntos {month, sales, profit}.
func SalesSeries(sales []entity.SaleRecord) []dto.SalesPointDTO {
	out := make([]dto.SalesPointDTO, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.SalesPointDTO{Month: s.MonthLabel, Sales: s.SalesAmount, Profit: s.ProfitAmount})
	}
	return out
}
