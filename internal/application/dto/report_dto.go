package dto

import "github.com/shopspring/decimal"

// ReportDTO respuesta de GET /api/reports.
type ReportDTO struct {
	InventoryValue      decimal.Decimal `json:"inventory_value"`
	InventoryValueLabel string          `json:"inventory_value_label"`
	AveragePrice        decimal.Decimal `json:"average_price"`
	AveragePriceLabel   string          `json:"average_price_label"`
	ProductCount        int             `json:"product_count"`

	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStockCount     int             `json:"low_stock_count"`
	LowStock          []LowStockDTO   `json:"low_stock"`
	CategoryStock     []CategoryStock `json:"category_stock"`
	Sales             []SalesPointDTO `json:"sales"`

	// UnlabeledProducts productos sin la etiqueta de categoría desnormalizada;
	// se agrupan bajo "Tanpa kategori".
	UnlabeledProducts int `json:"unlabeled_products"`
}

// LowStockDTO producto bajo el umbral de stock.
type LowStockDTO struct {
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	Category string `json:"category"`
}

// CategoryStock stock total por etiqueta de categoría.
type CategoryStock struct {
	Category string `json:"category"`
	Stock    int    `json:"stock"`
}
