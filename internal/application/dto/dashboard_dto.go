package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	Greeting Greeting `json:"greeting"`

	ProductCount  int `json:"product_count"`
	SupplierCount int `json:"supplier_count"`
	StoreCount    int `json:"store_count"`
	TotalStock    int `json:"total_stock"`

	// RecentProducts los 5 productos más recientes.
	RecentProducts []RecentProductDTO `json:"recent_products"`
	Sales          []SalesPointDTO    `json:"sales"`
}

// Greeting saludo del encabezado: nombre (o email) y rol capitalizado.
type Greeting struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// RecentProductDTO fila del widget de productos recientes.
type RecentProductDTO struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	PriceLabel   string          `json:"price_label"` // ej: "Rp 350.000"
	Stock        int             `json:"stock"`
	CategoryName string          `json:"category_name"` // "N/A" si falta
}

// SalesPointDTO punto de la serie de ventas por mes.
type SalesPointDTO struct {
	Month  string          `json:"month"`
	Sales  decimal.Decimal `json:"sales"`
	Profit decimal.Decimal `json:"profit"`
}
