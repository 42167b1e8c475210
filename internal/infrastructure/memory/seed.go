package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

// Cuentas de demo: cmd/api las crea con BACKEND=memory y cmd/seed en PostgreSQL.
const (
	DemoAdminEmail    = "admin@toko.local"
	DemoAdminPassword = "admin123"
	DemoUserEmail     = "staff@toko.local"
	DemoUserPassword  = "staff123"
)

// DemoTable filas de una colección del catálogo de demo.
type DemoTable struct {
	Entity string
	Rows   []repository.Row
}

// SeedDemo carga el catálogo de demo en el gateway en memoria.
func SeedDemo(g *Gateway) {
	for _, t := range DemoData() {
		g.Seed(t.Entity, t.Rows...)
	}
}

// DemoData catálogo pequeño de demo, con los padres antes que los hijos.
func DemoData() []DemoTable {
	base := time.Date(2025, time.January, 6, 8, 0, 0, 0, time.UTC)
	at := func(days int) time.Time { return base.AddDate(0, 0, days) }

	var out []DemoTable
	add := func(entity string, rows ...repository.Row) {
		out = append(out, DemoTable{Entity: entity, Rows: rows})
	}

	add(repository.EntityCategories,
		repository.Row{"id": "cat-elektronik", "name": "Elektronik", "description": "Perangkat elektronik", "created_at": at(0)},
		repository.Row{"id": "cat-makanan", "name": "Makanan", "description": "Makanan kemasan", "created_at": at(1)},
		repository.Row{"id": "cat-minuman", "name": "Minuman", "description": "Minuman botol dan kaleng", "created_at": at(2)},
	)
	add(repository.EntitySuppliers,
		repository.Row{"id": "sup-sumber", "name": "PT Sumber Makmur", "contact": "0812-1111-2222",
			"address": "Jl. Gatot Subroto 12, Jakarta", "email": "sales@sumbermakmur.co.id", "created_at": at(0)},
		repository.Row{"id": "sup-nusantara", "name": "CV Nusantara Jaya", "contact": "0813-3333-4444",
			"address": "Jl. Asia Afrika 8, Bandung", "email": "order@nusantarajaya.id", "created_at": at(3)},
	)
	add(repository.EntityStores,
		repository.Row{"id": "store-pusat", "name": "Toko Pusat", "location": "Jakarta Selatan",
			"manager": "Rina", "phone": "021-555-0101", "created_at": at(0)},
		repository.Row{"id": "store-cabang", "name": "Toko Cabang Bandung", "location": "Bandung",
			"manager": "Dedi", "phone": "022-555-0202", "created_at": at(4)},
	)
	add(repository.EntityProducts,
		product("prd-rice-cooker", "Rice Cooker 1L", "350000", 12, "cat-elektronik", "sup-sumber", "Elektronik", at(5)),
		product("prd-kipas", "Kipas Angin Meja", "185000", 45, "cat-elektronik", "sup-sumber", "Elektronik", at(6)),
		product("prd-mie", "Mie Instan (dus)", "115000", 80, "cat-makanan", "sup-nusantara", "Makanan", at(7)),
		product("prd-teh", "Teh Botol 350ml (krat)", "96000", 25, "cat-minuman", "sup-nusantara", "Minuman", at(8)),
		product("prd-kopi", "Kopi Bubuk 200g", "28500", 60, "cat-minuman", "sup-nusantara", "", at(9)),
	)

	months := []struct {
		label         string
		sales, profit int64
	}{
		{"Jan", 12500000, 2100000},
		{"Feb", 13800000, 2450000},
		{"Mar", 11900000, 1980000},
		{"Apr", 15200000, 2870000},
		{"Mei", 16750000, 3120000},
		{"Jun", 14900000, 2640000},
	}
	sales := make([]repository.Row, 0, len(months))
	for i, m := range months {
		sales = append(sales, repository.Row{
			"id":            "sale-" + m.label,
			"month":         m.label,
			"sales_amount":  decimal.NewFromInt(m.sales),
			"profit_amount": decimal.NewFromInt(m.profit),
			"created_at":    base.AddDate(0, i, 0),
		})
	}
	add(repository.EntitySales, sales...)
	return out
}

func product(id, name, price string, stock int, categoryID, supplierID, label string, created time.Time) repository.Row {
	row := repository.Row{
		"id":          id,
		"name":        name,
		"price":       decimal.RequireFromString(price),
		"stock":       stock,
		"category_id": categoryID,
		"supplier_id": supplierID,
		"created_at":  created,
	}
	if label != "" {
		row["category"] = label
	}
	return row
}
