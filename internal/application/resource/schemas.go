package resource

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/dto"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/records"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
	"github.com/andidelouise/TOKO-APP-V2/pkg/rupiah"
)

// Mensajes mostrados al usuario.
const (
	MsgProductRequired  = "Semua field wajib diisi."
	MsgCategoryRequired = "Nama kategori wajib diisi."
	MsgSupplierRequired = "Nama dan Email wajib diisi."
	MsgStoreRequired    = "Nama Toko dan Lokasi wajib diisi."
	MsgLoadFailed       = "Gagal memuat data."
	MsgPriceNotNumber   = "Harga harus berupa angka."
	MsgStockNotInteger  = "Stok harus berupa bilangan bulat."

	// NotAvailable se muestra cuando falta un campo expandido.
	NotAvailable = "N/A"
)

var (
	expandCategoryName = repository.Expansion{ForeignKey: "category_id", Table: repository.EntityCategories, Field: "name"}
	expandSupplierName = repository.Expansion{ForeignKey: "supplier_id", Table: repository.EntitySuppliers, Field: "name"}

	newestFirst = repository.Order{Column: "created_at", Ascending: false}
)

func orNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func trimmed(f Form, key string) string { return strings.TrimSpace(f[key]) }

// ProductSchema products: más recientes primero, alta al inicio.
func ProductSchema() Schema[entity.Product] {
	return Schema[entity.Product]{
		Entity: repository.EntityProducts,
		Order:  newestFirst,
		Expand: []repository.Expansion{expandSupplierName, expandCategoryName},
		Lookups: []Lookup{
			{Key: "categories", Entity: repository.EntityCategories, Label: "name"},
			{Key: "suppliers", Entity: repository.EntitySuppliers, Label: "name"},
		},
		LoadErrorMessage: MsgLoadFailed,

		Decode: records.Product,
		ID:     func(p entity.Product) string { return p.ID },
		SearchText: func(p entity.Product) []string {
			return []string{p.Name, p.CategoryName(), p.SupplierName()}
		},

		Fields:          []string{"name", "price", "stock", "category_id", "supplier_id"},
		Required:        []string{"name", "price", "category_id", "supplier_id"},
		RequiredMessage: MsgProductRequired,
		Payload: func(f Form) (repository.Row, error) {
			price, err := decimal.NewFromString(trimmed(f, "price"))
			if err != nil || price.IsNegative() {
				return nil, domain.NewValidationError(MsgPriceNotNumber)
			}
			stock := 0
			if s := trimmed(f, "stock"); s != "" {
				if stock, err = strconv.Atoi(s); err != nil || stock < 0 {
					return nil, domain.NewValidationError(MsgStockNotInteger)
				}
			}
			return repository.Row{
				"name":        trimmed(f, "name"),
				"price":       price,
				"stock":       stock,
				"category_id": trimmed(f, "category_id"),
				"supplier_id": trimmed(f, "supplier_id"),
			}, nil
		},
		FormOf: func(p entity.Product) Form {
			return Form{
				"name":        p.Name,
				"price":       p.Price.String(),
				"stock":       strconv.Itoa(p.Stock),
				"category_id": p.CategoryID,
				"supplier_id": p.SupplierID,
			}
		},

		Placement: Prepend[entity.Product](),
		Present: func(p entity.Product) dto.ViewRow {
			return dto.ViewRow{
				"id":          p.ID,
				"name":        p.Name,
				"price":       rupiah.Format(p.Price),
				"stock":       p.Stock,
				"category":    orNA(p.CategoryName()),
				"supplier":    orNA(p.SupplierName()),
				"category_id": p.CategoryID,
				"supplier_id": p.SupplierID,
			}
		},
	}
}

// CategorySchema categories: orden por nombre; el alta reordena por nombre
// y la edición reemplaza en su lugar.
func CategorySchema() Schema[entity.Category] {
	return Schema[entity.Category]{
		Entity: repository.EntityCategories,
		Order:  repository.Order{Column: "name", Ascending: true},

		Decode:     records.Category,
		ID:         func(c entity.Category) string { return c.ID },
		SearchText: func(c entity.Category) []string { return []string{c.Name} },

		Fields:          []string{"name", "description"},
		Required:        []string{"name"},
		RequiredMessage: MsgCategoryRequired,
		Payload: func(f Form) (repository.Row, error) {
			return repository.Row{
				"name":        trimmed(f, "name"),
				"description": trimmed(f, "description"),
			}, nil
		},
		FormOf: func(c entity.Category) Form {
			return Form{"name": c.Name, "description": c.Description}
		},

		Placement: Resorted(sortCategoriesByName),
		Present: func(c entity.Category) dto.ViewRow {
			return dto.ViewRow{"id": c.ID, "name": c.Name, "description": c.Description}
		},
	}
}

// sortCategoriesByName orden alfabético con la colación de id-ID.
func sortCategoriesByName(list []entity.Category) {
	col := collate.New(language.Indonesian, collate.IgnoreCase)
	sort.SliceStable(list, func(i, j int) bool {
		return col.CompareString(list[i].Name, list[j].Name) < 0
	})
}

// SupplierSchema suppliers: más recientes primero, alta al inicio.
func SupplierSchema() Schema[entity.Supplier] {
	return Schema[entity.Supplier]{
		Entity: repository.EntitySuppliers,
		Order:  newestFirst,

		Decode: records.Supplier,
		ID:     func(s entity.Supplier) string { return s.ID },
		SearchText: func(s entity.Supplier) []string {
			return []string{s.Name, s.Email, s.Address}
		},

		Fields:          []string{"name", "contact", "address", "email"},
		Required:        []string{"name", "email"},
		RequiredMessage: MsgSupplierRequired,
		Payload: func(f Form) (repository.Row, error) {
			return repository.Row{
				"name":    trimmed(f, "name"),
				"contact": trimmed(f, "contact"),
				"address": trimmed(f, "address"),
				"email":   trimmed(f, "email"),
			}, nil
		},
		FormOf: func(s entity.Supplier) Form {
			return Form{"name": s.Name, "contact": s.Contact, "address": s.Address, "email": s.Email}
		},

		Placement: Prepend[entity.Supplier](),
		Present: func(s entity.Supplier) dto.ViewRow {
			return dto.ViewRow{
				"id":      s.ID,
				"name":    s.Name,
				"contact": orNA(s.Contact),
				"address": orNA(s.Address),
				"email":   s.Email,
			}
		},
	}
}

// StoreSchema stores: más recientes primero, alta al inicio.
func StoreSchema() Schema[entity.Store] {
	return Schema[entity.Store]{
		Entity: repository.EntityStores,
		Order:  newestFirst,

		Decode: records.Store,
		ID:     func(s entity.Store) string { return s.ID },
		SearchText: func(s entity.Store) []string {
			return []string{s.Name, s.Location, s.Manager}
		},

		Fields:          []string{"name", "location", "manager", "phone"},
		Required:        []string{"name", "location"},
		RequiredMessage: MsgStoreRequired,
		Payload: func(f Form) (repository.Row, error) {
			return repository.Row{
				"name":     trimmed(f, "name"),
				"location": trimmed(f, "location"),
				"manager":  trimmed(f, "manager"),
				"phone":    trimmed(f, "phone"),
			}, nil
		},
		FormOf: func(s entity.Store) Form {
			return Form{"name": s.Name, "location": s.Location, "manager": s.Manager, "phone": s.Phone}
		},

		Placement: Prepend[entity.Store](),
		Present: func(s entity.Store) dto.ViewRow {
			return dto.ViewRow{
				"id":       s.ID,
				"name":     s.Name,
				"location": s.Location,
				"manager":  orNA(s.Manager),
				"phone":    orNA(s.Phone),
			}
		},
	}
}
