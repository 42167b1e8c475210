package records

import (
	"fmt"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

// Category convierte una fila de categories.
func Category(row repository.Row) (entity.Category, error) {
	id, err := ID(row)
	if err != nil {
		return entity.Category{}, fmt.Errorf("category: %w", err)
	}
	created, err := Time(row, "created_at")
	if err != nil {
		return entity.Category{}, fmt.Errorf("category: %w", err)
	}
	return entity.Category{
		ID:          id,
		Name:        String(row, "name"),
		Description: String(row, "description"),
		CreatedAt:   created,
	}, nil
}

// Supplier convierte una fila de suppliers.
func Supplier(row repository.Row) (entity.Supplier, error) {
	id, err := ID(row)
	if err != nil {
		return entity.Supplier{}, fmt.Errorf("supplier: %w", err)
	}
	created, err := Time(row, "created_at")
	if err != nil {
		return entity.Supplier{}, fmt.Errorf("supplier: %w", err)
	}
	return entity.Supplier{
		ID:        id,
		Name:      String(row, "name"),
		Contact:   String(row, "contact"),
		Address:   String(row, "address"),
		Email:     String(row, "email"),
		CreatedAt: created,
	}, nil
}

// Store convierte una fila de stores.
func Store(row repository.Row) (entity.Store, error) {
	id, err := ID(row)
	if err != nil {
		return entity.Store{}, fmt.Errorf("store: %w", err)
	}
	created, err := Time(row, "created_at")
	if err != nil {
		return entity.Store{}, fmt.Errorf("store: %w", err)
	}
	return entity.Store{
		ID:        id,
		Name:      String(row, "name"),
		Location:  String(row, "location"),
		Manager:   String(row, "manager"),
		Phone:     String(row, "phone"),
		CreatedAt: created,
	}, nil
}

// Product convierte una fila de products, con las expansiones categories(name)
// y suppliers(name) si vinieron. El id es opcional porque algunas lecturas
// (dashboard) solo piden columnas sueltas.
func Product(row repository.Row) (entity.Product, error) {
	price, err := Decimal(row, "price")
	if err != nil {
		return entity.Product{}, fmt.Errorf("product: %w", err)
	}
	stock, err := Int(row, "stock")
	if err != nil {
		return entity.Product{}, fmt.Errorf("product: %w", err)
	}
	created, err := Time(row, "created_at")
	if err != nil {
		return entity.Product{}, fmt.Errorf("product: %w", err)
	}
	return entity.Product{
		ID:            String(row, "id"),
		Name:          String(row, "name"),
		Price:         price,
		Stock:         stock,
		CategoryID:    String(row, "category_id"),
		SupplierID:    String(row, "supplier_id"),
		CreatedAt:     created,
		Category:      Ref(row, repository.EntityCategories, "name"),
		Supplier:      Ref(row, repository.EntitySuppliers, "name"),
		CategoryLabel: String(row, "category"),
	}, nil
}

// Sale convierte una fila de sales.
func Sale(row repository.Row) (entity.SaleRecord, error) {
	sales, err := Decimal(row, "sales_amount")
	if err != nil {
		return entity.SaleRecord{}, fmt.Errorf("sale: %w", err)
	}
	profit, err := Decimal(row, "profit_amount")
	if err != nil {
		return entity.SaleRecord{}, fmt.Errorf("sale: %w", err)
	}
	created, err := Time(row, "created_at")
	if err != nil {
		return entity.SaleRecord{}, fmt.Errorf("sale: %w", err)
	}
	month := String(row, "month")
	if month == "" {
		month = String(row, "month_label")
	}
	return entity.SaleRecord{
		ID:           String(row, "id"),
		MonthLabel:   month,
		SalesAmount:  sales,
		ProfitAmount: profit,
		CreatedAt:    created,
	}, nil
}
