package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ref campo expandido de una fila relacionada (ej. categories.name).
// Es nil cuando la FK está vacía o apunta a una fila inexistente.
type Ref struct {
	Name string
}

// Product producto del inventario. CategoryID y SupplierID deben existir (lo valida el backend).
type Product struct {
	ID         string
	Name       string
	Price      decimal.Decimal // >= 0
	Stock      int             // >= 0
	CategoryID string
	SupplierID string
	CreatedAt  time.Time

	Category *Ref
	Supplier *Ref

	// CategoryLabel es la columna desnormalizada "category" que leen los reportes.
	// No está sincronizada con CategoryID.
	CategoryLabel string
}

// CategoryName nombre de la categoría expandida o "" si no existe.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// SupplierName nombre del proveedor expandido o "" si no existe.
func (p Product) SupplierName() string {
	if p.Supplier == nil {
		return ""
	}
	return p.Supplier.Name
}
