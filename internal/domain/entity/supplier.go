package entity

import "time"

// Supplier proveedor de productos.
type Supplier struct {
	ID        string
	Name      string
	Contact   string // opcional
	Address   string // opcional
	Email     string
	CreatedAt time.Time
}
