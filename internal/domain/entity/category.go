package entity

import "time"

// Category categoría de productos. Name es único.
type Category struct {
	ID          string
	Name        string
	Description string // opcional
	CreatedAt   time.Time
}
