package entity

import "time"

// Store tienda física.
type Store struct {
	ID        string
	Name      string
	Location  string
	Manager   string // opcional
	Phone     string // opcional
	CreatedAt time.Time
}
