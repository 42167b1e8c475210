package session

import "github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"

// TokenStore persiste la sesión entre arranques del proceso.
type TokenStore interface {
	// Load devuelve (nil, nil) si no hay sesión guardada.
	Load() (*entity.Session, error)
	Save(sess *entity.Session) error
	Clear() error
}

// Listener recibe la identidad actual tras cada cambio (nil = sin sesión).
type Listener func(identity *entity.Identity)
