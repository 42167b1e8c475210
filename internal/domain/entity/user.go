package entity

import (
	"strings"
	"time"
)

// Roles válidos para Identity.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Identity identidad autenticada actual. La crea el registro y la muta solo el backend;
// el cliente no la persiste más allá de la sesión.
type Identity struct {
	ID          string
	Email       string
	DisplayName string // opcional
	Role        string // admin, user
}

// IsAdmin indica si la identidad tiene el rol admin.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Profile datos de perfil enviados en el registro.
type Profile struct {
	DisplayName string
	Role        string
}

// Session tokens emitidos por el backend para una identidad.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Identity     Identity
}

// Expired indica si el access token ya venció (con margen de 30s).
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(30 * time.Second).Before(s.ExpiresAt)
}

// NormalizeRole reduce el rol declarado a admin|user. "pengguna" es la etiqueta
// heredada del formulario de registro; cualquier otro valor cuenta como user.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// User cuenta almacenada por los backends autoalojados (postgres, memory).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	Confirmed    bool
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity proyecta la cuenta a la identidad pública.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, DisplayName: u.Name, Role: NormalizeRole(u.Role)}
}
