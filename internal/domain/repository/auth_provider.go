package repository

import (
	"context"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

// AuthProvider puerto de autenticación del backend (email + password).
// Los fallos de credenciales se devuelven como *domain.AuthError.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*entity.Session, error)
	// SignUp crea una cuenta pendiente de verificación por email; no inicia sesión.
	SignUp(ctx context.Context, email, password string, profile entity.Profile) error
	SignOut(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (*entity.Session, error)
	User(ctx context.Context, accessToken string) (*entity.Identity, error)
}
