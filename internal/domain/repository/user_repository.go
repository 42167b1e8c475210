package repository

import (
	"context"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

// UserRepository define el puerto de persistencia de cuentas para la autenticación autoalojada.
// Los métodos Find* devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
