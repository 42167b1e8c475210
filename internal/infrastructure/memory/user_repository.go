package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo cuentas en memoria. Guarda copias; los llamadores no comparten punteros.
type UserRepo struct {
	mu    sync.RWMutex
	byID  map[string]entity.User
	email map[string]string
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{byID: make(map[string]entity.User), email: make(map[string]string)}
}

// Create persiste un nuevo usuario. ErrEmailAlreadyExists si el email ya existe.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := r.email[key]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.byID[user.ID] = *user
	r.email[key] = user.ID
	return nil
}

// FindByID obtiene un usuario por ID.
func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// FindByEmail obtiene un usuario por email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.email[strings.ToLower(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// FindByRefreshToken obtiene el usuario dueño del refresh token.
func (r *UserRepo) FindByRefreshToken(_ context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.RefreshToken == token {
			return &u, nil
		}
	}
	return nil, nil
}

// Update reemplaza el usuario. ErrNotFound si no existe.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.byID[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if !strings.EqualFold(prev.Email, user.Email) {
		delete(r.email, strings.ToLower(prev.Email))
		r.email[strings.ToLower(user.Email)] = user.ID
	}
	r.byID[user.ID] = *user
	return nil
}
