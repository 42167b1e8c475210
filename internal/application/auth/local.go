package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
	"github.com/andidelouise/TOKO-APP-V2/pkg/jwt"
)

// Mensajes devueltos al usuario; coinciden con los del backend BaaS.
const (
	MsgInvalidCredentials = "Invalid login credentials"
	MsgEmailNotConfirmed  = "Email not confirmed"
	MsgWeakPassword       = "Password should be at least 6 characters."
	MsgAlreadyRegistered  = "User already registered"
	MsgEmailRequired      = "Email is required"
	MsgInvalidToken       = "Invalid or expired token"

	MinPasswordLength = 6
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

var _ repository.AuthProvider = (*LocalProvider)(nil)

// LocalProvider implementa AuthProvider para los backends autoalojados
// (postgres, memory): bcrypt sobre UserRepository y JWT HS256.
type LocalProvider struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
	now    func() time.Time
}

// NewLocalProvider construye el proveedor de auth local.
func NewLocalProvider(users repository.UserRepository, jwtCfg JWTConfig) *LocalProvider {
	return &LocalProvider{users: users, jwtCfg: jwtCfg, now: time.Now}
}

// SignUp crea la cuenta sin confirmar. Hashea el password con bcrypt.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string, profile entity.Profile) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.NewAuthError(MsgEmailRequired)
	}
	if len(password) < MinPasswordLength {
		return domain.NewAuthError(MsgWeakPassword)
	}
	existing, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	if existing != nil {
		return domain.NewAuthError(MsgAlreadyRegistered)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("sign up: hash: %w", err)
	}
	now := p.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(profile.DisplayName),
		Role:         entity.NormalizeRole(profile.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := p.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return &domain.AuthError{Message: MsgAlreadyRegistered, Err: err}
		}
		return fmt.Errorf("sign up: %w", err)
	}
	return nil
}

// Confirm marca la cuenta como verificada (equivale al enlace del email).
func (p *LocalProvider) Confirm(ctx context.Context, email string) error {
	user, err := p.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.Confirmed {
		return nil
	}
	user.Confirmed = true
	user.UpdatedAt = p.now()
	return p.users.Update(ctx, user)
}

// Provision crea la cuenta ya confirmada; si existe solo la confirma.
// La usan el modo demo y cmd/seed.
func (p *LocalProvider) Provision(ctx context.Context, email, password string, profile entity.Profile) error {
	err := p.SignUp(ctx, email, password, profile)
	var authErr *domain.AuthError
	if err != nil && !(errors.As(err, &authErr) && authErr.Message == MsgAlreadyRegistered) {
		return err
	}
	return p.Confirm(ctx, email)
}

// SignIn verifica email/password y emite access + refresh token.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	user, err := p.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if user == nil {
		return nil, domain.NewAuthError(MsgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &domain.AuthError{Message: MsgInvalidCredentials, Err: err}
	}
	if !user.Confirmed {
		return nil, domain.NewAuthError(MsgEmailNotConfirmed)
	}
	return p.issue(ctx, user)
}

// Refresh rota el refresh token y emite un access token nuevo.
func (p *LocalProvider) Refresh(ctx context.Context, refreshToken string) (*entity.Session, error) {
	if refreshToken == "" {
		return nil, domain.NewAuthError(MsgInvalidToken)
	}
	user, err := p.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if user == nil {
		return nil, domain.NewAuthError(MsgInvalidToken)
	}
	return p.issue(ctx, user)
}

// SignOut invalida el refresh token del usuario dueño del access token.
func (p *LocalProvider) SignOut(ctx context.Context, accessToken string) error {
	sub, err := jwt.Parse(p.jwtCfg.Secret, p.jwtCfg.Issuer, accessToken)
	if err != nil {
		return &domain.AuthError{Message: MsgInvalidToken, Err: err}
	}
	user, err := p.users.FindByID(ctx, sub.UserID)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	if user == nil || user.RefreshToken == "" {
		return nil
	}
	user.RefreshToken = ""
	user.UpdatedAt = p.now()
	return p.users.Update(ctx, user)
}

// User valida el access token y devuelve la identidad vigente del usuario.
// El rol se lee de la cuenta, no del token, para reflejar cambios del backend.
func (p *LocalProvider) User(ctx context.Context, accessToken string) (*entity.Identity, error) {
	sub, err := jwt.Parse(p.jwtCfg.Secret, p.jwtCfg.Issuer, accessToken)
	if err != nil {
		return nil, &domain.AuthError{Message: MsgInvalidToken, Err: err}
	}
	user, err := p.users.FindByID(ctx, sub.UserID)
	if err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}
	if user == nil {
		return nil, domain.NewAuthError(MsgInvalidToken)
	}
	id := user.Identity()
	return &id, nil
}

func (p *LocalProvider) issue(ctx context.Context, user *entity.User) (*entity.Session, error) {
	identity := user.Identity()
	token, exp, err := jwt.Generate(p.jwtCfg.Secret, p.jwtCfg.Issuer, jwt.Subject{
		UserID: identity.ID,
		Email:  identity.Email,
		Name:   identity.DisplayName,
		Role:   identity.Role,
	}, p.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	user.RefreshToken = uuid.New().String()
	user.UpdatedAt = p.now()
	if err := p.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &entity.Session{
		AccessToken:  token,
		RefreshToken: user.RefreshToken,
		ExpiresAt:    exp,
		Identity:     identity,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
