package supabase

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
)

const authPath = "/auth/v1"

type userResponse struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         userResponse `json:"user"`
}

var _ repository.AuthProvider = (*AuthProvider)(nil)

// AuthProvider AuthProvider sobre GoTrue (email + password).
type AuthProvider struct {
	http *resty.Client
	now  func() time.Time
}

// NewAuthProvider construye el proveedor sobre el cliente compartido.
func NewAuthProvider(client *resty.Client) *AuthProvider {
	return &AuthProvider{http: client, now: time.Now}
}

// SignIn POST /auth/v1/token?grant_type=password
func (p *AuthProvider) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	return p.token(ctx, "password", map[string]string{"email": strings.TrimSpace(email), "password": password})
}

// Refresh POST /auth/v1/token?grant_type=refresh_token
func (p *AuthProvider) Refresh(ctx context.Context, refreshToken string) (*entity.Session, error) {
	return p.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

func (p *AuthProvider) token(ctx context.Context, grant string, body map[string]string) (*entity.Session, error) {
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("grant_type", grant).
		SetBody(body).
		Post(authPath + "/token")
	if err != nil {
		return nil, networkError("auth", "token", err)
	}
	if resp.IsError() {
		return nil, authFailure(resp)
	}
	var tok tokenResponse
	if err := decodeJSON(resp.Body(), &tok); err != nil {
		return nil, networkError("auth", "token", err)
	}
	return p.session(tok), nil
}

func (p *AuthProvider) session(tok tokenResponse) *entity.Session {
	exp := time.Time{}
	switch {
	case tok.ExpiresAt > 0:
		exp = time.Unix(tok.ExpiresAt, 0)
	case tok.ExpiresIn > 0:
		exp = p.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return &entity.Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    exp,
		Identity:     identity(tok.User),
	}
}

// SignUp POST /auth/v1/signup con user_metadata {name, role}. No inicia sesión:
// el backend envía el email de verificación.
func (p *AuthProvider) SignUp(ctx context.Context, email, password string, profile entity.Profile) error {
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"email":    strings.TrimSpace(email),
			"password": password,
			"data": map[string]string{
				"name": profile.DisplayName,
				"role": entity.NormalizeRole(profile.Role),
			},
		}).
		Post(authPath + "/signup")
	if err != nil {
		return networkError("auth", "signup", err)
	}
	if resp.IsError() {
		return authFailure(resp)
	}
	return nil
}

// SignOut POST /auth/v1/logout con el token de la sesión.
func (p *AuthProvider) SignOut(ctx context.Context, accessToken string) error {
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Authorization", bearer(accessToken)).
		Post(authPath + "/logout")
	if err != nil {
		return networkError("auth", "logout", err)
	}
	if resp.IsError() {
		return authFailure(resp)
	}
	return nil
}

// User GET /auth/v1/user: identidad vigente del token.
func (p *AuthProvider) User(ctx context.Context, accessToken string) (*entity.Identity, error) {
	resp, err := p.http.R().
		SetContext(ctx).
		SetHeader("Authorization", bearer(accessToken)).
		Get(authPath + "/user")
	if err != nil {
		return nil, networkError("auth", "user", err)
	}
	if resp.IsError() {
		return nil, authFailure(resp)
	}
	var u userResponse
	if err := decodeJSON(resp.Body(), &u); err != nil {
		return nil, networkError("auth", "user", err)
	}
	id := identity(u)
	return &id, nil
}

// identity: name y role salen de user_metadata; sin role es user.
func identity(u userResponse) entity.Identity {
	meta := func(key string) string {
		if s, ok := u.UserMetadata[key].(string); ok {
			return s
		}
		return ""
	}
	return entity.Identity{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: meta("name"),
		Role:        entity.NormalizeRole(meta("role")),
	}
}
