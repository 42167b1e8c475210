package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

// ─── fakes ───────────────────────────────────────────────────────────────────

type mockProvider struct{ mock.Mock }

func (m *mockProvider) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*entity.Session)
	return s, args.Error(1)
}

func (m *mockProvider) SignUp(ctx context.Context, email, password string, p entity.Profile) error {
	return m.Called(ctx, email, password, p).Error(0)
}

func (m *mockProvider) SignOut(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *mockProvider) Refresh(ctx context.Context, refreshToken string) (*entity.Session, error) {
	args := m.Called(ctx, refreshToken)
	s, _ := args.Get(0).(*entity.Session)
	return s, args.Error(1)
}

func (m *mockProvider) User(ctx context.Context, accessToken string) (*entity.Identity, error) {
	args := m.Called(ctx, accessToken)
	id, _ := args.Get(0).(*entity.Identity)
	return id, args.Error(1)
}

type memTokens struct {
	mu      sync.Mutex
	saved   *entity.Session
	cleared int
}

func (m *memTokens) Load() (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved, nil
}

func (m *memTokens) Save(s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = s
	return nil
}

func (m *memTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = nil
	m.cleared++
	return nil
}

func adminSession() *entity.Session {
	return &entity.Session{
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(time.Hour),
		Identity:     entity.Identity{ID: "u1", Email: "admin@toko.id", DisplayName: "Andi", Role: entity.RoleAdmin},
	}
}

func waitReady(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.WaitReady(ctx))
}

// ─── restauración ────────────────────────────────────────────────────────────

func TestStart_SinSesionGuardada(t *testing.T) {
	p := new(mockProvider)
	s := NewStore(p, &memTokens{}, zerolog.Nop())
	assert.True(t, s.Loading())

	s.Start(context.Background())
	waitReady(t, s)

	assert.False(t, s.Loading())
	assert.Nil(t, s.Current())
	p.AssertNotCalled(t, "User", mock.Anything, mock.Anything)
}

func TestStart_RestauraSesionVigente(t *testing.T) {
	saved := adminSession()
	p := new(mockProvider)
	p.On("User", mock.Anything, "at-1").Return(&saved.Identity, nil)

	s := NewStore(p, &memTokens{saved: saved}, zerolog.Nop())
	var got []*entity.Identity
	s.Subscribe(func(id *entity.Identity) { got = append(got, id) })

	s.Start(context.Background())
	waitReady(t, s)

	require.NotNil(t, s.Current())
	assert.Equal(t, "u1", s.Current().ID)
	assert.True(t, s.IsAdmin())
	require.Len(t, got, 1)
	p.AssertExpectations(t)
}

func TestStart_SesionExpiradaSeRenueva(t *testing.T) {
	saved := adminSession()
	saved.ExpiresAt = time.Now().Add(-time.Minute)
	fresh := adminSession()
	fresh.AccessToken = "at-2"

	p := new(mockProvider)
	p.On("Refresh", mock.Anything, "rt-1").Return(fresh, nil)
	p.On("User", mock.Anything, "at-2").Return(&fresh.Identity, nil)
	tokens := &memTokens{saved: saved}

	s := NewStore(p, tokens, zerolog.Nop())
	s.Start(context.Background())
	waitReady(t, s)

	assert.Equal(t, "at-2", s.AccessToken(context.Background()))
	assert.Equal(t, "at-2", tokens.saved.AccessToken)
}

func TestStart_SesionRechazadaSeDescarta(t *testing.T) {
	p := new(mockProvider)
	p.On("User", mock.Anything, "at-1").Return(nil, domain.NewAuthError("invalid JWT"))
	tokens := &memTokens{saved: adminSession()}

	s := NewStore(p, tokens, zerolog.Nop())
	s.Start(context.Background())
	waitReady(t, s)

	assert.Nil(t, s.Current())
	assert.Nil(t, tokens.saved)
	assert.Equal(t, 1, tokens.cleared)
}

// ─── signIn / signUp / signOut ───────────────────────────────────────────────

func TestSignIn_Exito_NotificaYPersiste(t *testing.T) {
	sess := adminSession()
	p := new(mockProvider)
	p.On("SignIn", mock.Anything, "admin@toko.id", "rahasia").Return(sess, nil)
	tokens := &memTokens{}

	s := NewStore(p, tokens, zerolog.Nop())
	var notified *entity.Identity
	s.Subscribe(func(id *entity.Identity) { notified = id })

	id, err := s.SignIn(context.Background(), "admin@toko.id", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.ID)
	require.NotNil(t, notified)
	assert.Equal(t, "admin@toko.id", notified.Email)
	assert.Same(t, sess, tokens.saved)
}

func TestSignIn_CredencialesInvalidas_NoCambiaIdentidad(t *testing.T) {
	p := new(mockProvider)
	p.On("SignIn", mock.Anything, "x@toko.id", "bad").
		Return(nil, domain.NewAuthError("Invalid login credentials"))

	s := NewStore(p, nil, zerolog.Nop())
	calls := 0
	s.Subscribe(func(*entity.Identity) { calls++ })

	_, err := s.SignIn(context.Background(), "x@toko.id", "bad")
	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", err.Error())
	assert.True(t, domain.IsAuth(err))
	assert.Nil(t, s.Current())
	assert.Zero(t, calls)
}

func TestSignUp_DevuelveMensajeYNoInicia(t *testing.T) {
	p := new(mockProvider)
	p.On("SignUp", mock.Anything, "baru@toko.id", "rahasia",
		entity.Profile{DisplayName: "Budi", Role: entity.RoleUser}).Return(nil)

	s := NewStore(p, nil, zerolog.Nop())
	msg, err := s.SignUp(context.Background(), "baru@toko.id", "rahasia", entity.Profile{DisplayName: "Budi", Role: "Superuser"})
	require.NoError(t, err)
	assert.Equal(t, SignUpMessage, msg)
	assert.Nil(t, s.Current())
	p.AssertExpectations(t)
}

func TestSignOut_LimpiaAunqueFalleBackend(t *testing.T) {
	sess := adminSession()
	p := new(mockProvider)
	p.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(sess, nil)
	p.On("SignOut", mock.Anything, "at-1").Return(errors.New("network down"))
	tokens := &memTokens{}

	s := NewStore(p, tokens, zerolog.Nop())
	_, err := s.SignIn(context.Background(), "admin@toko.id", "rahasia")
	require.NoError(t, err)

	var last *entity.Identity = &entity.Identity{}
	s.Subscribe(func(id *entity.Identity) { last = id })
	s.SignOut(context.Background())

	assert.Nil(t, s.Current())
	assert.Nil(t, last)
	assert.False(t, s.IsAdmin())
	assert.Nil(t, tokens.saved)
	assert.Empty(t, s.AccessToken(context.Background()))
}

// ─── suscripción ─────────────────────────────────────────────────────────────

func TestSubscribe_Unsubscribe(t *testing.T) {
	p := new(mockProvider)
	p.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(adminSession(), nil)
	p.On("SignOut", mock.Anything, mock.Anything).Return(nil)

	s := NewStore(p, nil, zerolog.Nop())
	calls := 0
	unsubscribe := s.Subscribe(func(*entity.Identity) { calls++ })

	_, _ = s.SignIn(context.Background(), "a@toko.id", "rahasia")
	unsubscribe()
	unsubscribe()
	s.SignOut(context.Background())

	assert.Equal(t, 1, calls)
}

func TestCurrent_DevuelveCopia(t *testing.T) {
	p := new(mockProvider)
	p.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(adminSession(), nil)

	s := NewStore(p, nil, zerolog.Nop())
	_, _ = s.SignIn(context.Background(), "a@toko.id", "rahasia")

	id := s.Current()
	id.Role = entity.RoleUser
	assert.True(t, s.IsAdmin())
}

func TestAccessToken_RenuevaAlExpirar(t *testing.T) {
	expired := adminSession()
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	fresh := adminSession()
	fresh.AccessToken = "at-nuevo"
	fresh.Identity = entity.Identity{}

	p := new(mockProvider)
	p.On("SignIn", mock.Anything, mock.Anything, mock.Anything).Return(expired, nil)
	p.On("Refresh", mock.Anything, "rt-1").Return(fresh, nil).Once()

	s := NewStore(p, nil, zerolog.Nop())
	_, _ = s.SignIn(context.Background(), "a@toko.id", "rahasia")

	assert.Equal(t, "at-nuevo", s.AccessToken(context.Background()))
	assert.Equal(t, "at-nuevo", s.AccessToken(context.Background()))
	// La identidad se conserva tras la renovación.
	assert.Equal(t, "u1", s.Current().ID)
	p.AssertNumberOfCalls(t, "Refresh", 1)
}
