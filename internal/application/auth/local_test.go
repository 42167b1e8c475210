package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/auth"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/memory"
)

func newProvider() *auth.LocalProvider {
	return auth.NewLocalProvider(memory.NewUserRepository(), auth.JWTConfig{
		Secret: "test-secret", ExpMinutes: 60, Issuer: "toko-app-test",
	})
}

func registerConfirmed(t *testing.T, p *auth.LocalProvider, email, role string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, p.SignUp(ctx, email, "rahasia", entity.Profile{DisplayName: "Andi", Role: role}))
	require.NoError(t, p.Confirm(ctx, email))
}

func assertAuthMessage(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, domain.IsAuth(err), "se esperaba AuthError, llegó %T", err)
	assert.Equal(t, msg, err.Error())
}

// ─── registro ────────────────────────────────────────────────────────────────

func TestSignUp_PasswordCorto(t *testing.T) {
	err := newProvider().SignUp(context.Background(), "a@toko.id", "12345", entity.Profile{})
	assertAuthMessage(t, err, auth.MsgWeakPassword)
}

func TestSignUp_EmailDuplicado(t *testing.T) {
	p := newProvider()
	ctx := context.Background()
	require.NoError(t, p.SignUp(ctx, "a@toko.id", "rahasia", entity.Profile{}))
	err := p.SignUp(ctx, "A@toko.id ", "rahasia", entity.Profile{})
	assertAuthMessage(t, err, auth.MsgAlreadyRegistered)
}

func TestProvision_Idempotente(t *testing.T) {
	p := newProvider()
	ctx := context.Background()
	require.NoError(t, p.SignUp(ctx, "lama@toko.id", "rahasia", entity.Profile{}))

	require.NoError(t, p.Provision(ctx, "lama@toko.id", "rahasia", entity.Profile{}), "cuenta existente: solo confirma")
	require.NoError(t, p.Provision(ctx, "baru@toko.id", "rahasia", entity.Profile{Role: "admin"}))

	_, err := p.SignIn(ctx, "lama@toko.id", "rahasia")
	assert.NoError(t, err)
	sess, err := p.SignIn(ctx, "baru@toko.id", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, sess.Identity.Role)

	assertAuthMessage(t, p.Provision(ctx, "lemah@toko.id", "123", entity.Profile{}), auth.MsgWeakPassword)
}

func TestSignIn_SinConfirmar(t *testing.T) {
	p := newProvider()
	ctx := context.Background()
	require.NoError(t, p.SignUp(ctx, "a@toko.id", "rahasia", entity.Profile{}))

	_, err := p.SignIn(ctx, "a@toko.id", "rahasia")
	assertAuthMessage(t, err, auth.MsgEmailNotConfirmed)
}

// ─── inicio de sesión ────────────────────────────────────────────────────────

func TestSignIn_CredencialesInvalidas(t *testing.T) {
	p := newProvider()
	registerConfirmed(t, p, "a@toko.id", "admin")

	_, err := p.SignIn(context.Background(), "a@toko.id", "salah!")
	assertAuthMessage(t, err, auth.MsgInvalidCredentials)

	_, err = p.SignIn(context.Background(), "nadie@toko.id", "rahasia")
	assertAuthMessage(t, err, auth.MsgInvalidCredentials)
}

func TestSignIn_EmiteSesionConRol(t *testing.T) {
	p := newProvider()
	registerConfirmed(t, p, "a@toko.id", "admin")

	sess, err := p.SignIn(context.Background(), "a@toko.id", "rahasia")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)
	assert.Equal(t, entity.RoleAdmin, sess.Identity.Role)
	assert.Equal(t, "Andi", sess.Identity.DisplayName)

	id, err := p.User(context.Background(), sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.Identity, *id)
}

func TestSignUp_RolPenggunaEsUser(t *testing.T) {
	p := newProvider()
	registerConfirmed(t, p, "b@toko.id", "pengguna")

	sess, err := p.SignIn(context.Background(), "b@toko.id", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, sess.Identity.Role)
}

// ─── refresh / sign out ──────────────────────────────────────────────────────

func TestRefresh_RotaToken(t *testing.T) {
	p := newProvider()
	registerConfirmed(t, p, "a@toko.id", "user")
	ctx := context.Background()

	sess, err := p.SignIn(ctx, "a@toko.id", "rahasia")
	require.NoError(t, err)

	fresh, err := p.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, sess.RefreshToken, fresh.RefreshToken)

	_, err = p.Refresh(ctx, sess.RefreshToken)
	assertAuthMessage(t, err, auth.MsgInvalidToken)
}

func TestSignOut_InvalidaRefresh(t *testing.T) {
	p := newProvider()
	registerConfirmed(t, p, "a@toko.id", "user")
	ctx := context.Background()

	sess, err := p.SignIn(ctx, "a@toko.id", "rahasia")
	require.NoError(t, err)
	require.NoError(t, p.SignOut(ctx, sess.AccessToken))

	_, err = p.Refresh(ctx, sess.RefreshToken)
	assertAuthMessage(t, err, auth.MsgInvalidToken)
}

func TestUser_TokenInvalido(t *testing.T) {
	_, err := newProvider().User(context.Background(), "x.y.z")
	assertAuthMessage(t, err, auth.MsgInvalidToken)
}
