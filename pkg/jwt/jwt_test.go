package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/andidelouise/TOKO-APP-V2/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "toko-app-test"
)

var testSubject = pkgjwt.Subject{
	UserID: "00000000-0000-0000-0000-000000000001",
	Email:  "admin@toko.id",
	Name:   "Andi",
	Role:   "admin",
}

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, exp, err := pkgjwt.Generate(testSecret, testIssuer, testSubject, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	sub, err := pkgjwt.Parse(testSecret, testIssuer, tok)
	require.NoError(t, err)
	assert.Equal(t, testSubject, *sub)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, testIssuer, testSubject, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, testIssuer, tok)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired, "token expirado debe retornar ErrExpired")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, testIssuer, testSubject, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", testIssuer, tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio(t *testing.T) {
	_, _, err := pkgjwt.Generate("", testIssuer, testSubject, 60)
	assert.Error(t, err)
	_, err = pkgjwt.Parse("", testIssuer, "x.y.z")
	assert.Error(t, err)
}

func TestJWT_EmisorDistinto_RetornaError(t *testing.T) {
	tok, _, err := pkgjwt.Generate(testSecret, "otro-emisor", testSubject, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, testIssuer, tok)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, pkgjwt.ErrExpired)

	_, err = pkgjwt.Parse(testSecret, "", tok)
	assert.NoError(t, err, "sin emisor esperado no se comprueba")
}
