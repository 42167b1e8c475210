package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpired el token venció; la sesión debe renovarse con el refresh token.
var ErrExpired = errors.New("jwt: token expirado")

// Claims incluye los claims estándar JWT más el perfil del usuario.
// Role viaja en el token para que la sesión restaurada no dependa de otra consulta.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"` // "admin" | "user"
}

// Subject datos del usuario que se firman en el token.
type Subject struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// Generate genera un token JWT firmado y devuelve también su expiración.
func Generate(secret, issuer string, sub Subject, expMinutes int) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	exp := now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: sub.UserID,
		Email:  sub.Email,
		Name:   sub.Name,
		Role:   sub.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Parse valida firma (solo HS256), emisor y vigencia, y devuelve el sujeto firmado.
// Un token vencido devuelve un error que envuelve ErrExpired. issuer vacío no se comprueba.
func Parse(secret, issuer, tokenString string) (*Subject, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %v", ErrExpired, err)
	case err != nil:
		return nil, fmt.Errorf("jwt: %w", err)
	}
	return &Subject{UserID: claims.UserID, Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}
