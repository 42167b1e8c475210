// Package supabase implementa el Resource Gateway y el AuthProvider sobre la
// API REST del backend BaaS (PostgREST en /rest/v1, GoTrue en /auth/v1).
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config endpoint y clave pública del proyecto.
type Config struct {
	URL     string
	AnonKey string
	// Timeout 0 deja los valores por defecto del transporte.
	Timeout time.Duration
}

// NewClient construye el cliente HTTP compartido por el gateway y el auth provider.
func NewClient(cfg Config) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "toko-app/2")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return client
}

// decodeJSON decodifica preservando los números como json.Number; los
// decodificadores de records deciden si son enteros o decimales.
func decodeJSON(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decodificar respuesta: %w", err)
	}
	return nil
}

func bearer(token string) string { return "Bearer " + token }
