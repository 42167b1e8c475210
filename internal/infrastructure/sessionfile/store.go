// Package sessionfile persiste la sesión en un archivo JSON local para
// restaurarla al arrancar el proceso.
package sessionfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/session"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

var _ session.TokenStore = (*Store)(nil)

// Solo se guardan los tokens; la identidad se vuelve a pedir al backend al restaurar.
type persisted struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Store TokenStore sobre un archivo con permisos 0600.
type Store struct {
	path string
}

// New construye el store sobre path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load lee la sesión guardada; (nil, nil) si no hay archivo.
func (s *Store) Load() (*entity.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sessionfile: leer: %w", err)
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("sessionfile: decodificar: %w", err)
	}
	if p.AccessToken == "" {
		return nil, nil
	}
	return &entity.Session{AccessToken: p.AccessToken, RefreshToken: p.RefreshToken, ExpiresAt: p.ExpiresAt}, nil
}

// Save escribe la sesión de forma atómica (archivo temporal + rename).
func (s *Store) Save(sess *entity.Session) error {
	if sess == nil {
		return s.Clear()
	}
	data, err := json.Marshal(persisted{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("sessionfile: codificar: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("sessionfile: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("sessionfile: temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("sessionfile: escribir: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("sessionfile: permisos: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("sessionfile: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("sessionfile: renombrar: %w", err)
	}
	return nil
}

// Clear borra el archivo; no es error si no existe.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("sessionfile: borrar: %w", err)
	}
	return nil
}
