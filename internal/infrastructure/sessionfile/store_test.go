package sessionfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
)

func TestStore_GuardarCargarBorrar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := New(path)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, got, "sin archivo no hay sesión")

	exp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.Save(&entity.Session{
		AccessToken: "at", RefreshToken: "rt", ExpiresAt: exp,
		Identity: entity.Identity{ID: "u1", Role: entity.RoleAdmin},
	}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err = s.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "at", got.AccessToken)
	assert.Equal(t, "rt", got.RefreshToken)
	assert.True(t, exp.Equal(got.ExpiresAt))
	assert.Empty(t, got.Identity.ID, "la identidad no se persiste")

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	got, err = s.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ArchivoCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no-json"), 0o600))
	_, err := New(path).Load()
	assert.Error(t, err)
}
