package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, BackendSupabase, cfg.Backend)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, ".toko-session.json", cfg.Session.File)
	assert.Equal(t, time.Duration(0), cfg.Supabase.Timeout, "sin timeout de aplicación por defecto")
	assert.Equal(t, int32(8), cfg.DB.MaxConns)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("BACKEND", "Memory")
	t.Setenv("SUPABASE_URL", "https://demo.supabase.co/")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_MINUTES", "abc")
	t.Setenv("DB_FORCE_IPV4", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "https://demo.supabase.co", cfg.Supabase.URL, "se recorta la barra final")
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration, "valor inválido cae al default")
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestValidate(t *testing.T) {
	cfg := fromViper(viper.New())
	assert.Error(t, cfg.Validate(), "supabase sin URL ni llave")

	cfg.Supabase.URL = "https://demo.supabase.co"
	cfg.Supabase.AnonKey = "anon"
	assert.NoError(t, cfg.Validate())

	cfg.Backend = BackendPostgres
	assert.Error(t, cfg.Validate(), "postgres sin JWT_SECRET")
	cfg.JWT.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.Backend = "mongo"
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "toko", Password: "p@ss:w", DBName: "toko_app", SSLMode: "disable"}
	assert.Equal(t, "postgres://toko:p%40ss%3Aw@db:5432/toko_app?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
