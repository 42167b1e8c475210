// seed crea el esquema en PostgreSQL, carga el catálogo de demo y deja listas
// las cuentas de demo (admin y staff) ya confirmadas.
//
// Uso: BACKEND=postgres DATABASE_URL=... go run ./cmd/seed
// Es idempotente: las filas y cuentas que ya existen se saltan.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/andidelouise/TOKO-APP-V2/internal/application/auth"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/memory"
	"github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/postgres"
	"github.com/andidelouise/TOKO-APP-V2/pkg/config"
	"github.com/andidelouise/TOKO-APP-V2/pkg/logger"
)

const codeUniqueViolation = "23505"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	gw := postgres.NewGateway(pool)
	for _, table := range memory.DemoData() {
		inserted := 0
		for _, row := range table.Rows {
			if _, err := gw.Insert(ctx, table.Entity, row); err != nil {
				var gerr *domain.GatewayError
				if errors.As(err, &gerr) && gerr.Code == codeUniqueViolation {
					continue
				}
				log.Error().Err(err).Str("entity", table.Entity).Interface("id", row["id"]).Msg("insertar fila de demo")
				os.Exit(1)
			}
			inserted++
		}
		log.Info().Str("entity", table.Entity).Int("inserted", inserted).Int("total", len(table.Rows)).Msg("catálogo de demo")
	}

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido para crear las cuentas de demo")
	}
	provider := auth.NewLocalProvider(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	accounts := []struct {
		email, password string
		profile         entity.Profile
	}{
		{memory.DemoAdminEmail, memory.DemoAdminPassword, entity.Profile{DisplayName: "Admin Toko", Role: entity.RoleAdmin}},
		{memory.DemoUserEmail, memory.DemoUserPassword, entity.Profile{DisplayName: "Staf Toko", Role: entity.RoleUser}},
	}
	for _, a := range accounts {
		if err := provider.Provision(ctx, a.email, a.password, a.profile); err != nil {
			log.Fatal().Err(err).Str("email", a.email).Msg("cuenta de demo")
		}
		log.Info().Str("email", a.email).Str("role", a.profile.Role).Msg("cuenta de demo lista")
	}
}
