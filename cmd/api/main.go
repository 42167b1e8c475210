// @title        Toko App API
// @version      2.0
// @description  Dashboard de inventario de toko: sesión, páginas CRUD (productos, categorías, proveedores, tiendas), dashboard y reportes.
// @BasePath     /
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/andidelouise/TOKO-APP-V2/docs"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/auth"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/pages"
	"github.com/andidelouise/TOKO-APP-V2/internal/application/session"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/entity"
	"github.com/andidelouise/TOKO-APP-V2/internal/domain/repository"
	"github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/memory"
	infrapdf "github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/pdf"
	"github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/postgres"
	"github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/sessionfile"
	"github.com/andidelouise/TOKO-APP-V2/internal/infrastructure/supabase"
	httpRouter "github.com/andidelouise/TOKO-APP-V2/internal/interfaces/http"
	"github.com/andidelouise/TOKO-APP-V2/pkg/config"
	"github.com/andidelouise/TOKO-APP-V2/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}

	// El gateway BaaS firma con el token de la sesión: se cablea después del store.
	var (
		provider   repository.AuthProvider
		gw         repository.Gateway
		newGateway func(*session.Store) repository.Gateway
	)
	switch cfg.Backend {
	case config.BackendSupabase:
		client := supabase.NewClient(supabase.Config{
			URL:     cfg.Supabase.URL,
			AnonKey: cfg.Supabase.AnonKey,
			Timeout: cfg.Supabase.Timeout,
		})
		provider = supabase.NewAuthProvider(client)
		newGateway = func(store *session.Store) repository.Gateway {
			return supabase.NewGateway(client, cfg.Supabase.AnonKey, store)
		}

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migración del esquema")
		}
		provider = auth.NewLocalProvider(postgres.NewUserRepository(pool), jwtCfg)
		gw = postgres.NewGateway(pool)

	case config.BackendMemory:
		memGW := memory.NewGateway()
		memory.SeedDemo(memGW)
		local := auth.NewLocalProvider(memory.NewUserRepository(), jwtCfg)
		provisionDemoAccounts(ctx, local, log)
		provider = local
		gw = memGW
	}

	var tokens session.TokenStore
	if cfg.Session.File != "" {
		tokens = sessionfile.New(cfg.Session.File)
	}
	store := session.NewStore(provider, tokens, log.Component("session"))
	if newGateway != nil {
		gw = newGateway(store)
	}
	store.Start(ctx)

	pdfGenerator := infrapdf.NewReportGenerator("Laporan Inventaris")
	registry := pages.NewRegistry(gw, store, pdfGenerator, log.Component("pages"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Toko App API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": cfg.Backend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session: store,
		Pages:   registry,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// provisionDemoAccounts crea las cuentas de demo ya confirmadas (BACKEND=memory).
func provisionDemoAccounts(ctx context.Context, p *auth.LocalProvider, log *logger.Logger) {
	accounts := []struct {
		email, password string
		profile         entity.Profile
	}{
		{memory.DemoAdminEmail, memory.DemoAdminPassword, entity.Profile{DisplayName: "Admin Toko", Role: entity.RoleAdmin}},
		{memory.DemoUserEmail, memory.DemoUserPassword, entity.Profile{DisplayName: "Staf Toko", Role: entity.RoleUser}},
	}
	for _, a := range accounts {
		if err := p.Provision(ctx, a.email, a.password, a.profile); err != nil {
			log.Fatal().Err(err).Str("email", a.email).Msg("cuenta de demo")
		}
		log.Info().Str("email", a.email).Str("role", a.profile.Role).Msg("cuenta de demo lista")
	}
}
