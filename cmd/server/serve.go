package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/otcheredev/hospital-console/internal/apiclient"
	"github.com/otcheredev/hospital-console/internal/config"
	"github.com/otcheredev/hospital-console/internal/database"
	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/handlers"
	"github.com/otcheredev/hospital-console/internal/navigation"
	"github.com/otcheredev/hospital-console/internal/repository"
	"github.com/otcheredev/hospital-console/internal/runtimeconfig"
	"github.com/otcheredev/hospital-console/internal/store"
	"github.com/otcheredev/hospital-console/pkg/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the console HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info().Str("upstream", cfg.Upstream.BaseURL).Msg("Starting hospital console")

	catalog, err := loadCatalog(cfg.Features.TierFile)
	if err != nil {
		return err
	}

	health := map[string]handlers.Pinger{}

	// Database is optional; without it the domain table comes from config
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.Connect(databaseConfig(cfg))
		if err != nil {
			return err
		}
		defer database.Close(db)
		health["database"] = handlers.PingerFunc(func(context.Context) error { return database.Ping(db) })
	}

	tenants, err := loadTenants(context.Background(), cfg, db)
	if err != nil {
		return err
	}

	resolver, err := runtimeconfig.NewResolver(catalog, runtimeconfig.Options{
		Tenants:    tenants,
		BaseDomain: cfg.Tenancy.BaseDomain,
		LocalHosts: cfg.Tenancy.LocalHosts,
	})
	if err != nil {
		return fmt.Errorf("failed to build runtime resolver: %w", err)
	}
	log.Info().Int("tenants", len(tenants)).Str("base_domain", cfg.Tenancy.BaseDomain).Msg("Runtime resolver ready")

	var sessions store.Store
	if cfg.Store.Type == "redis" {
		rs, err := store.NewRedisStore(store.RedisOptions{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Store.TTL,
		})
		if err != nil {
			return err
		}
		defer rs.Close()
		sessions = rs
		health["store"] = handlers.PingerFunc(rs.Ping)
		log.Info().Str("addr", cfg.RedisAddr()).Msg("Redis session store initialized")
	} else {
		sessions = store.NewMemoryStore()
		log.Info().Msg("Memory session store initialized")
	}

	deps := handlers.RouterDeps{
		Resolver:   resolver,
		Store:      sessions,
		Client:     apiclient.New(cfg.Upstream.BaseURL),
		Navigation: navigation.DefaultRegistry(),
		Health:     health,
		JWTSecret:  []byte(cfg.Auth.JWTSecret),
		JWTIssuer:  cfg.Auth.Issuer,
		Metrics:    cfg.Metrics.Enabled,
		CORS: cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			ExposedHeaders:   []string{"Content-Length", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		},
	}
	if db != nil {
		deps.Audit = repository.NewConsoleAuditRepository(db)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handlers.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

func loadCatalog(path string) (*features.Catalog, error) {
	if path == "" {
		return features.DefaultCatalog(), nil
	}
	catalog, err := features.LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", path).Msg("Tier definitions loaded")
	return catalog, nil
}

// loadTenants reads the domain table from the database when there is one,
// seeding it with the demo tenants first if asked to
func loadTenants(ctx context.Context, cfg *config.Config, db *gorm.DB) ([]runtimeconfig.Tenant, error) {
	if db == nil {
		if cfg.Tenancy.UseDemoTenants {
			return runtimeconfig.DemoTenants(), nil
		}
		return nil, nil
	}

	repo := repository.NewTenantRepository(db)
	if cfg.Tenancy.UseDemoTenants {
		if err := repo.Seed(ctx, runtimeconfig.DemoTenants()); err != nil {
			return nil, err
		}
	}
	return repo.ListActive(ctx)
}

func databaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}
}
