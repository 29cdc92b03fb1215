package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/facturapp/facturacion-api/internal/config"
)

// App ties together configuration, storage, routing and the HTTP server.
type App struct {
	config *config.Config
	logger *zap.Logger
	db     *pgxpool.Pool
	router *chi.Mux
	server *http.Server
}

// NewApp loads configuration and wires every dependency of the service.
func NewApp() (*App, error) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbPool, err := initDatabase(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	deps := initDependencies(cfg, dbPool, logger)

	// The four standard payment kinds must exist before the first factura.
	if err := deps.repos.metodoPago.EnsureDefaults(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to seed metodos de pago: %w", err)
	}

	router := setupRouter(deps, deps.jwtManager, logger)
	server := createServer(cfg.RunAddress, router)

	return &App{
		config: cfg,
		logger: logger,
		db:     dbPool,
		router: router,
		server: server,
	}, nil
}

// Run starts the HTTP server and performs a graceful shutdown on SIGINT or
// SIGTERM.
func (a *App) Run() error {
	if err := a.runServer(); err != nil {
		return err
	}

	a.shutdown()

	return nil
}
