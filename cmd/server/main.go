// Package main is the entry point for the posledger API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"posledger/internal/config"
	"posledger/internal/domain/auth"
	"posledger/internal/domain/catalog/item"
	"posledger/internal/domain/docnum"
	"posledger/internal/domain/documents"
	"posledger/internal/domain/ledger"
	v1 "posledger/internal/infrastructure/http/v1"
	"posledger/internal/infrastructure/storage/memory"
	"posledger/internal/infrastructure/storage/postgres"
	"posledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting posledger server", "env", cfg.App.Env)

	// --- Storage ---
	var (
		docRepo    documents.Repository
		itemRepo   item.Repository
		userRepo   auth.Repository
		readyCheck func(c *gin.Context) error
	)

	if cfg.DB.InMemory() {
		log.Warnw("no DATABASE_URL set, using in-memory store")
		store := memory.NewStore()
		docRepo = store
		itemRepo = store.Items()
		userRepo = store.Users()
	} else {
		poolCfg := postgres.DefaultPoolConfig(cfg.DB.DSN)
		poolCfg.MaxConns = cfg.DB.MaxConns
		pool, err := postgres.NewPool(ctx, poolCfg)
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalw("failed to migrate schema", "error", err)
		}

		changelog, err := postgres.NewChangelog(pool)
		if err != nil {
			log.Fatalw("failed to create changelog", "error", err)
		}

		docRepo = postgres.NewDocumentRepo(pool, changelog)
		itemRepo = postgres.NewItemRepo(pool, changelog)
		userRepo = postgres.NewUserRepo(pool)
		readyCheck = func(c *gin.Context) error {
			return pool.Ping(c.Request.Context())
		}
	}

	// --- Services ---
	itemService := item.NewService(itemRepo)
	ledgerService := ledger.NewService(docRepo, itemRepo)
	numbers := docnum.NewService(docRepo, nil)

	docServices := make(map[documents.Kind]*documents.Service)
	for _, kind := range documents.Kinds() {
		docServices[kind] = documents.NewService(kind, docRepo, itemService, numbers, ledgerService)
	}

	jwtConfig := auth.DefaultJWTConfig(cfg.JWT.Secret)
	jwtConfig.AccessTokenTTL = cfg.JWT.TTL
	jwtService := auth.NewJWTService(jwtConfig)

	authService := auth.NewService(userRepo, jwtService, auth.DefaultServiceConfig())
	if err := authService.Bootstrap(ctx); err != nil {
		log.Fatalw("failed to bootstrap admin user", "error", err)
	}

	// --- HTTP server ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:       log,
		JWTValidator: jwtService,
		AuthService:  authService,
		ItemService:  itemService,
		Ledger:       ledgerService,
		Documents:    docServices,
		ReadyCheck:   readyCheck,
	})

	server := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: router,
	}

	go func() {
		log.Infow("server listening", "addr", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}
	log.Infow("server stopped")
}
