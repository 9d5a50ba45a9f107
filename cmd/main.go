package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jupiterclapton/cenackle/services/blog-service/config"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/adapters/secondary/security"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/services"
)

func main() {
	// 1. Config & Logger
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	initLogger(cfg)
	slog.Info("🚀 Starting Blog Service", "env", cfg.Env, "store", cfg.StoreDriver, "assets", cfg.Assets.Backend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Télémétrie (Tracing)
	tp, err := initTracer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() { _ = tp.Shutdown(context.Background()) }()
	}

	// 3. Infrastructure: Stockage (Postgres ou mémoire)
	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Unable to open store", "error", err)
		os.Exit(1)
	}
	defer store.close()

	// 4. Infrastructure: Event Broker (NATS) et images
	publisher, closePublisher := openPublisher(ctx, cfg)
	defer closePublisher()

	assetStore, err := openAssets(cfg)
	if err != nil {
		slog.Error("Unable to init asset store", "error", err)
		os.Exit(1)
	}

	// 5. Sécurité
	hasher, err := security.NewHasher(cfg.PasswordHash, security.DefaultArgon2Params, security.DefaultBcryptCost)
	if err != nil {
		slog.Error("Invalid password hasher", "error", err)
		os.Exit(1)
	}
	tokens, err := security.NewJWTProvider(cfg.JWTSecret, cfg.TokenTTL, cfg.ServiceName)
	if err != nil {
		slog.Error("Invalid token configuration", "error", err)
		os.Exit(1)
	}

	// 6. Initialisation du Core (Domain Logic)
	blogService := services.NewBlogService(services.Deps{
		Accounts:  store.accounts,
		Posts:     store.posts,
		Tx:        store.tx,
		Hasher:    hasher,
		Tokens:    tokens,
		Assets:    assetStore,
		Publisher: publisher,
		Logger:    slog.Default(),
	}, cfg.PostsPerPage)

	// 7. Démarrage Graceful
	srvHTTP := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           newRouter(cfg, blogService, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("📡 Blog Service listening", "port", cfg.HTTPPort)
		if err := srvHTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("🛑 Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srvHTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("👋 Server exited")
}
