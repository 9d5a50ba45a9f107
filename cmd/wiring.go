package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jupiterclapton/cenackle/services/blog-service/config"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/adapters/secondary/assets"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/adapters/secondary/eventbroker"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/adapters/secondary/repository"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
)

// storeHandles regroupe les repositories d'un même backend.
type storeHandles struct {
	accounts ports.AccountRepository
	posts    ports.PostRepository
	tx       ports.Transactor
	close    func()
}

func openStore(ctx context.Context, cfg *config.Config) (*storeHandles, error) {
	if cfg.StoreDriver == "memory" {
		slog.Warn("⚠️ Using in-memory store, data is lost on restart")
		mem := repository.NewMemoryStore()
		return &storeHandles{accounts: mem.Accounts(), posts: mem.Posts(), tx: mem, close: func() {}}, nil
	}

	dbConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	// Instrumentation SQL (Pour voir les requêtes dans Jaeger)
	dbConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	slog.Info("✅ Connected to Postgres")

	db := repository.NewPostgres(pool)
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &storeHandles{
		accounts: repository.NewPostgresAccountRepo(db),
		posts:    repository.NewPostgresPostRepo(db),
		tx:       db,
		close:    pool.Close,
	}, nil
}

// openPublisher ne bloque jamais le démarrage : sans NATS les événements sont simplement ignorés.
func openPublisher(ctx context.Context, cfg *config.Config) (ports.EventPublisher, func()) {
	if cfg.NatsUrl == "" {
		return eventbroker.NoopPublisher{}, func() {}
	}

	broker, err := eventbroker.NewNatsBroker(ctx, cfg.NatsUrl)
	if err != nil {
		slog.Warn("NATS unavailable, domain events disabled", "url", cfg.NatsUrl, "error", err)
		return eventbroker.NoopPublisher{}, func() {}
	}
	slog.Info("✅ Connected to NATS")
	return broker, broker.Close
}

func openAssets(cfg *config.Config) (ports.AssetStore, error) {
	switch cfg.Assets.Backend {
	case "minio":
		return assets.NewMinioStore(assets.MinioConfig{
			Endpoint:  cfg.Assets.MinioEndpoint,
			AccessKey: cfg.Assets.MinioAccessKey,
			SecretKey: cfg.Assets.MinioSecretKey,
			Bucket:    cfg.Assets.MinioBucket,
			Secure:    cfg.Assets.MinioSecure,
		})
	case "none":
		return assets.Noop{}, nil
	default:
		return assets.NewLocalStore(cfg.Assets.Dir), nil
	}
}
