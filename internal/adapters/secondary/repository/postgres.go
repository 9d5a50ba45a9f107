package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

// querier est satisfait à la fois par *pgxpool.Pool et pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgTxKey struct{}

// Postgres porte le pool et la transaction courante (via le contexte).
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres reçoit un *pgxpool.Pool déjà configuré (tracer otelpgx, etc.) par le main.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// WithinTx ouvre une transaction et la rend visible aux repositories via ctx.
// Un appel imbriqué réutilise la transaction existante.
func (p *Postgres) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(pgTxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}
	return pgx.BeginTxFunc(ctx, p.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, pgTxKey{}, tx))
	})
}

func (p *Postgres) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(pgTxKey{}).(pgx.Tx); ok {
		return tx
	}
	return p.pool
}

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS accounts (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		status        TEXT NOT NULL,
		post_ids      TEXT[] NOT NULL DEFAULT '{}',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS posts (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		image_url  TEXT NOT NULL,
		creator_id TEXT NOT NULL REFERENCES accounts (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS posts_created_at_idx ON posts (created_at DESC);
`

// Migrate crée les tables si elles n'existent pas (idempotent).
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("db: migrate: %w", err)
	}
	return nil
}

// handleError traduit les codes d'erreur PostgreSQL en erreurs du Domaine
func handleError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRecordNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return domain.ErrDuplicateEmail
		case "23503": // foreign_key_violation
			return domain.ErrRecordNotFound
		}
	}
	return fmt.Errorf("db: %s: %w", op, err)
}
