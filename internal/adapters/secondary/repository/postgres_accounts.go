package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

const accountColumns = `id, name, email, password_hash, status, post_ids`

type PostgresAccountRepo struct {
	db *Postgres
}

func NewPostgresAccountRepo(db *Postgres) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

func (r *PostgresAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	q := `
		INSERT INTO accounts (id, name, email, password_hash, status, post_ids)
		VALUES (@id, @name, @email, @password_hash, @status, @post_ids)
	`
	args := pgx.NamedArgs{
		"id":            a.ID,
		"name":          a.Name,
		"email":         a.Email,
		"password_hash": a.PasswordHash,
		"status":        a.Status,
		"post_ids":      nonNil(a.PostIDs),
	}
	if _, err := r.db.conn(ctx).Exec(ctx, q, args); err != nil {
		return handleError("create account", err)
	}
	return nil
}

func (r *PostgresAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.scanOne(ctx, "get account by email", q, email)
}

func (r *PostgresAccountRepo) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	q := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(ctx, "get account by id", q, id)
}

func (r *PostgresAccountRepo) Save(ctx context.Context, a *domain.Account) error {
	q := `
		UPDATE accounts
		SET name = @name, email = @email, password_hash = @password_hash, status = @status, updated_at = now()
		WHERE id = @id
		RETURNING post_ids
	`
	args := pgx.NamedArgs{
		"id":            a.ID,
		"name":          a.Name,
		"email":         a.Email,
		"password_hash": a.PasswordHash,
		"status":        a.Status,
	}
	// post_ids n'est jamais écrit ici : on relit la valeur courante
	if err := r.db.conn(ctx).QueryRow(ctx, q, args).Scan(&a.PostIDs); err != nil {
		return handleError("update account", err)
	}
	a.PostIDs = nonNil(a.PostIDs)
	return nil
}

func (r *PostgresAccountRepo) AppendPost(ctx context.Context, accountID, postID string) error {
	q := `
		UPDATE accounts
		SET post_ids = CASE WHEN $2 = ANY (post_ids) THEN post_ids ELSE array_append(post_ids, $2) END,
		    updated_at = now()
		WHERE id = $1
	`
	return r.execOne(ctx, "append post", q, accountID, postID)
}

func (r *PostgresAccountRepo) RemovePost(ctx context.Context, accountID, postID string) error {
	q := `UPDATE accounts SET post_ids = array_remove(post_ids, $2), updated_at = now() WHERE id = $1`
	return r.execOne(ctx, "remove post", q, accountID, postID)
}

// --- HELPERS ---

func (r *PostgresAccountRepo) scanOne(ctx context.Context, op, q string, args ...any) (*domain.Account, error) {
	var a domain.Account
	err := r.db.conn(ctx).QueryRow(ctx, q, args...).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Status, &a.PostIDs)
	if err != nil {
		return nil, handleError(op, err)
	}
	a.PostIDs = nonNil(a.PostIDs)
	return &a, nil
}

func (r *PostgresAccountRepo) execOne(ctx context.Context, op, q string, args ...any) error {
	tag, err := r.db.conn(ctx).Exec(ctx, q, args...)
	if err != nil {
		return handleError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
