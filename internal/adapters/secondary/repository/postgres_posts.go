package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

const (
	postColumns = `p.id, p.title, p.content, p.image_url, p.creator_id, p.created_at, p.updated_at`

	// Résolution de la référence creator (équivalent "populate")
	postWithCreatorSelect = `
		SELECT ` + postColumns + `, a.id, a.name, a.email, a.status, a.post_ids
		FROM posts p
		LEFT JOIN accounts a ON a.id = p.creator_id
	`
)

type PostgresPostRepo struct {
	db *Postgres
}

func NewPostgresPostRepo(db *Postgres) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// Create insère le post ; createdAt/updatedAt sont posés par la base.
func (r *PostgresPostRepo) Create(ctx context.Context, post *domain.Post) error {
	q := `
		INSERT INTO posts (id, title, content, image_url, creator_id)
		VALUES (@id, @title, @content, @image_url, @creator_id)
		RETURNING created_at, updated_at
	`
	args := pgx.NamedArgs{
		"id":         post.ID,
		"title":      post.Title,
		"content":    post.Content,
		"image_url":  post.ImageURL,
		"creator_id": post.CreatorID,
	}
	if err := r.db.conn(ctx).QueryRow(ctx, q, args).Scan(&post.CreatedAt, &post.UpdatedAt); err != nil {
		return handleError("create post", err)
	}
	return nil
}

func (r *PostgresPostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = $1`

	var p domain.Post
	err := r.db.conn(ctx).QueryRow(ctx, q, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.CreatorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, handleError("get post", err)
	}
	return &p, nil
}

func (r *PostgresPostRepo) FindByIDWithCreator(ctx context.Context, id string) (*domain.Post, error) {
	row := r.db.conn(ctx).QueryRow(ctx, postWithCreatorSelect+` WHERE p.id = $1`, id)
	p, err := scanPostWithCreator(row)
	if err != nil {
		return nil, handleError("get post with creator", err)
	}
	return p, nil
}

// List : pagination offset/limit, plus récents d'abord.
func (r *PostgresPostRepo) List(ctx context.Context, offset, limit int) ([]*domain.Post, error) {
	q := postWithCreatorSelect + ` ORDER BY p.created_at DESC, p.id DESC OFFSET $1 LIMIT $2`

	rows, err := r.db.conn(ctx).Query(ctx, q, offset, limit)
	if err != nil {
		return nil, handleError("list posts", err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		p, err := scanPostWithCreator(rows)
		if err != nil {
			return nil, handleError("scan post", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, handleError("list posts", err)
	}
	return posts, nil
}

func (r *PostgresPostRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.conn(ctx).QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&n); err != nil {
		return 0, handleError("count posts", err)
	}
	return n, nil
}

// Save met à jour le contenu ; updatedAt est rafraîchi par la base.
func (r *PostgresPostRepo) Save(ctx context.Context, post *domain.Post) error {
	q := `
		UPDATE posts
		SET title = @title, content = @content, image_url = @image_url, updated_at = GREATEST(now(), created_at)
		WHERE id = @id
		RETURNING created_at, updated_at
	`
	args := pgx.NamedArgs{
		"id":        post.ID,
		"title":     post.Title,
		"content":   post.Content,
		"image_url": post.ImageURL,
	}
	if err := r.db.conn(ctx).QueryRow(ctx, q, args).Scan(&post.CreatedAt, &post.UpdatedAt); err != nil {
		return handleError("update post", err)
	}
	return nil
}

func (r *PostgresPostRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.conn(ctx).Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return handleError("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// scanPostWithCreator lit une ligne du LEFT JOIN ; un créateur absent donne Creator == nil.
func scanPostWithCreator(row pgx.Row) (*domain.Post, error) {
	var (
		p                             domain.Post
		accID, accName, accEmail, st *string
		accPosts                      []string
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.ImageURL, &p.CreatorID, &p.CreatedAt, &p.UpdatedAt,
		&accID, &accName, &accEmail, &st, &accPosts,
	)
	if err != nil {
		return nil, err
	}
	if accID != nil {
		p.Creator = &domain.Account{
			ID:      *accID,
			Name:    deref(accName),
			Email:   deref(accEmail),
			Status:  deref(st),
			PostIDs: nonNil(accPosts),
		}
	}
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
