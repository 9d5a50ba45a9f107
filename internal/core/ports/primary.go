package ports

import (
	"context"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

// --- INPUTS (Command Pattern) ---

type LoginCmd struct {
	Email    string
	Password string
}

type CreateUserCmd struct {
	Name     string
	Email    string
	Password string
}

type PostInput struct {
	Title    string
	Content  string
	ImageURL string // domain.ImageUnchanged = pas de changement (update uniquement)
}

// --- OUTPUTS (Projections) ---
// Liste blanche explicite par type : aucun champ interne (hash du mot de passe...) ne peut fuiter.

type AuthData struct {
	Token     string
	AccountID string
}

type AccountProjection struct {
	ID      string
	Name    string
	Email   string
	Status  string
	PostIDs []string
}

type PostProjection struct {
	ID        string
	Title     string
	Content   string
	ImageURL  string
	Creator   *AccountProjection
	CreatedAt string
	UpdatedAt string
}

type PostsPage struct {
	Posts      []PostProjection
	TotalPosts int
}

// --- PORT PRIMAIRE (Driving) ---
// Chaque opération reçoit le contexte d'authentification construit en amont.

type BlogService interface {
	// Public
	Login(ctx context.Context, cmd LoginCmd) (*AuthData, error)
	CreateUser(ctx context.Context, cmd CreateUserCmd) (*AccountProjection, error)

	// Posts
	CreatePost(ctx context.Context, actor domain.AuthContext, in PostInput) (*PostProjection, error)
	GetPosts(ctx context.Context, actor domain.AuthContext, page int) (*PostsPage, error)
	Post(ctx context.Context, actor domain.AuthContext, postID string) (*PostProjection, error)
	UpdatePost(ctx context.Context, actor domain.AuthContext, postID string, in PostInput) (*PostProjection, error)
	DeletePost(ctx context.Context, actor domain.AuthContext, postID string) (bool, error)

	// Compte courant
	User(ctx context.Context, actor domain.AuthContext) (*AccountProjection, error)
	UpdateStatus(ctx context.Context, actor domain.AuthContext, status string) (*AccountProjection, error)
}
