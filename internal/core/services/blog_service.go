package services

import (
	"log/slog"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
)

// DefaultPostsPerPage est la taille de page de getPosts quand la config n'en fournit pas.
const DefaultPostsPerPage = 2

// Deps regroupe les adapters secondaires injectés dans le service.
type Deps struct {
	Accounts  ports.AccountRepository
	Posts     ports.PostRepository
	Tx        ports.Transactor
	Hasher    ports.PasswordHasher
	Tokens    ports.TokenIssuer
	Assets    ports.AssetStore
	Publisher ports.EventPublisher
	Logger    *slog.Logger
}

// BlogService implémente ports.BlogService (Primary Port).
// Il orchestre authentification, validation, autorisation, persistance et mise en forme des sorties.
type BlogService struct {
	accounts     ports.AccountRepository
	posts        ports.PostRepository
	tx           ports.Transactor
	hasher       ports.PasswordHasher
	tokens       ports.TokenIssuer
	assets       ports.AssetStore
	publisher    ports.EventPublisher
	logger       *slog.Logger
	postsPerPage int
}

var _ ports.BlogService = (*BlogService)(nil)

// NewBlogService est le constructeur avec injection de dépendances.
func NewBlogService(deps Deps, postsPerPage int) *BlogService {
	if postsPerPage <= 0 {
		postsPerPage = DefaultPostsPerPage
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BlogService{
		accounts:     deps.Accounts,
		posts:        deps.Posts,
		tx:           deps.Tx,
		hasher:       deps.Hasher,
		tokens:       deps.Tokens,
		assets:       deps.Assets,
		publisher:    deps.Publisher,
		logger:       logger.With("component", "blog-service"),
		postsPerPage: postsPerPage,
	}
}
