package ports

import (
	"context"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

// --- PERSISTANCE ---
// Les timestamps des posts sont posés par le store à l'écriture.
// Une ligne absente se traduit par domain.ErrRecordNotFound.

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error // domain.ErrDuplicateEmail si l'email existe
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Save(ctx context.Context, account *domain.Account) error

	// Maintenance de la back-référence compte -> posts
	AppendPost(ctx context.Context, accountID, postID string) error
	RemovePost(ctx context.Context, accountID, postID string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindByIDWithCreator(ctx context.Context, id string) (*domain.Post, error)
	// List retourne les posts triés par createdAt décroissant, créateur résolu.
	List(ctx context.Context, offset, limit int) ([]*domain.Post, error)
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
}

// Transactor exécute fn dans une transaction unique du store.
// Les repositories appelés avec le ctx fourni à fn participent à cette transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// --- SÉCURITÉ ---

// PasswordHasher abstrait l'algorithme de hachage (Argon2, Bcrypt)
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signe un token de session borné dans le temps.
type TokenIssuer interface {
	Issue(claims domain.SessionClaims) (string, error)
}

// TokenVerifier est utilisé par le middleware pour construire l'AuthContext.
type TokenVerifier interface {
	Verify(token string) (*domain.SessionClaims, error)
}

// --- FICHIERS ---

// AssetStore supprime un fichier stocké référencé par un post.
type AssetStore interface {
	Delete(ctx context.Context, ref string) error
}

// --- MESSAGERIE ---

type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, account *domain.Account) error
	PublishPostCreated(ctx context.Context, post *domain.Post) error
	PublishPostDeleted(ctx context.Context, postID, creatorID string) error
}
