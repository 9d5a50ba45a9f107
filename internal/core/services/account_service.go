package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/validation"
)

// --- AUTHENTIFICATION ---

// Login vérifie les identifiants et émet un token de session.
// Un email inconnu est rapporté en 401 (et non 404) pour ne pas révéler quels comptes existent.
func (s *BlogService) Login(ctx context.Context, cmd ports.LoginCmd) (*ports.AuthData, error) {
	// 1. Récupération
	account, err := s.accounts.FindByEmail(ctx, cmd.Email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NotFound(msgLoginNotFound).WithStatus(http.StatusUnauthorized)
		}
		return nil, fmt.Errorf("login: find account: %w", err)
	}

	// 2. Vérification mot de passe
	if err := s.hasher.Compare(account.PasswordHash, cmd.Password); err != nil {
		return nil, domain.Unauthorized(msgBadPassword)
	}

	// 3. Token
	token, err := s.tokens.Issue(domain.SessionClaims{AccountID: account.ID, Email: account.Email})
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	return &ports.AuthData{Token: token, AccountID: account.ID}, nil
}

func (s *BlogService) CreateUser(ctx context.Context, cmd ports.CreateUserCmd) (*ports.AccountProjection, error) {
	// 1. Validation des entrées (toutes les règles)
	if err := rejectInvalid(validation.Signup(cmd.Email, cmd.Password)); err != nil {
		return nil, err
	}

	// 2. Unicité de l'email. Vérification "soft" : l'index UNIQUE du store couvre la course.
	_, err := s.accounts.FindByEmail(ctx, cmd.Email)
	switch {
	case err == nil:
		return nil, domain.Conflict(msgUserExists)
	case !errors.Is(err, domain.ErrRecordNotFound):
		return nil, fmt.Errorf("create user: check email: %w", err)
	}

	// 3. Hachage
	hash, err := s.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	// 4. Persistance
	account := domain.NewAccount(cmd.Name, cmd.Email, hash)
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.Conflict(msgUserExists)
		}
		return nil, fmt.Errorf("create user: save: %w", err)
	}

	// 5. Publication (best effort)
	if err := s.publisher.PublishAccountRegistered(ctx, account); err != nil {
		s.logger.WarnContext(ctx, "publish account registered failed", "account_id", account.ID, "error", err)
	}

	return projectAccount(account), nil
}

// --- COMPTE COURANT ---

func (s *BlogService) User(ctx context.Context, actor domain.AuthContext) (*ports.AccountProjection, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	account, err := s.loadActor(ctx, actor)
	if err != nil {
		return nil, err
	}
	return projectAccount(account), nil
}

func (s *BlogService) UpdateStatus(ctx context.Context, actor domain.AuthContext, status string) (*ports.AccountProjection, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}
	account, err := s.loadActor(ctx, actor)
	if err != nil {
		return nil, err
	}

	account.UpdateStatus(status)
	if err := s.accounts.Save(ctx, account); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NotFound(msgUserNotFound)
		}
		return nil, fmt.Errorf("update status: %w", err)
	}
	return projectAccount(account), nil
}

// loadActor charge le compte de l'appelant authentifié (404 s'il n'existe plus).
func (s *BlogService) loadActor(ctx context.Context, actor domain.AuthContext) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, actor.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NotFound(msgUserNotFound)
		}
		return nil, fmt.Errorf("load account %s: %w", actor.AccountID, err)
	}
	return account, nil
}
