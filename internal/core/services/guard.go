package services

import (
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

const (
	msgNotAuthenticated = "Not authenticated!"
	msgNotAuthorized    = "Not authorized!"
	msgInvalidInput     = "Invalid input."
	msgPostNotFound     = "No post found!"
	msgUserNotFound     = "No user found!"
	msgLoginNotFound    = "User not found!"
	msgBadPassword      = "Password is incorrect!"
	msgUserExists       = "User already exists!"
)

// requireAuth est la porte d'authentification : toujours la première étape d'une opération protégée.
func requireAuth(actor domain.AuthContext) error {
	if !actor.Authenticated || actor.AccountID == "" {
		return domain.Unauthenticated(msgNotAuthenticated)
	}
	return nil
}

// authorizeOwner vérifie que l'appelant est l'auteur du post.
func authorizeOwner(post *domain.Post, actor domain.AuthContext) error {
	if !post.IsOwnedBy(actor.AccountID) {
		return domain.Forbidden(msgNotAuthorized)
	}
	return nil
}

// rejectInvalid transforme une liste de violations non vide en erreur 422.
func rejectInvalid(violations []domain.Violation) error {
	if len(violations) > 0 {
		return domain.ValidationFailed(msgInvalidInput, violations)
	}
	return nil
}
