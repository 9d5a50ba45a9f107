package domain

import (
	"slices"

	"github.com/google/uuid"
)

// DefaultStatus est le statut attribué à un compte fraîchement créé.
const DefaultStatus = "I am new!"

// --- ENTITÉ ---

type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Status       string
	PostIDs      []string // Back-référence : ids des posts dont ce compte est l'auteur
}

// NewAccount crée un compte prêt à être persisté.
// L'identité est générée ICI, les validations d'entrée ont déjà eu lieu en amont.
func NewAccount(name, email, passwordHash string) *Account {
	return &Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Status:       DefaultStatus,
		PostIDs:      []string{},
	}
}

// UpdateStatus remplace le statut libre du compte.
func (a *Account) UpdateStatus(status string) {
	a.Status = status
}

// OwnsPost indique si l'id figure dans la collection du compte.
func (a *Account) OwnsPost(postID string) bool {
	return slices.Contains(a.PostIDs, postID)
}

// AttachPost ajoute un post à la collection (idempotent).
func (a *Account) AttachPost(postID string) {
	if !a.OwnsPost(postID) {
		a.PostIDs = append(a.PostIDs, postID)
	}
}

// DetachPost retire un post de la collection.
func (a *Account) DetachPost(postID string) {
	a.PostIDs = slices.DeleteFunc(a.PostIDs, func(id string) bool { return id == postID })
}
