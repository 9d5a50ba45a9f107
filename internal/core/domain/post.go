package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImageUnchanged est la valeur sentinelle envoyée par le client quand l'image ne change pas.
const ImageUnchanged = "undefined"

type Post struct {
	ID        string
	Title     string
	Content   string
	ImageURL  string
	CreatorID string
	Creator   *Account // Renseigné uniquement quand le store résout la référence

	// Posés par le store à l'écriture
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewPost(title, content, imageURL, creatorID string) *Post {
	return &Post{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		ImageURL:  imageURL,
		CreatorID: creatorID,
	}
}

// Edit applique une modification de contenu.
// imageURL n'est remplacée que si elle diffère de la sentinelle ImageUnchanged (la chaîne vide est une vraie valeur).
func (p *Post) Edit(title, content, imageURL string) {
	p.Title = title
	p.Content = content
	if imageURL != ImageUnchanged {
		p.ImageURL = imageURL
	}
}

// IsOwnedBy compare le créateur à l'id de l'appelant, en identifiants opaques.
func (p *Post) IsOwnedBy(accountID string) bool {
	return accountID != "" && p.CreatorID == accountID
}
