package services

import (
	"time"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
)

// TimestampLayout est le format ISO-8601 UTC à la milliseconde utilisé pour toutes les dates exposées.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// projectAccount copie champ par champ : le hash du mot de passe n'a pas de place dans la projection.
func projectAccount(a *domain.Account) *ports.AccountProjection {
	if a == nil {
		return nil
	}
	postIDs := make([]string, len(a.PostIDs))
	copy(postIDs, a.PostIDs)
	return &ports.AccountProjection{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		Status:  a.Status,
		PostIDs: postIDs,
	}
}

func projectPost(p *domain.Post) *ports.PostProjection {
	if p == nil {
		return nil
	}
	return &ports.PostProjection{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Creator:   projectAccount(p.Creator),
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}
