package graph

import (
	"context"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
)

// --- MAPPERS (projection -> type GraphQL) ---

type authDataResolver struct{ data *ports.AuthData }

func (r *authDataResolver) Token() string  { return r.data.Token }
func (r *authDataResolver) UserID() string { return r.data.AccountID }

type postsDataResolver struct{ page *ports.PostsPage }

func (r *postsDataResolver) Posts() []*postResolver {
	out := make([]*postResolver, len(r.page.Posts))
	for i := range r.page.Posts {
		out[i] = &postResolver{p: &r.page.Posts[i]}
	}
	return out
}

func (r *postsDataResolver) TotalPosts() int32 { return int32(r.page.TotalPosts) }

type postResolver struct{ p *ports.PostProjection }

func (r *postResolver) ID() graphql.ID    { return graphql.ID(r.p.ID) }
func (r *postResolver) Title() string     { return r.p.Title }
func (r *postResolver) Content() string   { return r.p.Content }
func (r *postResolver) ImageURL() string  { return r.p.ImageURL }
func (r *postResolver) CreatedAt() string { return r.p.CreatedAt }
func (r *postResolver) UpdatedAt() string { return r.p.UpdatedAt }

// Creator est non-null : un post sans auteur chargé est une incohérence du store.
func (r *postResolver) Creator(ctx context.Context) (*userResolver, error) {
	if r.p.Creator == nil {
		return nil, toGraphQLError(ctx, fmt.Errorf("post %s loaded without its creator", r.p.ID))
	}
	return &userResolver{a: r.p.Creator}, nil
}

type userResolver struct{ a *ports.AccountProjection }

func (r *userResolver) ID() graphql.ID { return graphql.ID(r.a.ID) }
func (r *userResolver) Name() string   { return r.a.Name }
func (r *userResolver) Email() string  { return r.a.Email }
func (r *userResolver) Status() string { return r.a.Status }

func (r *userResolver) Posts() []graphql.ID {
	out := make([]graphql.ID, len(r.a.PostIDs))
	for i, id := range r.a.PostIDs {
		out[i] = graphql.ID(id)
	}
	return out
}
