package graph

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/auth"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
)

// Resolver est la racine des queries et mutations.
// Il ne fait que traduire : arguments GraphQL -> commandes, projections -> resolvers de types, erreurs -> extensions.
type Resolver struct {
	service ports.BlogService
}

func NewResolver(service ports.BlogService) *Resolver {
	return &Resolver{service: service}
}

// --- ARGUMENTS ---

type userInputData struct {
	Name     string
	Email    string
	Password string
}

type postInputData struct {
	Title    string
	Content  string
	ImageUrl string
}

func (in postInputData) toPort() ports.PostInput {
	return ports.PostInput{Title: in.Title, Content: in.Content, ImageURL: in.ImageUrl}
}

// --- QUERIES ---

func (r *Resolver) Login(ctx context.Context, args struct {
	Email    string
	Password string
}) (res *authDataResolver, err error) {
	defer observe("login", time.Now(), &err)

	data, err := r.service.Login(ctx, ports.LoginCmd{Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return &authDataResolver{data: data}, nil
}

func (r *Resolver) GetPosts(ctx context.Context, args struct{ Page *int32 }) (res *postsDataResolver, err error) {
	defer observe("getPosts", time.Now(), &err)

	page := 0
	if args.Page != nil {
		page = int(*args.Page)
	}
	out, err := r.service.GetPosts(ctx, auth.ForContext(ctx), page)
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return &postsDataResolver{page: out}, nil
}

func (r *Resolver) Post(ctx context.Context, args struct{ ID graphql.ID }) (res *postResolver, err error) {
	defer observe("post", time.Now(), &err)

	p, err := r.service.Post(ctx, auth.ForContext(ctx), string(args.ID))
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return &postResolver{p: p}, nil
}

func (r *Resolver) User(ctx context.Context) (res *userResolver, err error) {
	defer observe("user", time.Now(), &err)

	a, err := r.service.User(ctx, auth.ForContext(ctx))
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return &userResolver{a: a}, nil
}

// --- MUTATIONS ---

func (r *Resolver) CreateUser(ctx context.Context, args struct{ UserInput userInputData }) (res *userResolver, err error) {
	defer observe("createUser", time.Now(), &err)

	a, err := r.service.CreateUser(ctx, ports.CreateUserCmd{
		Name:     args.UserInput.Name,
		Email:    args.UserInput.Email,
		Password: args.UserInput.Password,
	})
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return &userResolver{a: a}, nil
}

func (r *Resolver) CreatePost(ctx context.Context, args struct{ PostInput postInputData }) (res *postResolver, err error) {
	defer observe("createPost", time.Now(), &err)

	p, err := r.service.CreatePost(ctx, auth.ForContext(ctx), args.PostInput.toPort())
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return &postResolver{p: p}, nil
}

func (r *Resolver) UpdatePost(ctx context.Context, args struct {
	ID        graphql.ID
	PostInput postInputData
}) (res *postResolver, err error) {
	defer observe("updatePost", time.Now(), &err)

	p, err := r.service.UpdatePost(ctx, auth.ForContext(ctx), string(args.ID), args.PostInput.toPort())
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return &postResolver{p: p}, nil
}

func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID graphql.ID }) (ok bool, err error) {
	defer observe("deletePost", time.Now(), &err)

	ok, err = r.service.DeletePost(ctx, auth.ForContext(ctx), string(args.ID))
	if err != nil {
		return false, toGraphQLError(ctx, err)
	}
	return ok, nil
}

func (r *Resolver) UpdateStatus(ctx context.Context, args struct{ Status string }) (res *userResolver, err error) {
	defer observe("updateStatus", time.Now(), &err)

	a, err := r.service.UpdateStatus(ctx, auth.ForContext(ctx), args.Status)
	if err != nil {
		return nil, toGraphQLError(ctx, err)
	}
	return &userResolver{a: a}, nil
}
