package graph

import (
	_ "embed"
	"net/http"

	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/extension"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
	graphql "github.com/graph-gophers/graphql-go"
	gqlotel "github.com/graph-gophers/graphql-go/trace/otel"
	"github.com/ravilushqa/otelgqlgen"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
)

// SDL est la grammaire déclarative de l'API (contrat uniquement, aucune logique).
//
//go:embed schema.graphql
var SDL string

const maxQueryDepth = 10

// NewSchema parse le SDL et vérifie que chaque champ a son resolver (panic sinon, au démarrage).
func NewSchema(service ports.BlogService) *graphql.Schema {
	return graphql.MustParseSchema(SDL, NewResolver(service),
		graphql.MaxDepth(maxQueryDepth),
		graphql.Tracer(gqlotel.DefaultTracer()),
		graphql.RestrictIntrospection(allowIntrospection),
	)
}

// NewHandler expose le schéma derrière le serveur gqlgen.
func NewHandler(service ports.BlogService, introspection bool) http.Handler {
	srv := handler.New(newExecutableSchema(NewSchema(service)))

	srv.AddTransport(transport.Options{})
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})

	srv.SetQueryCache(lru.New[*ast.QueryDocument](1000))

	if introspection {
		srv.Use(extension.Introspection{})
	}

	// Instrumentation GraphQL
	srv.Use(otelgqlgen.Middleware())

	return srv
}
