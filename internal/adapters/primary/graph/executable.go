package graph

import (
	"context"
	"encoding/json"

	gqlgen "github.com/99designs/gqlgen/graphql"
	graphql "github.com/graph-gophers/graphql-go"
	qerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// executableSchema branche le serveur gqlgen (transports, cache de requêtes, extensions, otelgqlgen)
// sur les resolvers graphql-go. gqlgen parse et valide l'opération contre le SDL, graphql-go l'exécute.
type executableSchema struct {
	schema *ast.Schema
	engine *graphql.Schema
}

var _ gqlgen.ExecutableSchema = (*executableSchema)(nil)

func newExecutableSchema(engine *graphql.Schema) *executableSchema {
	return &executableSchema{
		schema: gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphql", Input: SDL}),
		engine: engine,
	}
}

func (e *executableSchema) Schema() *ast.Schema {
	return e.schema
}

// Pas de limite de complexité : la profondeur est bornée par graphql-go (MaxDepth).
func (e *executableSchema) Complexity(context.Context, string, string, int, map[string]any) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) gqlgen.ResponseHandler {
	opCtx := gqlgen.GetOperationContext(ctx)

	first := true
	return func(ctx context.Context) *gqlgen.Response {
		if !first {
			return nil
		}
		first = false

		vars, err := jsonVariables(opCtx.Variables)
		if err != nil {
			return &gqlgen.Response{Errors: gqlerror.List{gqlerror.Errorf("invalid variables: %v", err)}}
		}

		res := e.engine.Exec(ctx, opCtx.RawQuery, opCtx.OperationName, vars)
		return &gqlgen.Response{
			Data:   res.Data,
			Errors: toGQLErrors(res.Errors),
		}
	}
}

// jsonVariables ramène les variables coercées par gqlparser (int64...) à leur forme JSON,
// celle que graphql-go sait décoder (float64, string, map...).
func jsonVariables(vars map[string]any) (map[string]any, error) {
	if len(vars) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(vars)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(vars))
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func toGQLErrors(errs []*qerrors.QueryError) gqlerror.List {
	if len(errs) == 0 {
		return nil
	}
	out := make(gqlerror.List, 0, len(errs))
	for _, qe := range errs {
		ge := &gqlerror.Error{
			Err:        qe.ResolverError,
			Message:    qe.Message,
			Extensions: qe.Extensions,
		}
		for _, loc := range qe.Locations {
			ge.Locations = append(ge.Locations, gqlerror.Location{Line: loc.Line, Column: loc.Column})
		}
		for _, p := range qe.Path {
			switch v := p.(type) {
			case string:
				ge.Path = append(ge.Path, ast.PathName(v))
			case int:
				ge.Path = append(ge.Path, ast.PathIndex(v))
			}
		}
		out = append(out, ge)
	}
	return out
}

// allowIntrospection suit le réglage du serveur gqlgen (extension.Introspection).
func allowIntrospection(ctx context.Context) bool {
	if !gqlgen.HasOperationContext(ctx) {
		return true
	}
	return !gqlgen.GetOperationContext(ctx).DisableIntrospection
}
