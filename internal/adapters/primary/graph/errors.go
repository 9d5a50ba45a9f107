package graph

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

const internalErrorMessage = "internal server error"

// resolverError est lu par graphql-go via Extensions() et sérialisé dans errors[].extensions.
type resolverError struct {
	message string
	code    string
	status  int
	data    []map[string]string
}

func (e *resolverError) Error() string { return e.message }

func (e *resolverError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{
		"code":   e.code,
		"status": e.status,
	}
	if len(e.data) > 0 {
		ext["data"] = e.data
	}
	return ext
}

// toGraphQLError traduit une erreur du domaine. Le reste est journalisé et masqué au client.
func toGraphQLError(ctx context.Context, err error) error {
	de, ok := domain.AsError(err)
	if !ok {
		slog.ErrorContext(ctx, "unexpected error in resolver", "error", err)
		return &resolverError{
			message: internalErrorMessage,
			code:    "INTERNAL",
			status:  http.StatusInternalServerError,
		}
	}

	out := &resolverError{message: de.Error(), code: string(de.Kind), status: de.Status}
	for _, v := range de.Violations {
		out.data = append(out.data, map[string]string{"field": v.Field, "message": v.Message})
	}
	return out
}
