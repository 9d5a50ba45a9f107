package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
)

// Clé privée pour le contexte (évite les collisions)
type contextKey struct{ name string }

var authCtxKey = &contextKey{"auth"}

// Middleware décode le header Authorization et construit l'AuthContext de la requête.
// Un token absent, mal formé ou invalide donne un contexte anonyme : la requête continue,
// et ce sont les opérations protégées qui refusent l'appel (login et createUser restent accessibles).
func Middleware(verifier ports.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := domain.Anonymous()

			if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
				claims, err := verifier.Verify(token)
				if err != nil {
					slog.DebugContext(r.Context(), "rejected session token", "error", err)
				} else {
					actor = domain.Authenticated(claims.AccountID)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), actor)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// WithAuth attache un AuthContext au contexte.
func WithAuth(ctx context.Context, actor domain.AuthContext) context.Context {
	return context.WithValue(ctx, authCtxKey, actor)
}

// ForContext est un helper pour récupérer l'appelant depuis un resolver.
// Sans middleware en amont, l'appelant est anonyme.
func ForContext(ctx context.Context) domain.AuthContext {
	actor, _ := ctx.Value(authCtxKey).(domain.AuthContext)
	return actor
}
