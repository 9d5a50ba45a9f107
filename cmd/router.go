package main

import (
	"fmt"
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jupiterclapton/cenackle/services/blog-service/config"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/adapters/primary/graph"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/auth"
	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/ports"
)

// newRouter assemble la chaîne de middlewares et les routes HTTP.
func newRouter(cfg *config.Config, service ports.BlogService, verifier ports.TokenVerifier) http.Handler {
	var h http.Handler = graph.NewHandler(service, !cfg.IsProd())

	// A. Auth (Injecte l'AuthContext)
	h = auth.Middleware(verifier)(h)

	// B. CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "baggage", "traceparent"},
		AllowCredentials: true,
	})
	h = c.Handler(h)

	// C. OTEL HTTP (Racine)
	h = otelhttp.NewHandler(h, "GraphQL", otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
		return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path)
	}))

	mux := http.NewServeMux()
	mux.Handle("/query", h)
	// Compatibilité avec les clients qui postent sur /graphql
	mux.Handle("/graphql", h)
	if !cfg.IsProd() {
		mux.Handle("/", playground.Handler("Blog playground", "/query"))
	}
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	return mux
}
