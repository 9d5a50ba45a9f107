package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (*domain.SessionClaims, error) {
	id, ok := s[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &domain.SessionClaims{AccountID: id}, nil
}

func TestMiddleware(t *testing.T) {
	verifier := stubVerifier{"good": "acc-1"}

	tests := []struct {
		name   string
		header string
		want   domain.AuthContext
	}{
		{name: "no header", header: "", want: domain.Anonymous()},
		{name: "valid token", header: "Bearer good", want: domain.Authenticated("acc-1")},
		{name: "lowercase scheme", header: "bearer good", want: domain.Authenticated("acc-1")},
		{name: "invalid token", header: "Bearer expired", want: domain.Anonymous()},
		{name: "wrong scheme", header: "Basic Zm9vOmJhcg==", want: domain.Anonymous()},
		{name: "empty token", header: "Bearer   ", want: domain.Anonymous()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.AuthContext
			h := Middleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ForContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/query", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForContextWithoutMiddleware(t *testing.T) {
	assert.Equal(t, domain.Anonymous(), ForContext(context.Background()))
	assert.Equal(t, domain.Authenticated("x"), ForContext(WithAuth(context.Background(), domain.Authenticated("x"))))
}
