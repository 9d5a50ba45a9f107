package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

// DefaultTokenTTL est la durée de vie d'un token de session.
const DefaultTokenTTL = time.Hour

var ErrInvalidToken = errors.New("invalid token")

// SessionClaims étend les claims standards JWT
type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTProvider signe (HS256) et vérifie les tokens de session.
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTProvider(secret string, ttl time.Duration, issuer string) (*JWTProvider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTProvider{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}, nil
}

// WithClock remplace l'horloge (tests).
func (j *JWTProvider) WithClock(now func() time.Time) *JWTProvider {
	j.now = now
	return j
}

func (j *JWTProvider) Issue(c domain.SessionClaims) (string, error) {
	now := j.now()
	claims := SessionClaims{
		UserID: c.AccountID,
		Email:  c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    j.issuer,
			Subject:   c.AccountID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify vérifie la signature et l'expiration, puis retourne le contenu de session.
func (j *JWTProvider) Verify(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Refuse tout autre algorithme (none, RS256 avec la clé HMAC comme clé publique...)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	},
		jwt.WithTimeFunc(j.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &domain.SessionClaims{AccountID: claims.UserID, Email: claims.Email}, nil
}
