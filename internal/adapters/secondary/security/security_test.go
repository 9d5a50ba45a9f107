package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

var fastArgon2 = &Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestArgon2HashAndCompare(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2)

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	assert.NoError(t, h.Compare(hash, "secret"))
	assert.ErrorIs(t, h.Compare(hash, "wrong"), ErrPasswordMismatch)
	assert.Error(t, h.Compare("garbage", "secret"))

	other, err := h.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salt must differ")
}

func TestHasherVerifiesBothFormats(t *testing.T) {
	h, err := NewHasher(AlgoArgon2id, fastArgon2, bcrypt.MinCost)
	require.NoError(t, err)

	legacy, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, h.Compare(string(legacy), "secret"))
	assert.ErrorIs(t, h.Compare(string(legacy), "nope"), ErrPasswordMismatch)

	fresh, err := h.Hash("secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fresh, argon2Prefix))
	assert.NoError(t, h.Compare(fresh, "secret"))

	assert.Error(t, h.Compare("plaintext", "plaintext"))
}

func TestHasherBcryptPrimary(t *testing.T) {
	h, err := NewHasher(AlgoBcrypt, fastArgon2, bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("secret")
	require.NoError(t, err)
	assert.True(t, isBcrypt(hash))
	assert.NoError(t, h.Compare(hash, "secret"))

	_, err = NewHasher("md5", nil, 0)
	assert.Error(t, err)
}

func TestJWTIssueEncodesAccountAndOneHourExpiry(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p, err := NewJWTProvider("test-secret", time.Hour, "blog-service")
	require.NoError(t, err)
	p.WithClock(func() time.Time { return issuedAt })

	token, err := p.Issue(domain.SessionClaims{AccountID: "acc-1", Email: "max@test.com"})
	require.NoError(t, err)

	claims := &SessionClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.UserID)
	assert.Equal(t, "max@test.com", claims.Email)
	assert.Equal(t, issuedAt.Add(time.Hour), claims.ExpiresAt.Time.UTC())
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))

	session, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", session.AccountID)
}

func TestJWTVerifyRejects(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	p, err := NewJWTProvider("test-secret", time.Hour, "blog-service")
	require.NoError(t, err)
	p.WithClock(func() time.Time { return now })

	token, err := p.Issue(domain.SessionClaims{AccountID: "acc-1", Email: "max@test.com"})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later, err := NewJWTProvider("test-secret", time.Hour, "blog-service")
		require.NoError(t, err)
		later.WithClock(func() time.Time { return now.Add(2 * time.Hour) })
		_, err = later.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewJWTProvider("other-secret", time.Hour, "blog-service")
		require.NoError(t, err)
		other.WithClock(func() time.Time { return now })
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := p.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTProviderRequiresSecret(t *testing.T) {
	_, err := NewJWTProvider("", time.Hour, "x")
	assert.Error(t, err)

	p, err := NewJWTProvider("s", 0, "x")
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, p.ttl)
}
