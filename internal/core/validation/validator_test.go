package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

func TestSignup(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     []string
	}{
		{name: "valid", email: "max@test.com", password: "secret"},
		{name: "bad email", email: "not-an-email", password: "secret", want: []string{MsgInvalidEmail}},
		{name: "short password", email: "max@test.com", password: "1234", want: []string{MsgPasswordTooWeak}},
		{name: "empty password", email: "max@test.com", password: "", want: []string{MsgPasswordTooWeak}},
		{name: "both invalid", email: "not-an-email", password: "1234", want: []string{MsgInvalidEmail, MsgPasswordTooWeak}},
		{name: "empty email", email: "", password: "secret", want: []string{MsgInvalidEmail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messages(Signup(tt.email, tt.password)))
		})
	}
}

func TestSignupAggregatesInOrder(t *testing.T) {
	v := Signup("nope", "")
	require.Len(t, v, 2)
	assert.Equal(t, "email", v[0].Field)
	assert.Equal(t, "password", v[1].Field)
}

func TestPost(t *testing.T) {
	assert.Empty(t, Post("Hello", "World"))
	assert.Equal(t, []string{MsgInvalidTitle}, messages(Post("Hey", "World!")))
	assert.Equal(t, []string{MsgInvalidContent}, messages(Post("Hello", "")))
	assert.Equal(t, []string{MsgInvalidTitle, MsgInvalidContent}, messages(Post("", "abc")))
}

func TestLengthCountsCharacters(t *testing.T) {
	// 5 runes, 10 octets
	assert.Empty(t, Post("ééééé", "ééééé"))
	assert.Len(t, Post("éééé", "éééé"), 2)
}

func messages(v []domain.Violation) []string {
	if len(v) == 0 {
		return nil
	}
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = x.Message
	}
	return out
}
