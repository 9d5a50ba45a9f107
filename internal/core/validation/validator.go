// Package validation regroupe les règles d'entrée par opération.
// Toutes les règles applicables sont évaluées : la liste retournée est complète et ordonnée.
package validation

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

const (
	MinPasswordLength = 5
	MinTitleLength    = 5
	MinContentLength  = 5
)

const (
	MsgInvalidEmail    = "E-mail is invalid."
	MsgPasswordTooWeak = "Password must be at least 5 characters."
	MsgInvalidTitle    = "Title is invalid!"
	MsgInvalidContent  = "Content is invalid!"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Signup valide l'inscription : email puis mot de passe.
func Signup(email, password string) []domain.Violation {
	var violations []domain.Violation
	if !isEmail(email) {
		violations = append(violations, domain.Violation{Field: "email", Message: MsgInvalidEmail})
	}
	if !minLength(password, MinPasswordLength) {
		violations = append(violations, domain.Violation{Field: "password", Message: MsgPasswordTooWeak})
	}
	return violations
}

// Post valide la création et la modification d'un post : titre puis contenu.
func Post(title, content string) []domain.Violation {
	var violations []domain.Violation
	if !minLength(title, MinTitleLength) {
		violations = append(violations, domain.Violation{Field: "title", Message: MsgInvalidTitle})
	}
	if !minLength(content, MinContentLength) {
		violations = append(violations, domain.Violation{Field: "content", Message: MsgInvalidContent})
	}
	return violations
}

func isEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// minLength compte en caractères, pas en octets. Une chaîne vide échoue toujours.
func minLength(s string, n int) bool {
	return s != "" && utf8.RuneCountInString(s) >= n
}
