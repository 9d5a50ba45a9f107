package domain

import (
	"errors"
	"net/http"
)

// --- ERREURS TECHNIQUES (retournées par les adapters secondaires) ---
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Kind est le code machine d'une erreur métier.
type Kind string

const (
	KindUnauthenticated  Kind = "UNAUTHENTICATED"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindForbidden        Kind = "FORBIDDEN"
	KindNotFound         Kind = "NOT_FOUND"
	KindValidationFailed Kind = "VALIDATION_FAILED"
	KindConflict         Kind = "CONFLICT"
)

// Sentinelles pour errors.Is : la comparaison se fait sur le Kind uniquement.
var (
	ErrUnauthenticated  = &Error{Kind: KindUnauthenticated}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrForbidden        = &Error{Kind: KindForbidden}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrValidationFailed = &Error{Kind: KindValidationFailed}
	ErrConflict         = &Error{Kind: KindConflict}
)

// Violation est une règle de validation non respectée.
type Violation struct {
	Field   string
	Message string
}

// Error est l'erreur métier exposée aux appelants : code, statut, message lisible
// et, pour VALIDATION_FAILED, la liste ordonnée des violations.
type Error struct {
	Kind       Kind
	Status     int
	Message    string
	Violations []Violation
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithStatus retourne une copie avec un statut différent (ex: login "user not found" en 401).
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Status: http.StatusUnauthorized, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Status: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: msg}
}

func ValidationFailed(msg string, violations []Violation) *Error {
	return &Error{Kind: KindValidationFailed, Status: http.StatusUnprocessableEntity, Message: msg, Violations: violations}
}

// AsError extrait une erreur métier d'une chaîne d'erreurs.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
