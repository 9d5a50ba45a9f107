package domain

// AuthContext décrit l'appelant d'une opération.
// Construit par le middleware d'authentification à partir d'un token vérifié, jamais persisté.
type AuthContext struct {
	Authenticated bool
	AccountID     string
}

// Anonymous est le contexte d'un appel sans token valide.
func Anonymous() AuthContext {
	return AuthContext{}
}

// Authenticated construit le contexte d'un appelant identifié.
func Authenticated(accountID string) AuthContext {
	return AuthContext{Authenticated: accountID != "", AccountID: accountID}
}

// SessionClaims est le contenu signé d'un token de session.
type SessionClaims struct {
	AccountID string
	Email     string
}
