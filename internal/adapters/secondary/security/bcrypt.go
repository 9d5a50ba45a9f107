package security

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost correspond au coût des comptes historiques.
const DefaultBcryptCost = 12

var ErrPasswordMismatch = errors.New("invalid password")

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (b *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

// Hasher hache avec l'algorithme configuré et vérifie n'importe quel format connu,
// ce qui permet de garder les comptes créés avec l'ancien algorithme.
type Hasher struct {
	primary interface{ Hash(string) (string, error) }
	argon2  *Argon2Hasher
	bcrypt  *BcryptHasher
}

const (
	AlgoArgon2id = "argon2id"
	AlgoBcrypt   = "bcrypt"
)

func NewHasher(algo string, argonParams *Argon2Params, bcryptCost int) (*Hasher, error) {
	h := &Hasher{
		argon2: NewArgon2Hasher(argonParams),
		bcrypt: NewBcryptHasher(bcryptCost),
	}
	switch algo {
	case AlgoArgon2id, "":
		h.primary = h.argon2
	case AlgoBcrypt:
		h.primary = h.bcrypt
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", algo)
	}
	return h, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *Hasher) Compare(hash, password string) error {
	switch {
	case strings.HasPrefix(hash, argon2Prefix):
		return h.argon2.Compare(hash, password)
	case isBcrypt(hash):
		return h.bcrypt.Compare(hash, password)
	default:
		return errors.New("unsupported hash format")
	}
}
