package test

import (
	"errors"

	pkgAuth "github.com/polkiloo/storefront/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// SignerStub signs values by prefixing them, which keeps tokens readable in assertions.
type SignerStub struct {
	UnsignErr error
}

// Sign returns "signed:<value>".
func (s SignerStub) Sign(value string) string {
	return "signed:" + value
}

// Unsign strips the prefix added by Sign.
func (s SignerStub) Unsign(token string) (string, error) {
	if s.UnsignErr != nil {
		return "", s.UnsignErr
	}
	const prefix = "signed:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", pkgAuth.ErrInvalidToken
	}
	return token[len(prefix):], nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Signer = SignerStub{}
