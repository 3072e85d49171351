package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid session token")

// Signer binds opaque values to the server secret so cookies cannot be forged.
type Signer interface {
	Sign(value string) string
	Unsign(token string) (string, error)
}

// HMACSigner appends an HMAC-SHA256 signature to the signed value.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner builds HMACSigner with provided secret.
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// Sign returns "<value>.<signature>".
func (s *HMACSigner) Sign(value string) string {
	return value + "." + s.sign(value)
}

// Unsign validates token signature and returns the original value.
func (s *HMACSigner) Unsign(token string) (string, error) {
	idx := strings.LastIndexByte(token, '.')
	if idx <= 0 || idx == len(token)-1 {
		return "", ErrInvalidToken
	}

	value, sig := token[:idx], token[idx+1:]
	if !hmac.Equal([]byte(s.sign(value)), []byte(sig)) {
		return "", ErrInvalidToken
	}
	return value, nil
}

func (s *HMACSigner) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
