package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// TokenBytes is the amount of randomness in an access token. Hex encoding
// doubles it, so tokens are 256 characters long.
const TokenBytes = 128

// TokenGenerator issues opaque access tokens.
//
// A token carries no data. It is only meaningful because the store holds
// it next to exactly one account, so validating it is a lookup, not a
// signature check.
type TokenGenerator struct {
	random io.Reader
}

// NewTokenGenerator returns a generator backed by crypto/rand.
func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{random: rand.Reader}
}

// Generate returns a fresh hex-encoded random token.
func (g *TokenGenerator) Generate() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", fmt.Errorf("auth: reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// TokenFromHeader extracts the access token from an Authorization header
// value. The bare token is the canonical form; a "Bearer " prefix is also
// accepted.
func TokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return header
}
