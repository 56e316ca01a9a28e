package auth

import (
	"github.com/jaevor/go-nanoid"
)

// TokenLength is the length of issued opaque session tokens.
const TokenLength = 40

// TokenIssuer generates opaque bearer tokens. The token value carries
// no claims; it is only a key into the session token table.
type TokenIssuer struct {
	generate func() string
}

// NewTokenIssuer creates a TokenIssuer backed by a nanoid generator.
func NewTokenIssuer() (*TokenIssuer, error) {
	gen, err := nanoid.Standard(TokenLength)
	if err != nil {
		return nil, err
	}
	return &TokenIssuer{generate: gen}, nil
}

// Issue returns a new opaque token string.
func (i *TokenIssuer) Issue() string {
	return i.generate()
}
