package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued by a replica server after a successful login.
//
// SignedString holds the compact serialized form of the token sent in the
// Authorization header. ClientID is a parsed copy of the "sub" claim; every
// login gets its own client id so server logs can tell sessions apart.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	SignedString string `json:"-"`

	ClientID string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
