package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminScope is the only scope the blob server grants write access to.
const AdminScope = "vault:admin"

// AdminClaims is the claim set of a blob server admin token.
type AdminClaims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// Token wraps a JWT token.
//
// SignedString holds the compact form (header.payload.signature) that the
// vault client sends in the Authorization header and caches in the OS
// keyring. Subject and Scope are copied out of the claims after a
// successful validation.
type Token struct {
	*jwt.Token `json:"-"`

	SignedString string `json:"-"`
	Subject      string `json:"-"`
	Scope        string `json:"-"`
}

// IsAdmin reports whether the token grants blob writes.
func (t Token) IsAdmin() bool {
	return t.Scope == AdminScope
}

// String returns the compact JWS serialization of the token.
func (t Token) String() string {
	return t.SignedString
}
