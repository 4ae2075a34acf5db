package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by every bearer token.
//
// The standard "sub" claim holds the user ID; Username is a private claim so
// the token alone identifies the session owner without a database lookup.
type TokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Token is a verified or freshly issued bearer token together with the
// identity it binds.
type Token struct {
	// SignedString is the compact JWS representation
	// (base64url header.payload.signature).
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID string `json:"-"`

	// Username is the owner handle extracted from the "username" claim.
	Username string `json:"-"`

	// ExpiresAt is the moment the token stops verifying.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
