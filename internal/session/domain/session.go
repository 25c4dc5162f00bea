// Package domain defines the session lifecycle types: issued bearer tokens,
// their claims and the revocation marker written at logout.
package domain

import (
	"time"
)

const (
	// TokenLifetime is how long an issued token stays valid.
	TokenLifetime = 24 * time.Hour

	// RevocationTTL is how long a revocation record is kept. Written with the full
	// lifetime, a record never expires before the token it denies.
	RevocationTTL = TokenLifetime

	// RevokedMarker is the value stored against a revoked token.
	RevokedMarker = "logout"
)

// IssuedToken is a freshly signed session token.
type IssuedToken struct {
	Token      string
	Identifier string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Claims are the verified contents of a session token.
type Claims struct {
	Identifier string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Clock returns the current time. Tests replace it to move across expiry.
type Clock func() time.Time
