package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/codecollab/server/internal/errors"
	sessionDomain "github.com/codecollab/server/internal/session/domain"
)

// sessionClaims is the JWT payload: {email, iat, exp}.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// jwtSigner implements TokenSigner with HS256 JSON Web Tokens.
type jwtSigner struct {
	key []byte
}

// NewJWTSigner creates a TokenSigner for the given HMAC key.
// An empty key returns ErrSigningKeyMissing.
func NewJWTSigner(key []byte) (TokenSigner, error) {
	if len(key) == 0 {
		return nil, sessionDomain.ErrSigningKeyMissing
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &jwtSigner{key: k}, nil
}

// Sign creates an HS256 token for identifier.
func (s *jwtSigner) Sign(identifier string, now time.Time) (*sessionDomain.IssuedToken, error) {
	issuedAt := now.UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(sessionDomain.TokenLifetime)

	claims := sessionClaims{
		Email: identifier,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign session token")
	}

	return &sessionDomain.IssuedToken{
		Token:      signed,
		Identifier: identifier,
		IssuedAt:   issuedAt,
		ExpiresAt:  expiresAt,
	}, nil
}

// Verify parses token and checks it against now. Only HS256 is accepted and
// the exp claim is mandatory.
func (s *jwtSigner) Verify(token string, now time.Time) (*sessionDomain.Claims, error) {
	if token == "" {
		return nil, sessionDomain.ErrInvalidCredentials
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid || claims.Email == "" {
		return nil, sessionDomain.ErrInvalidCredentials
	}

	result := &sessionDomain.Claims{
		Identifier: claims.Email,
		ExpiresAt:  claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}
