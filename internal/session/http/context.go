// Package http provides the bearer authentication boundary for protected routes.
package http

import (
	"context"
)

// identityKey is a context key type for storing the authenticated identifier.
type identityKey struct{}

// tokenKey is a context key type for storing the validated bearer token.
type tokenKey struct{}

// WithIdentity stores the authenticated identifier and the token it came from.
func WithIdentity(ctx context.Context, identifier, token string) context.Context {
	ctx = context.WithValue(ctx, identityKey{}, identifier)
	return context.WithValue(ctx, tokenKey{}, token)
}

// GetIdentity returns the identifier set by AuthenticationMiddleware.
func GetIdentity(ctx context.Context) (string, bool) {
	identifier, ok := ctx.Value(identityKey{}).(string)
	return identifier, ok && identifier != ""
}

// GetToken returns the bearer token that authenticated the request.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}
