package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codecollab/server/internal/httputil"
	sessionDomain "github.com/codecollab/server/internal/session/domain"
	sessionUseCase "github.com/codecollab/server/internal/session/usecase"
)

// TokenCookieName is the cookie read when no Authorization header is sent.
const TokenCookieName = "token"

// AuthenticationMiddleware validates the session token of every request.
//
// The token is read from "Authorization: Bearer <token>" (case-insensitive scheme),
// falling back to the token cookie. Missing, malformed, expired and revoked tokens
// all produce the same 401 body. A revocation store outage produces 503.
//
// On success the identifier and token are stored in the request context; see
// GetIdentity and GetToken.
func AuthenticationMiddleware(
	sessionUseCase sessionUseCase.SessionUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			logger.Debug("authentication failed: missing or malformed credentials")
			httputil.HandleErrorGin(c, sessionDomain.ErrInvalidCredentials, logger)
			c.Abort()
			return
		}

		identifier, err := sessionUseCase.Validate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithIdentity(c.Request.Context(), identifier, token)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractToken reads the bearer token from the Authorization header or the token cookie.
// A present but malformed header is not retried against the cookie.
func extractToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return "", false
		}
		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		return token, token != ""
	}

	token, err := c.Cookie(TokenCookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}
