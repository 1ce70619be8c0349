package auth

import (
	"strings"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated caller of a request.
type AuthContext struct {
	UserID    kernel.UserID
	UserType  string
	CompanyID kernel.CompanyID
	Scopes    []string
}

func (a *AuthContext) HasScope(scope string) bool {
	return Grants(a.Scopes, scope)
}

// TokenMiddleware validates bearer tokens
type TokenMiddleware struct {
	tokens TokenService
}

func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid bearer token.
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrUnauthorized().WithDetail("reason", "missing authorization header")
		}

		// Extract token (format: "Bearer <token>")
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return ErrUnauthorized().WithDetail("reason", "invalid authorization format")
		}

		claims, err := m.tokens.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID:    claims.UserID,
			UserType:  claims.UserType,
			CompanyID: claims.CompanyID,
			Scopes:    claims.Scopes,
		})
		return c.Next()
	}
}

// RequireScope must run after Authenticate.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authContext, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthorized()
		}
		if !authContext.HasScope(scope) {
			return ErrForbidden().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// GetAuthContext extracts the caller set by Authenticate
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authContext, ok := c.Locals(authContextKey).(*AuthContext)
	return authContext, ok
}
