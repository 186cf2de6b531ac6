package auth

import (
	"strings"

	"github.com/Abraxas-365/careerlens/pkg/iam"
	"github.com/Abraxas-365/careerlens/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is stored in fiber locals for authenticated requests
type AuthContext struct {
	UserID   kernel.UserID
	Email    kernel.Email
	Name     string
	Role     iam.Role
	Provider string
}

// TokenMiddleware authenticates Bearer identity tokens
type TokenMiddleware struct {
	verifier Verifier
}

func NewTokenMiddleware(verifier Verifier) *TokenMiddleware {
	return &TokenMiddleware{verifier: verifier}
}

// Authenticate rejects requests without a valid Bearer token
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingToken()
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return ErrMissingToken().WithDetail("reason", "invalid authorization format")
		}

		claims, err := m.verifier.Verify(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID:   claims.UID,
			Email:    claims.Email,
			Name:     claims.Name,
			Role:     claims.Role,
			Provider: claims.Provider,
		})
		return c.Next()
	}
}

// RequireRole admits only the listed roles. It must run after Authenticate.
func (m *TokenMiddleware) RequireRole(roles ...iam.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrAuthRequired()
		}
		for _, r := range roles {
			if authCtx.Role == r {
				return c.Next()
			}
		}
		return ErrForbidden().WithDetail("role", authCtx.Role)
	}
}

// GetAuthContext extracts the authenticated identity from the request
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok && authCtx != nil
}
