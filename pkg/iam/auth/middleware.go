package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Middleware authenticates bearer tokens and stores the Principal in the request
func Middleware(tokens TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrUnauthenticated()
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return ErrUnauthenticated().WithDetail("reason", "invalid authorization format")
		}

		principal, err := tokens.Validate(parts[1])
		if err != nil {
			return err
		}

		c.Locals(principalKey, *principal)
		return c.Next()
	}
}

// RequireScope rejects principals whose kind does not grant scope
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return ErrUnauthenticated()
		}
		if !p.HasScope(scope) {
			return ErrInsufficientScope().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// GetPrincipal extracts the authenticated identity
func GetPrincipal(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalKey).(Principal)
	return p, ok
}
