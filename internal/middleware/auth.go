package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const emailContextKey = "decodedEmail"

// TokenVerifier validates a bearer credential and yields the verified email.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// RoleLookup resolves the stored role for a verified email.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// Authenticate validates the bearer token with the identity provider and
// loads the verified email into the request context.
func Authenticate(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		email, err := verifier.Verify(c.Context(), parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(emailContextKey, email)
		return c.Next()
	}
}

// RequireRole allows the request through only when the authenticated user's
// stored role matches. Runs after Authenticate.
func RequireRole(users RoleLookup, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := DecodedEmail(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authenticated email")
		}

		stored, err := users.RoleByEmail(c.Context(), email)
		if err != nil {
			return err
		}
		if stored != role {
			return fiber.NewError(fiber.StatusForbidden, "forbidden access")
		}

		return c.Next()
	}
}

// DecodedEmail extracts the verified email from the request context.
func DecodedEmail(c *fiber.Ctx) (string, bool) {
	value := c.Locals(emailContextKey)
	if value == nil {
		return "", false
	}

	if email, ok := value.(string); ok && email != "" {
		return email, true
	}

	return "", false
}
