package middleware

import (
	"errors"
	"strings"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/service"
	"go-sales-territory/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Context keys set by RequireAuth
const (
	LocalsPrincipal  = "principal"
	LocalsPrivileges = "privileges"
)

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg, "code": "unauthorized"})
}

func forbidden(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": msg, "code": "forbidden"})
}

// BearerToken extracts the token from "Authorization: Bearer <token>"
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", jwt.ErrMissingToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization format, use: Bearer <token>")
	}
	return parts[1], nil
}

// RequireAuth validates the bearer token against the stored session and puts
// the normalized principal in the request context. A principal with an
// invalid territory is still admitted; territory-scoped operations refuse it
// later.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := BearerToken(c)
		if err != nil {
			return unauthorized(c, err.Error())
		}

		principal, privileges, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			var se *service.StoreError
			if errors.As(err, &se) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error", "code": "store_error"})
			}
			return unauthorized(c, err.Error())
		}

		c.Locals(LocalsPrincipal, principal)
		c.Locals(LocalsPrivileges, privileges)
		return c.Next()
	}
}

// GetPrincipal returns the principal set by RequireAuth
func GetPrincipal(c *fiber.Ctx) (access.Principal, bool) {
	p, ok := c.Locals(LocalsPrincipal).(access.Principal)
	return p, ok
}

// RequirePrivilege checks if the authenticated representative has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals(LocalsPrivileges).([]string)
		if !ok {
			return forbidden(c, "No privileges found")
		}

		for _, p := range privileges {
			if p == requiredPrivilege {
				return c.Next()
			}
		}

		return forbidden(c, "Forbidden: requires '"+requiredPrivilege+"' privilege")
	}
}

// RequireAnyPrivilege checks if the representative has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals(LocalsPrivileges).([]string)
		if !ok {
			return forbidden(c, "No privileges found")
		}

		for _, userPriv := range privileges {
			for _, reqPriv := range requiredPrivileges {
				if userPriv == reqPriv {
					return c.Next()
				}
			}
		}

		return forbidden(c, "Forbidden: requires one of "+strings.Join(requiredPrivileges, ", ")+" privileges")
	}
}

// RequireAdmin admits admin principals only, whatever privileges they hold
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok || !p.IsAdmin() {
			return forbidden(c, "Forbidden: administrators only")
		}
		return c.Next()
	}
}

// RequireWebSocketAuth authenticates a websocket upgrade. Browsers cannot set
// headers on the upgrade request, so the token may come as ?token= instead.
func RequireWebSocketAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.SendStatus(fiber.StatusUpgradeRequired)
		}

		token := c.Query("token")
		if token == "" {
			var err error
			if token, err = BearerToken(c); err != nil {
				return unauthorized(c, err.Error())
			}
		}

		principal, _, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, err.Error())
		}
		c.Locals(LocalsPrincipal, principal)
		return c.Next()
	}
}
