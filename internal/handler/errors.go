package handler

import (
	"errors"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/middleware"
	"go-sales-territory/internal/service"
	"go-sales-territory/pkg/jwt"
	"go-sales-territory/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Error codes returned in the "code" field of error bodies
const (
	CodeValidation        = "validation"
	CodeUnauthorized      = "unauthorized"
	CodeTerritoryMismatch = "territory_mismatch"
	CodeAdminOnly         = "admin_only"
	CodeNotFound          = "not_found"
	CodeScopeUnresolved   = "scope_unresolved"
	CodeConflict          = "conflict"
	CodeStoreError        = "store_error"
)

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrWrongPassword):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInactive),
		errors.Is(err, service.ErrSessionReplaced),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrMissingToken):
		return fiber.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, access.ErrTerritoryMismatch):
		return fiber.StatusForbidden, CodeTerritoryMismatch
	case errors.Is(err, service.ErrAdminOnly):
		return fiber.StatusForbidden, CodeAdminOnly
	case errors.Is(err, access.ErrScopeUnresolved):
		return fiber.StatusConflict, CodeScopeUnresolved
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict, CodeConflict
	}
	return fiber.StatusInternalServerError, CodeStoreError
}

// respondError writes err as {"error", "code"}. Store failures are logged and
// their detail withheld from the client.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusOf(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.Get().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		msg = "Internal Server Error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg, "code": code})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg, "code": CodeValidation})
}

// currentPrincipal returns the principal set by the auth middleware
func currentPrincipal(c *fiber.Ctx) (access.Principal, error) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		return access.Principal{}, jwt.ErrMissingToken
	}
	return p, nil
}
