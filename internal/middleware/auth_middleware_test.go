package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-sales-territory/internal/access"
	"go-sales-territory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuth accepts exactly one token
type stubAuth struct {
	service.AuthService
	token      string
	principal  access.Principal
	privileges []string
	err        error
}

func (s *stubAuth) Authenticate(ctx context.Context, token string) (access.Principal, []string, error) {
	if s.err != nil {
		return access.Principal{}, nil, s.err
	}
	if token != s.token {
		return access.Principal{}, nil, service.ErrSessionReplaced
	}
	return s.principal, s.privileges, nil
}

func newApp(auth service.AuthService, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{RequireAuth(auth)}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		p, ok := GetPrincipal(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(p.Username)
	})
	app.Get("/", handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireAuth(t *testing.T) {
	auth := &stubAuth{
		token:     "good",
		principal: access.Principal{ID: uuid.New(), Username: "ramzis", Role: access.RoleDelegate},
	}
	app := newApp(auth)

	assert.Equal(t, http.StatusOK, get(t, app, "Bearer good"))
	assert.Equal(t, http.StatusOK, get(t, app, "bearer good"))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, ""))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "good"))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "Bearer bad"))

	failing := &stubAuth{err: &service.StoreError{Op: "find representative", Err: errors.New("connection refused")}}
	assert.Equal(t, http.StatusInternalServerError, get(t, newApp(failing), "Bearer good"))
}

func TestRequirePrivilege(t *testing.T) {
	auth := &stubAuth{
		token:      "good",
		principal:  access.Principal{ID: uuid.New(), Username: "ramzis", Role: access.RoleDelegate},
		privileges: []string{"sale:view", "sale:create"},
	}

	assert.Equal(t, http.StatusOK, get(t, newApp(auth, RequirePrivilege("sale:create")), "Bearer good"))
	assert.Equal(t, http.StatusForbidden, get(t, newApp(auth, RequirePrivilege("pack:manage")), "Bearer good"))
	assert.Equal(t, http.StatusOK, get(t, newApp(auth, RequireAnyPrivilege("pack:manage", "sale:view")), "Bearer good"))
	assert.Equal(t, http.StatusForbidden, get(t, newApp(auth, RequireAnyPrivilege("pack:manage")), "Bearer good"))
}

func TestRequireAdmin(t *testing.T) {
	delegate := &stubAuth{token: "t", principal: access.Principal{ID: uuid.New(), Role: access.RoleDelegate}}
	admin := &stubAuth{token: "t", principal: access.Principal{ID: uuid.New(), Role: access.RoleAdmin}}

	assert.Equal(t, http.StatusForbidden, get(t, newApp(delegate, RequireAdmin()), "Bearer t"))
	assert.Equal(t, http.StatusOK, get(t, newApp(admin, RequireAdmin()), "Bearer t"))
}
