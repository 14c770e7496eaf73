package handler

import (
	"go-sales-territory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	service service.RepresentativeService
}

func NewRoleHandler(s service.RepresentativeService) *RoleHandler {
	return &RoleHandler{service: s}
}

// GetRoles returns all available roles
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.service.GetAllRoles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(roles)
}

// GetPrivileges returns all available privileges
// GET /api/v1/privileges
func (h *RoleHandler) GetPrivileges(c *fiber.Ctx) error {
	privileges, err := h.service.GetAllPrivileges(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(privileges)
}
