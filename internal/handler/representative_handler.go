package handler

import (
	"go-sales-territory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RepresentativeHandler struct {
	service service.RepresentativeService
}

func NewRepresentativeHandler(s service.RepresentativeService) *RepresentativeHandler {
	return &RepresentativeHandler{service: s}
}

// CreateRepresentative handles representative creation
// POST /api/v1/representatives
func (h *RepresentativeHandler) CreateRepresentative(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	var req service.CreateRepresentativeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	rep, err := h.service.CreateRepresentative(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Representative created successfully",
		"data":    rep,
	})
}

// GetRepresentatives returns all representatives
// GET /api/v1/representatives
func (h *RepresentativeHandler) GetRepresentatives(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	reps, err := h.service.GetAllRepresentatives(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reps)
}

// GetRepresentative returns a single representative by ID
// GET /api/v1/representatives/:id
func (h *RepresentativeHandler) GetRepresentative(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid representative ID")
	}

	rep, err := h.service.GetRepresentativeByID(c.UserContext(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// UpdateRepresentative handles partial updates
// PUT /api/v1/representatives/:id
func (h *RepresentativeHandler) UpdateRepresentative(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid representative ID")
	}

	var req service.UpdateRepresentativeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	rep, err := h.service.UpdateRepresentative(c.UserContext(), p, id, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Representative updated successfully",
		"data":    rep,
	})
}

// DeleteRepresentative handles representative deletion
// DELETE /api/v1/representatives/:id
func (h *RepresentativeHandler) DeleteRepresentative(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid representative ID")
	}

	if err := h.service.DeleteRepresentative(c.UserContext(), p, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Representative deleted successfully"})
}
