package handler

import (
	"go-sales-territory/internal/model"
	"go-sales-territory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	service service.ClientService
}

func NewClientHandler(s service.ClientService) *ClientHandler {
	return &ClientHandler{service: s}
}

// GetClients lists the clients of the caller's territory
// GET /api/v1/clients
func (h *ClientHandler) GetClients(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	clients, err := h.service.ListClients(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(clients)
}

// GetClient looks a client up by business key
// GET /api/v1/clients/:client_id
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	key, err := model.ParseClientKey(c.Params("client_id"))
	if err != nil {
		return badRequest(c, "Invalid client ID")
	}

	client, err := h.service.GetClient(c.UserContext(), p, key)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// CreateClient registers a client
// POST /api/v1/clients
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	var req service.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	client, err := h.service.CreateClient(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Client created", "data": client})
}
