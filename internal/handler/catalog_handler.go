package handler

import (
	"go-sales-territory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) GetArticles(c *fiber.Ctx) error {
	articles, err := h.service.ListArticles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(articles)
}

// CreateArticle
// POST /api/v1/articles
func (h *CatalogHandler) CreateArticle(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	var req service.CreateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	article, err := h.service.CreateArticle(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Article created", "data": article})
}

// UpdateArticlePrice changes the current price. Recorded sales keep theirs.
// PUT /api/v1/articles/:id/price
func (h *CatalogHandler) UpdateArticlePrice(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid article ID")
	}

	var req struct {
		Price *int64 `json:"price"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	if req.Price == nil {
		return badRequest(c, "price is required")
	}

	if err := h.service.UpdateArticlePrice(c.UserContext(), p, id, *req.Price); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Price updated"})
}

func (h *CatalogHandler) GetPacks(c *fiber.Ctx) error {
	packs, err := h.service.ListPacks(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(packs)
}

// GetPack returns a pack with its current price
// GET /api/v1/packs/:id
func (h *CatalogHandler) GetPack(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid pack ID")
	}

	pack, err := h.service.GetPack(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pack)
}

// CreatePack
// POST /api/v1/packs
func (h *CatalogHandler) CreatePack(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	var req service.CreatePackRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	pack, err := h.service.CreatePack(c.UserContext(), p, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Pack created", "data": pack})
}
