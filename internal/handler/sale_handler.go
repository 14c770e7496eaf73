package handler

import (
	"fmt"
	"time"

	"go-sales-territory/internal/model"
	"go-sales-territory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// CreateSaleRequest accepts client_id as "2362" or 2362
type CreateSaleRequest struct {
	ClientID model.ClientKey `json:"client_id"`
	PackID   uuid.UUID       `json:"pack_id"`
}

// CreateSale admits a sale for the caller
// POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	var req CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	sale, err := h.service.RecordSale(c.UserContext(), p, req.ClientID, req.PackID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// GetSales lists the sales visible to the caller
// GET /api/v1/sales
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	sales, err := h.service.ListSales(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

// GetSale returns a single sale
// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid sale ID")
	}

	sale, err := h.service.GetSale(c.UserContext(), p, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// ExportSales downloads the caller's visible sales as xlsx
// GET /api/v1/sales/export
func (h *SaleHandler) ExportSales(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.service.ExportSales(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
