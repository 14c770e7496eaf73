package handler

import (
	"strconv"

	"go-sales-territory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.StatsService
}

func NewDashboardHandler(s service.StatsService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetPersonalStats returns the caller's sales and territory client count
// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetPersonalStats(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	stats, err := h.service.PersonalStatistics(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetSalesSummary returns the caller's sales count and revenue only
// GET /api/v1/dashboard/sales-summary
func (h *DashboardHandler) GetSalesSummary(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	summary, err := h.service.SalesSummary(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetClientCount returns the number of clients in the caller's territory
// GET /api/v1/dashboard/client-count
func (h *DashboardHandler) GetClientCount(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.service.TerritoryClientCount(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"territory_client_count": count})
}

// GetSalesMovement returns daily sales data for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetSalesMovement(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(service.DefaultMovementDays)))
	if err != nil || days <= 0 {
		days = service.DefaultMovementDays
	}

	data, err := h.service.SalesMovement(c.UserContext(), p, days)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": len(data),
		"data":   data,
	})
}

// GetDelegateBreakdown returns per-representative totals, admins only
// GET /api/v1/dashboard/delegates
func (h *DashboardHandler) GetDelegateBreakdown(c *fiber.Ctx) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return respondError(c, err)
	}

	breakdown, err := h.service.DelegateBreakdown(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(breakdown)
}
