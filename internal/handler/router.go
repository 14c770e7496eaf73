package handler

import (
	"go-sales-territory/internal/middleware"
	"go-sales-territory/internal/service"
	"go-sales-territory/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Services is everything the HTTP layer calls into
type Services struct {
	Auth            service.AuthService
	Stats           service.StatsService
	Sales           service.SaleService
	Clients         service.ClientService
	Catalog         service.CatalogService
	Representatives service.RepresentativeService
}

// SetupRoutes mounts the API under /api/v1 and, when hub is not nil, the
// sale feed under /ws.
func SetupRoutes(app *fiber.App, svc Services, hub *ws.Hub) {
	authHandler := NewAuthHandler(svc.Auth)
	dashHandler := NewDashboardHandler(svc.Stats)
	saleHandler := NewSaleHandler(svc.Sales)
	clientHandler := NewClientHandler(svc.Clients)
	catalogHandler := NewCatalogHandler(svc.Catalog)
	repHandler := NewRepresentativeHandler(svc.Representatives)
	roleHandler := NewRoleHandler(svc.Representatives)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(svc.Auth))

	protected.Get("/auth/me", authHandler.Me)

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetPersonalStats)
	protected.Get("/dashboard/sales-summary", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetSalesSummary)
	protected.Get("/dashboard/client-count", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetClientCount)
	protected.Get("/dashboard/sales-movement", middleware.RequirePrivilege("dashboard:view"), dashHandler.GetSalesMovement)
	protected.Get("/dashboard/delegates", middleware.RequireAdmin(), dashHandler.GetDelegateBreakdown)

	// Sales
	protected.Get("/sales", middleware.RequirePrivilege("sale:view"), saleHandler.GetSales)
	protected.Get("/sales/export", middleware.RequirePrivilege("sale:export"), saleHandler.ExportSales)
	protected.Get("/sales/:id", middleware.RequirePrivilege("sale:view"), saleHandler.GetSale)
	protected.Post("/sales", middleware.RequirePrivilege("sale:create"), saleHandler.CreateSale)

	// Clients
	protected.Get("/clients", middleware.RequirePrivilege("client:view"), clientHandler.GetClients)
	protected.Get("/clients/:client_id", middleware.RequirePrivilege("client:view"), clientHandler.GetClient)
	protected.Post("/clients", middleware.RequirePrivilege("client:create"), clientHandler.CreateClient)

	// Catalog
	protected.Get("/articles", middleware.RequirePrivilege("pack:view"), catalogHandler.GetArticles)
	protected.Post("/articles", middleware.RequirePrivilege("pack:manage"), catalogHandler.CreateArticle)
	protected.Put("/articles/:id/price", middleware.RequirePrivilege("pack:manage"), catalogHandler.UpdateArticlePrice)
	protected.Get("/packs", middleware.RequirePrivilege("pack:view"), catalogHandler.GetPacks)
	protected.Get("/packs/:id", middleware.RequirePrivilege("pack:view"), catalogHandler.GetPack)
	protected.Post("/packs", middleware.RequirePrivilege("pack:manage"), catalogHandler.CreatePack)

	// Representative management
	protected.Get("/representatives", middleware.RequirePrivilege("representative:view"), repHandler.GetRepresentatives)
	protected.Get("/representatives/:id", middleware.RequirePrivilege("representative:view"), repHandler.GetRepresentative)
	protected.Post("/representatives", middleware.RequirePrivilege("representative:create"), repHandler.CreateRepresentative)
	protected.Put("/representatives/:id", middleware.RequirePrivilege("representative:update"), repHandler.UpdateRepresentative)
	protected.Delete("/representatives/:id", middleware.RequirePrivilege("representative:delete"), repHandler.DeleteRepresentative)

	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	if hub != nil {
		app.Use("/ws", middleware.RequireWebSocketAuth(svc.Auth))
		app.Get("/ws", websocket.New(SaleFeed(hub)))
	}
}
