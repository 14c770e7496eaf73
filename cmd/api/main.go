package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-sales-territory/internal/broker"
	"go-sales-territory/internal/config"
	"go-sales-territory/internal/handler"
	"go-sales-territory/internal/middleware"
	"go-sales-territory/internal/repository"
	"go-sales-territory/internal/service"
	"go-sales-territory/internal/ws"
	"go-sales-territory/pkg/database"
	"go-sales-territory/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Config & logger
	cfg := config.Load()
	if err := logger.InitLogger(cfg.Server.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	// 2. Database
	db, err := database.ConnectDB(cfg.Database.DSN(), cfg.Server.Env)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	// Auto migrate (use a separate migration tool in production)
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	store := repository.NewStore(db)
	ctx := context.Background()

	// 3. Seed roles, privileges and the bootstrap admin
	if err := repository.SeedAccessControl(ctx, store); err != nil {
		log.Warn("failed to seed roles and privileges", zap.Error(err))
	}
	created, err := repository.EnsureAdmin(ctx, store, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, cfg.Seed.AdminWilaya)
	if err != nil {
		log.Warn("failed to create admin", zap.Error(err))
	} else if created {
		log.Info("admin representative created", zap.String("username", cfg.Seed.AdminUsername))
	}

	// 4. WebSocket hub and optional event stream
	wsHub := ws.NewHub()
	go wsHub.Run()

	var publisher service.SaleEventPublisher
	if cfg.Kafka.Enabled() {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicSale)
		defer producer.Close()
		publisher = broker.NewEventPublisher(producer)
		log.Info("publishing sale events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.TopicSale))
	}

	// 5. Services
	services := handler.Services{
		Auth:            service.NewAuthService(store),
		Stats:           service.NewStatsService(store),
		Sales:           service.NewSaleService(store, wsHub, publisher),
		Clients:         service.NewClientService(store),
		Catalog:         service.NewCatalogService(store),
		Representatives: service.NewRepresentativeService(store),
	}

	// 6. Fiber
	app := fiber.New(fiber.Config{
		AppName: "Sales Territory API v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handler.SetupRoutes(app, services, wsHub)

	// 7. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Panic("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
