package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sujan-mishra001/Hoteru-sub000/internal/config"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/handler"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/middleware"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/model"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/repository"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/service"
	"github.com/sujan-mishra001/Hoteru-sub000/internal/ws"
	"github.com/sujan-mishra001/Hoteru-sub000/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()

	db := database.ConnectDB(cfg.DatabaseURL)
	// Auto migrate; use a dedicated migration tool once the schema settles
	if err := db.AutoMigrate(
		&model.Branch{},
		&model.User{},
		&model.UnitOfMeasurement{},
		&model.Product{},
		&model.InventoryTransaction{},
		&model.BillOfMaterials{},
		&model.BOMItem{},
		&model.MenuItem{},
		&model.BatchProduction{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("database connection established")

	seedDefaults(db)

	wsHub := ws.NewHub()
	go wsHub.Run()

	// Dependency injection (wiring layers)
	unitRepo := repository.NewUnitRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	bomRepo := repository.NewBOMRepo(db)
	productionRepo := repository.NewProductionRepo(db)
	userRepo := repository.NewUserRepo(db)

	converter := service.NewUnitConverter(unitRepo)
	stockService := service.NewStockService(productRepo, txRepo, wsHub)
	productionService := service.NewProductionService(db, productRepo, bomRepo, txRepo, productionRepo, converter, stockService, wsHub)
	invService := service.NewInventoryService(db, productRepo, txRepo, stockService, productionService, converter, wsHub, cfg.AllowNegativeStockSale)
	unitService := service.NewUnitService(unitRepo)
	bomService := service.NewBOMService(bomRepo, productRepo)
	authService := service.NewAuthService(userRepo)

	invHandler := handler.NewInventoryHandler(invService, stockService)
	productHandler := handler.NewProductHandler(invService)
	unitHandler := handler.NewUnitHandler(unitService)
	bomHandler := handler.NewBOMHandler(bomService)
	productionHandler := handler.NewProductionHandler(productionService)
	reportHandler := handler.NewReportHandler(stockService)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		AppName: "Hoteru Inventory v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Public routes
	api.Post("/auth/login", authHandler.Login)

	// Everything below requires authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Units
	protected.Get("/units", unitHandler.GetUnits)
	protected.Post("/units", middleware.RequirePrivilege(model.PrivInventoryWrite), unitHandler.CreateUnit)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", middleware.RequirePrivilege(model.PrivInventoryWrite), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege(model.PrivInventoryWrite), productHandler.UpdateProduct)
	protected.Get("/products/:id/stock", invHandler.GetStockSnapshot)

	// Ledger
	protected.Get("/transactions", middleware.RequirePrivilege(model.PrivInventoryView), invHandler.GetTransactions)
	protected.Get("/transactions/:id", middleware.RequirePrivilege(model.PrivInventoryView), invHandler.GetTransaction)
	protected.Post("/transactions/adjustments", middleware.RequirePrivilege(model.PrivInventoryWrite), invHandler.RecordAdjustment)

	// Stock flows
	protected.Post("/inventory/receipts", middleware.RequirePrivilege(model.PrivInventoryWrite), invHandler.RecordPurchaseReceipt)
	protected.Post("/inventory/deductions", middleware.RequirePrivilege(model.PrivInventoryWrite), invHandler.DeductForSale)

	// BOMs
	protected.Get("/boms", bomHandler.GetBOMs)
	protected.Post("/boms", middleware.RequirePrivilege(model.PrivBOMManage), bomHandler.CreateBOM)
	protected.Patch("/boms/:id/active", middleware.RequirePrivilege(model.PrivBOMManage), bomHandler.SetActive)
	protected.Put("/boms/:id/menu-items", middleware.RequirePrivilege(model.PrivBOMManage), bomHandler.AttachMenuItems)

	// Productions
	protected.Get("/productions", productionHandler.GetProductions)
	protected.Post("/productions", middleware.RequirePrivilege(model.PrivProductionRun), productionHandler.RunProduction)

	// Reports
	protected.Get("/reports/stock-movement", middleware.RequirePrivilege(model.PrivReportView), reportHandler.GetStockMovement)
	protected.Get("/reports/low-stock", middleware.RequirePrivilege(model.PrivReportView), reportHandler.GetLowStock)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// seedDefaults creates the default branch, base units and admin account on
// first boot
func seedDefaults(db *gorm.DB) {
	var branch model.Branch
	if err := db.First(&branch, "name = ?", "Main Branch").Error; err != nil {
		branch = model.Branch{Name: "Main Branch"}
		branch.CreatedBy = "system"
		if err := db.Create(&branch).Error; err != nil {
			log.Warn().Err(err).Msg("failed to seed default branch")
			return
		}
	}

	var unitCount int64
	db.Model(&model.UnitOfMeasurement{}).Where("branch_id = ?", branch.ID).Count(&unitCount)
	if unitCount == 0 {
		seedUnit := func(name, abbr string, baseID *uuid.UUID, factor float64) *model.UnitOfMeasurement {
			unit := model.UnitOfMeasurement{Name: name, Abbreviation: abbr, BaseUnitID: baseID, ConversionFactor: factor, BranchID: branch.ID}
			unit.CreatedBy = "system"
			if err := db.Create(&unit).Error; err != nil {
				log.Warn().Err(err).Str("unit", name).Msg("failed to seed unit")
				return nil
			}
			return &unit
		}

		if gram := seedUnit("Gram", "g", nil, 1); gram != nil {
			seedUnit("Kilogram", "kg", &gram.ID, 1000)
		}
		if ml := seedUnit("Millilitre", "ml", nil, 1); ml != nil {
			seedUnit("Litre", "l", &ml.ID, 1000)
		}
		seedUnit("Piece", "pcs", nil, 1)
		log.Info().Msg("base units seeded")
	}

	userRepo := repository.NewUserRepo(db)
	if _, err := userRepo.FindByEmail("admin@hoteru.local"); err != nil {
		admin := &model.User{
			Email:    "admin@hoteru.local",
			FullName: "Master Administrator",
			Role:     model.RoleMasterAdmin,
			BranchID: &branch.ID,
			IsActive: true,
		}
		admin.CreatedBy = "system"
		if err := admin.SetPassword("admin123"); err != nil {
			log.Warn().Err(err).Msg("failed to hash admin password")
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Warn().Err(err).Msg("failed to create admin user")
		} else {
			log.Info().Msg("admin user created: admin@hoteru.local / admin123")
		}
	}
}
