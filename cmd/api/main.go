package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahakaal/cafepos/internal/application/service"
	"github.com/mahakaal/cafepos/internal/config"
	"github.com/mahakaal/cafepos/internal/infrastructure/database"
	"github.com/mahakaal/cafepos/internal/infrastructure/repository"
	"github.com/mahakaal/cafepos/internal/presentation/http/handler"
	"github.com/mahakaal/cafepos/internal/presentation/http/routes"
	"github.com/mahakaal/cafepos/pkg/printer"
	"github.com/mahakaal/cafepos/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	itemRepo := repository.NewItemRepository(db)
	billRepo := repository.NewBillRepository(db)
	billItemRepo := repository.NewBillItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	historyRepo := repository.NewOrderHistoryRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: printer setup failed, falling back to no-op printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Cafe timezone drives the dashboard day boundaries
	location, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using local time", cfg.Database.Timezone)
		location = time.Local
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(categoryRepo, itemRepo)
	kitchenService := service.NewKitchenService(recipeRepo, orderRepo)
	historyService := service.NewHistoryService(historyRepo, orderRepo, billRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, location)
	printerService := service.NewPrinterService(
		thermalPrinter,
		billRepo,
		orderRepo,
		recipeRepo,
		cfg.Cafe,
		cfg.Printer,
		cfg.Receipts.Path,
	)
	billingService := service.NewBillingService(
		txManager,
		billRepo,
		billItemRepo,
		orderRepo,
		orderItemRepo,
		recipeRepo,
		itemRepo,
		historyService,
		printerService,
		cfg.Cafe.GSTPercentage,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Bill:      handler.NewBillHandler(billingService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Kitchen:   handler.NewKitchenHandler(kitchenService),
		History:   handler.NewHistoryHandler(historyService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("%s listening on :%s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
