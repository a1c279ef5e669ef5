package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/config"
	"github.com/foodos-payload/frituurapp/database"
	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/router"
	"github.com/foodos-payload/frituurapp/services"
	"github.com/foodos-payload/frituurapp/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	autoMigrate(db)

	if err := database.SeedDemoData(db); err != nil {
		utils.ErrorLogger.Errorf("Demo seed failed: %v", err)
	}

	checkoutSvc := services.NewCheckoutService(db, cfg)
	geocodeSvc := services.NewGeocodeService(cfg)
	posSyncSvc := services.NewPOSSyncService(db, cfg)
	printerSvc := services.NewPrinterService(db)

	// Unpaid online orders are swept into cancelled after half an hour.
	checkoutSvc.StartExpirySweeper(time.Minute, 30*time.Minute)

	r := router.SetupRouter(db, router.Services{
		Checkout: checkoutSvc,
		Geocoder: geocodeSvc,
		POSSync:  posSyncSvc,
		Printers: printerSvc,
	})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Tenant{},
		&models.Shop{},
		&models.Category{},
		&models.Product{},
		&models.Subproduct{},
		&models.FulfillmentMethod{},
		&models.PaymentMethod{},
		&models.Printer{},
		&models.Customer{},
		&models.Order{},
		&models.User{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
