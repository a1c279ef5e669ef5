package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/utils"
)

// SeedDemoData creates a demo tenant and shop on an empty database so a
// fresh install has something to point a kiosk at. It is a no-op once any
// tenant exists.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Tenant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tenant := models.Tenant{
		Name:    "Demo Tenant",
		Slug:    "demo",
		Domains: datatypes.JSON([]byte(`["demo-frituur.localhost"]`)),
		Active:  true,
	}
	if err := db.Create(&tenant).Error; err != nil {
		return err
	}

	shop := models.Shop{
		TenantID:         tenant.ID,
		Name:             "Demo Frituur",
		Slug:             "demo-frituur",
		Branding:         datatypes.JSON([]byte(`{"primary_color":"#e63946","header_text":"Demo Frituur"}`)),
		Address:          "Grote Markt 1, Brussels",
		Lat:              50.8467,
		Lng:              4.3525,
		DeliveryRadiusKm: 5,
		Active:           true,
	}
	if err := db.Create(&shop).Error; err != nil {
		return err
	}

	for _, kind := range []string{models.FulfillmentDineIn, models.FulfillmentTakeaway, models.FulfillmentDelivery} {
		if err := db.Create(&models.FulfillmentMethod{ShopID: shop.ID, Kind: kind, Enabled: true}).Error; err != nil {
			return err
		}
	}
	if err := db.Create(&models.PaymentMethod{
		ShopID: shop.ID, Name: "Cash", Provider: models.PaymentProviderCash, Enabled: true,
	}).Error; err != nil {
		return err
	}
	if err := db.Create(&models.PaymentMethod{
		ShopID: shop.ID, Name: "Online", Provider: models.PaymentProviderCheckout, Online: true, Enabled: true,
	}).Error; err != nil {
		return err
	}

	category := models.Category{ShopID: shop.ID, Name: "Snacks", Active: true}
	if err := db.Create(&category).Error; err != nil {
		return err
	}
	if err := db.Create(&models.Product{
		ShopID: shop.ID, CategoryID: category.ID, Name: "Frikandel", Price: 2.5, Active: true,
	}).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded demo tenant %q with shop %q", tenant.Slug, shop.Slug)
	return nil
}
