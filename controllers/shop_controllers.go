package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/services"
	"github.com/foodos-payload/frituurapp/utils"
)

type ShopController struct {
	DB       *gorm.DB
	Printers *services.PrinterService
}

func NewShopController(db *gorm.DB, printers *services.PrinterService) *ShopController {
	return &ShopController{DB: db, Printers: printers}
}

// GetShop -> shop with tenant and branding for the storefront/kiosk shell.
// Printer auto-provisioning piggybacks here so a fresh shop gets a printer
// row the first time a kiosk loads it; its failure never fails the request.
func (sc *ShopController) GetShop(c *gin.Context) {
	shop, ok := resolveShop(c, sc.DB)
	if !ok {
		return
	}

	if sc.Printers != nil {
		sc.Printers.EnsureDefaultPrinter(shop)
	}

	utils.RespondData(c, http.StatusOK, shop)
}

// GetCategories -> active categories of the shop in sort order.
func (sc *ShopController) GetCategories(c *gin.Context) {
	shop, ok := resolveShop(c, sc.DB)
	if !ok {
		return
	}

	var categories []models.Category
	if err := sc.DB.Where("shop_id = ? AND active = ?", shop.ID, true).
		Order("sort_order ASC").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, categories)
}

// GetProducts -> active products, optionally narrowed to one category.
func (sc *ShopController) GetProducts(c *gin.Context) {
	shop, ok := resolveShop(c, sc.DB)
	if !ok {
		return
	}

	query := sc.DB.Preload("Subproducts", "active = ?", true).
		Where("shop_id = ? AND active = ?", shop.ID, true)
	if categoryID := c.Query("category"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, products)
}

// GetFulfillmentMethods -> enabled fulfillment methods of the shop.
func (sc *ShopController) GetFulfillmentMethods(c *gin.Context) {
	shop, ok := resolveShop(c, sc.DB)
	if !ok {
		return
	}

	var methods []models.FulfillmentMethod
	if err := sc.DB.Where("shop_id = ? AND enabled = ?", shop.ID, true).
		Find(&methods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, methods)
}

// GetPaymentMethods -> enabled payment methods of the shop.
func (sc *ShopController) GetPaymentMethods(c *gin.Context) {
	shop, ok := resolveShop(c, sc.DB)
	if !ok {
		return
	}

	var methods []models.PaymentMethod
	if err := sc.DB.Where("shop_id = ? AND enabled = ?", shop.ID, true).
		Find(&methods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, methods)
}

// GetPrinters -> printers of the shop (kitchen screen config view).
func (sc *ShopController) GetPrinters(c *gin.Context) {
	shop, ok := resolveShop(c, sc.DB)
	if !ok {
		return
	}

	var printers []models.Printer
	if err := sc.DB.Where("shop_id = ?", shop.ID).Find(&printers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, printers)
}

// GetGeocode -> lat/lng of an address plus its distance from the shop.
func (sc *ShopController) GetGeocode(geocoder *services.GeocodeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := resolveShop(c, sc.DB)
		if !ok {
			return
		}

		address := c.Query("address")
		if address == "" {
			utils.RespondError(c, http.StatusBadRequest, ErrMissingAddress)
			return
		}

		result, err := geocoder.DistanceFrom(shop.Lat, shop.Lng, address)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}

		utils.RespondData(c, http.StatusOK, result)
	}
}
