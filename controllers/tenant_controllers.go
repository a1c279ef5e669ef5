package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/kitchen"
	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/utils"
)

type TenantController struct {
	DB *gorm.DB
}

func NewTenantController(db *gorm.DB) *TenantController {
	return &TenantController{DB: db}
}

// GetAllTenants -> list of tenants with their shops.
func (tc *TenantController) GetAllTenants(c *gin.Context) {
	var tenants []models.Tenant
	if err := tc.DB.Preload("Shops").Find(&tenants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondData(c, http.StatusOK, tenants)
}

// GetTenantByID -> detail of one tenant.
func (tc *TenantController) GetTenantByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("tenant_id"))

	var tenant models.Tenant
	if err := tc.DB.Preload("Shops").First(&tenant, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondData(c, http.StatusOK, tenant)
}

// CreateTenant
func (tc *TenantController) CreateTenant(c *gin.Context) {
	type reqBody struct {
		Name    string   `json:"name" binding:"required"`
		Slug    string   `json:"slug" binding:"required"`
		Domains []string `json:"domains"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	domains, _ := json.Marshal(req.Domains)
	tenant := models.Tenant{
		Name:    req.Name,
		Slug:    req.Slug,
		Domains: datatypes.JSON(domains),
		Active:  true,
	}

	if err := tc.DB.Create(&tenant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Tenant created: %s", tenant.Slug)
	utils.RespondData(c, http.StatusCreated, tenant)
}

// UpdateTenant -> partial update of name/domains/billing/active.
func (tc *TenantController) UpdateTenant(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("tenant_id"))

	var tenant models.Tenant
	if err := tc.DB.First(&tenant, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Name              *string  `json:"name"`
		Domains           []string `json:"domains"`
		BillingCustomerID *string  `json:"billing_customer_id"`
		Active            *bool    `json:"active"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Domains != nil {
		domains, _ := json.Marshal(req.Domains)
		tenant.Domains = datatypes.JSON(domains)
	}
	if req.BillingCustomerID != nil {
		tenant.BillingCustomerID = *req.BillingCustomerID
	}
	if req.Active != nil {
		tenant.Active = *req.Active
	}

	if err := tc.DB.Save(&tenant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, tenant)
}

// CreateShop -> new shop under a tenant, with default fulfillment and
// payment methods so a fresh shop can take orders immediately.
func (tc *TenantController) CreateShop(c *gin.Context) {
	tenantID, _ := strconv.Atoi(c.Param("tenant_id"))

	var tenant models.Tenant
	if err := tc.DB.First(&tenant, tenantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Name             string  `json:"name" binding:"required"`
		Slug             string  `json:"slug" binding:"required"`
		Address          string  `json:"address"`
		Lat              float64 `json:"lat"`
		Lng              float64 `json:"lng"`
		DeliveryRadiusKm float64 `json:"delivery_radius_km"`
		POSProvider      string  `json:"pos_provider"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	shop := models.Shop{
		TenantID:         tenant.ID,
		Name:             req.Name,
		Slug:             req.Slug,
		Address:          req.Address,
		Lat:              req.Lat,
		Lng:              req.Lng,
		DeliveryRadiusKm: req.DeliveryRadiusKm,
		POSProvider:      req.POSProvider,
		Active:           true,
	}

	tx := tc.DB.Begin()
	if err := tx.Create(&shop).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, kind := range []string{models.FulfillmentDineIn, models.FulfillmentTakeaway} {
		if err := tx.Create(&models.FulfillmentMethod{ShopID: shop.ID, Kind: kind, Enabled: true}).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if err := tx.Create(&models.PaymentMethod{
		ShopID: shop.ID, Name: "Cash", Provider: models.PaymentProviderCash, Enabled: true,
	}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tx.Commit()

	utils.InfoLogger.Printf("Shop created: %s under tenant %s", shop.Slug, tenant.Slug)
	utils.RespondData(c, http.StatusCreated, shop)
}

// UpdateShop -> partial update; branding changes are pushed to the shop's
// kitchen screens.
func (tc *TenantController) UpdateShop(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("shop_id"))

	var shop models.Shop
	if err := tc.DB.First(&shop, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Name             *string         `json:"name"`
		Branding         json.RawMessage `json:"branding"`
		Address          *string         `json:"address"`
		Lat              *float64        `json:"lat"`
		Lng              *float64        `json:"lng"`
		DeliveryRadiusKm *float64        `json:"delivery_radius_km"`
		KioskIdleTimeout *int            `json:"kiosk_idle_timeout"`
		POSProvider      *string         `json:"pos_provider"`
		Active           *bool           `json:"active"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Branding != nil {
		shop.Branding = datatypes.JSON(req.Branding)
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.Lat != nil {
		shop.Lat = *req.Lat
	}
	if req.Lng != nil {
		shop.Lng = *req.Lng
	}
	if req.DeliveryRadiusKm != nil {
		shop.DeliveryRadiusKm = *req.DeliveryRadiusKm
	}
	if req.KioskIdleTimeout != nil {
		shop.KioskIdleTimeout = *req.KioskIdleTimeout
	}
	if req.POSProvider != nil {
		shop.POSProvider = *req.POSProvider
	}
	if req.Active != nil {
		shop.Active = *req.Active
	}

	if err := tc.DB.Save(&shop).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kitchen.BroadcastShopUpdate(shop.Slug, shop)

	utils.RespondData(c, http.StatusOK, shop)
}
