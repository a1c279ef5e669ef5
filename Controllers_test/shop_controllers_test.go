package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/controllers"
	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/services"
	"github.com/foodos-payload/frituurapp/utils"
)

func setupTestDBForShops(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Tenant{}, &models.Shop{}, &models.Category{}, &models.Product{},
		&models.Subproduct{}, &models.FulfillmentMethod{}, &models.PaymentMethod{},
		&models.Printer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	tenant := models.Tenant{Name: "Test Tenant", Slug: "test-tenant", Active: true}
	db.Create(&tenant)
	db.Create(&models.Shop{TenantID: tenant.ID, Name: "Shop One", Slug: "shop-one", Active: true})

	db.Create(&models.Category{ShopID: 1, Name: "Burgers", SortOrder: 2, Active: true})
	db.Create(&models.Category{ShopID: 1, Name: "Snacks", SortOrder: 1, Active: true})
	retired := models.Category{ShopID: 1, Name: "Retired", SortOrder: 3}
	db.Create(&retired)
	db.Model(&retired).Update("active", false)

	db.Create(&models.Product{ShopID: 1, CategoryID: 2, Name: "Frikandel", Price: 2.5, Active: true})
	db.Create(&models.Product{ShopID: 1, CategoryID: 1, Name: "Bicky", Price: 4.5, Active: true})
	gone := models.Product{ShopID: 1, CategoryID: 1, Name: "Gone", Price: 1}
	db.Create(&gone)
	db.Model(&gone).Update("active", false)

	db.Create(&models.FulfillmentMethod{ShopID: 1, Kind: models.FulfillmentTakeaway, Enabled: true})
	delivery := models.FulfillmentMethod{ShopID: 1, Kind: models.FulfillmentDelivery}
	db.Create(&delivery)
	db.Model(&delivery).Update("enabled", false)

	return db
}

func setupShopRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	shopCtrl := controllers.NewShopController(db, services.NewPrinterService(db))
	router.GET("/api/shop", shopCtrl.GetShop)
	router.GET("/api/categories", shopCtrl.GetCategories)
	router.GET("/api/products", shopCtrl.GetProducts)
	router.GET("/api/fulfillment-methods", shopCtrl.GetFulfillmentMethods)
	return router
}

func getJSON(t *testing.T, r *gin.Engine, url string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func TestGetShopProvisionsDefaultPrinter(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForShops(t)
	r := setupShopRouter(db)

	w, resp := getJSON(t, r, "/api/shop?host=shop-one")
	assert.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "shop-one", data["slug"])
	assert.NotNil(t, data["tenant"])

	var printers []models.Printer
	db.Where("shop_id = ?", 1).Find(&printers)
	assert.Len(t, printers, 1)
	assert.True(t, printers[0].AutoProvisioned)

	// A second load must not provision another one.
	getJSON(t, r, "/api/shop?host=shop-one")
	db.Where("shop_id = ?", 1).Find(&printers)
	assert.Len(t, printers, 1)
}

func TestGetCategoriesSortedAndFiltered(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForShops(t)
	r := setupShopRouter(db)

	w, resp := getJSON(t, r, "/api/categories?host=shop-one")
	assert.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].([]interface{})
	assert.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "Snacks", first["name"], "categories come back in sort order")
}

func TestGetProductsByCategory(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForShops(t)
	r := setupShopRouter(db)

	w, resp := getJSON(t, r, "/api/products?host=shop-one")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"].([]interface{}), 2, "inactive products are hidden")

	w, resp = getJSON(t, r, "/api/products?host=shop-one&category=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"].([]interface{}), 1)
}

func TestGetFulfillmentMethodsEnabledOnly(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForShops(t)
	r := setupShopRouter(db)

	w, resp := getJSON(t, r, "/api/fulfillment-methods?host=shop-one")
	assert.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, models.FulfillmentTakeaway, data[0].(map[string]interface{})["kind"])
}

func TestUnknownHostIsNotFound(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForShops(t)
	r := setupShopRouter(db)

	w, _ := getJSON(t, r, "/api/shop?host=elsewhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
