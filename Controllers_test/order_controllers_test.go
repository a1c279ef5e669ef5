package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/config"
	"github.com/foodos-payload/frituurapp/controllers"
	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/services"
	"github.com/foodos-payload/frituurapp/utils"
)

func setupTestDBForOrders(t *testing.T) *gorm.DB {
	// Named in-memory database: stable across pooled connections, but
	// isolated between tests.
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Tenant{}, &models.Shop{}, &models.FulfillmentMethod{},
		&models.PaymentMethod{}, &models.Printer{}, &models.Order{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	// Two shops under one tenant so ownership checks have a second shop
	// to trip over.
	tenant := models.Tenant{Name: "Test Tenant", Slug: "test-tenant", Active: true}
	db.Create(&tenant)
	db.Create(&models.Shop{TenantID: tenant.ID, Name: "Shop One", Slug: "shop-one", Active: true})
	db.Create(&models.Shop{TenantID: tenant.ID, Name: "Shop Two", Slug: "shop-two", Active: true})

	for shopID := uint(1); shopID <= 2; shopID++ {
		db.Create(&models.FulfillmentMethod{ShopID: shopID, Kind: models.FulfillmentTakeaway, Enabled: true})
	}
	db.Create(&models.PaymentMethod{ID: 1, ShopID: 1, Name: "Cash", Provider: models.PaymentProviderCash, Enabled: true})
	db.Create(&models.PaymentMethod{ID: 2, ShopID: 1, Name: "Online", Provider: models.PaymentProviderCheckout, Online: true, Enabled: true})

	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db, nil, nil)
	router.POST("/api/orders", orderCtrl.CreateOrder)
	router.GET("/api/orders", orderCtrl.GetOrders)
	router.GET("/api/orders/:order_id", orderCtrl.GetOrderByID)
	router.POST("/api/orders/:order_id/awaiting-preparation", orderCtrl.MarkAwaitingPreparation)
	router.POST("/api/orders/:order_id/in-preparation", orderCtrl.MarkInPreparation)
	router.POST("/api/orders/:order_id/ready-for-pickup", orderCtrl.MarkReadyForPickup)
	router.POST("/api/orders/:order_id/in-delivery", orderCtrl.MarkInDelivery)
	router.POST("/api/orders/:order_id/complete", orderCtrl.MarkComplete)
	router.POST("/api/orders/:order_id/cancel", orderCtrl.CancelOrder)
	return router
}

func submitOrder(t *testing.T, r *gin.Engine, host string, paymentMethodID *uint) *httptest.ResponseRecorder {
	payload := map[string]interface{}{
		"fulfillment_method": "takeaway",
		"order_details": []map[string]interface{}{
			{"product": "Frikandel", "quantity": 2, "price": 2.5},
		},
		"total": 5.0,
	}
	if paymentMethodID != nil {
		payload["payment_method_id"] = *paymentMethodID
	}
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/orders?host="+host, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func orderData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	data, ok := resp["data"].(map[string]interface{})
	assert.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

func TestCreateAndGetOrder(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)

	w := submitOrder(t, r, "shop-one", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	data := orderData(t, w)
	assert.Equal(t, models.StatusAwaitingPreparation, data["status"])
	orderID := int(data["id"].(float64))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+strconv.Itoa(orderID)+"?host=shop-one", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	data = orderData(t, w)
	assert.Equal(t, float64(orderID), data["id"])
	assert.NotEmpty(t, data["reference"])
}

func TestCreateOrderOnlinePaymentStartsPending(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)

	onlinePM := uint(2)
	w := submitOrder(t, r, "shop-one", &onlinePM)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, models.StatusPendingPayment, orderData(t, w)["status"])
}

func TestCreateOrderUnknownHost(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)

	w := submitOrder(t, r, "no-such-shop", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count, "failed submission must not persist an order")
}

func postTransition(r *gin.Engine, orderID int, target, host string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost,
		"/api/orders/"+strconv.Itoa(orderID)+"/"+target+"?host="+host, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTransitionFlowToComplete(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)

	w := submitOrder(t, r, "shop-one", nil)
	orderID := int(orderData(t, w)["id"].(float64))

	steps := []struct {
		endpoint string
		want     string
	}{
		{"in-preparation", models.StatusInPreparation},
		{"ready-for-pickup", models.StatusReadyForPickup},
		{"complete", models.StatusComplete},
	}

	for _, step := range steps {
		w := postTransition(r, orderID, step.endpoint, "shop-one")
		assert.Equal(t, http.StatusOK, w.Code, "transition to %s", step.want)
		assert.Equal(t, step.want, orderData(t, w)["status"])

		// A read after the transition observes the same status.
		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+strconv.Itoa(orderID)+"?host=shop-one", nil)
		rw := httptest.NewRecorder()
		r.ServeHTTP(rw, req)
		assert.Equal(t, step.want, orderData(t, rw)["status"])
	}
}

func TestIllegalTransitionRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)

	w := submitOrder(t, r, "shop-one", nil)
	orderID := int(orderData(t, w)["id"].(float64))

	// awaiting_preparation cannot jump straight to complete.
	w2 := postTransition(r, orderID, "complete", "shop-one")
	assert.Equal(t, http.StatusConflict, w2.Code)

	var order models.Order
	db.First(&order, orderID)
	assert.Equal(t, models.StatusAwaitingPreparation, order.Status, "status unchanged after rejected transition")

	// Terminal states stay terminal.
	postTransition(r, orderID, "in-preparation", "shop-one")
	postTransition(r, orderID, "ready-for-pickup", "shop-one")
	postTransition(r, orderID, "complete", "shop-one")
	w3 := postTransition(r, orderID, "in-preparation", "shop-one")
	assert.Equal(t, http.StatusConflict, w3.Code)
}

func TestConcurrentTransitionLosesCleanly(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)

	w := submitOrder(t, r, "shop-one", nil)
	orderID := int(orderData(t, w)["id"].(float64))

	// Simulate a writer that won the race after the handler's read: the
	// conditional update must then affect zero rows and surface a conflict.
	db.Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", models.StatusCancelled)

	w2 := postTransition(r, orderID, "in-preparation", "shop-one")
	assert.Equal(t, http.StatusConflict, w2.Code)

	var order models.Order
	db.First(&order, orderID)
	assert.Equal(t, models.StatusCancelled, order.Status)
}

func TestOwnershipCheckedOnReadAndWrite(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)

	w := submitOrder(t, r, "shop-one", nil)
	orderID := int(orderData(t, w)["id"].(float64))

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+strconv.Itoa(orderID)+"?host=shop-two", nil)
	rw := httptest.NewRecorder()
	r.ServeHTTP(rw, req)
	assert.Equal(t, http.StatusForbidden, rw.Code)

	w2 := postTransition(r, orderID, "in-preparation", "shop-two")
	assert.Equal(t, http.StatusForbidden, w2.Code)

	var order models.Order
	db.First(&order, orderID)
	assert.Equal(t, models.StatusAwaitingPreparation, order.Status)
}

func TestOrderListViews(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)

	statuses := []string{
		models.StatusAwaitingPreparation,
		models.StatusInPreparation,
		models.StatusComplete,
		models.StatusCancelled,
	}
	for i, status := range statuses {
		db.Create(&models.Order{
			Reference: "ref-" + strconv.Itoa(i),
			ShopID:    1,
			TenantID:  1,
			Status:    status,
		})
	}

	listStatuses := func(view string) []string {
		url := "/api/orders?host=shop-one"
		if view != "" {
			url += "&view=" + view
		}
		req := httptest.NewRequest(http.MethodGet, url, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []models.Order `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		out := make([]string, 0, len(resp.Data))
		for _, o := range resp.Data {
			out = append(out, o.Status)
		}
		return out
	}

	active := listStatuses("active")
	assert.Len(t, active, 2)
	assert.NotContains(t, active, models.StatusComplete)
	assert.NotContains(t, active, models.StatusCancelled)

	archived := listStatuses("archived")
	assert.Equal(t, []string{models.StatusComplete}, archived)

	defaultView := listStatuses("")
	assert.Len(t, defaultView, 3)
	assert.NotContains(t, defaultView, models.StatusCancelled)
}

// setupDeliveryTest gives shop one coordinates, a 5 km delivery radius and an
// enabled delivery method, and wires the order controller to a stub geocode
// provider answering with the given body.
func setupDeliveryTest(t *testing.T, geocodeStatus int, geocodeBody string) (*gin.Engine, *gorm.DB) {
	db := setupTestDBForOrders(t)
	db.Model(&models.Shop{}).Where("id = ?", 1).Updates(map[string]interface{}{
		"lat": 50.8467, "lng": 4.3525, "delivery_radius_km": 5.0,
	})
	db.Create(&models.FulfillmentMethod{ShopID: 1, Kind: models.FulfillmentDelivery, Enabled: true})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(geocodeStatus)
		fmt.Fprint(w, geocodeBody)
	}))
	t.Cleanup(srv.Close)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	geocoder := services.NewGeocodeService(&config.Config{GeocodeBaseURL: srv.URL})
	orderCtrl := controllers.NewOrderController(db, geocoder, nil)
	router.POST("/api/orders", orderCtrl.CreateOrder)
	return router, db
}

func submitDeliveryOrder(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	payload := map[string]interface{}{
		"fulfillment_method": "delivery",
		"delivery_address":   "Meir 1, Antwerp",
		"order_details": []map[string]interface{}{
			{"product": "Frikandel", "quantity": 1, "price": 2.5},
		},
		"total": 2.5,
	}
	body, err := json.Marshal(payload)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/orders?host=shop-one", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderDeliveryOutsideRadius(t *testing.T) {
	utils.InitLogger()
	// Antwerp is ~42 km from the shop, far past the 5 km radius.
	r, db := setupDeliveryTest(t, http.StatusOK, `{"results":[{"lat":51.2194,"lng":4.4025}]}`)

	w := submitDeliveryOrder(t, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count, "out-of-radius submission must not persist an order")
}

func TestCreateOrderDeliveryWithinRadius(t *testing.T) {
	utils.InitLogger()
	// An address a few hundred meters from the shop.
	r, _ := setupDeliveryTest(t, http.StatusOK, `{"results":[{"lat":50.8503,"lng":4.3517}]}`)

	w := submitDeliveryOrder(t, r)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateOrderGeocodeOutageDoesNotBlock(t *testing.T) {
	utils.InitLogger()
	r, db := setupDeliveryTest(t, http.StatusServiceUnavailable, `{"error":"down"}`)

	w := submitDeliveryOrder(t, r)
	assert.Equal(t, http.StatusCreated, w.Code, "geocoder outage must not block the order")

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMissingHostParameter(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)

	// httptest requests carry an example.com Host header, which resolves to
	// no shop; the fallback path still refuses to guess.
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
