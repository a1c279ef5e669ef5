package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/kitchen"
	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/services"
	"github.com/foodos-payload/frituurapp/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Geocoder *services.GeocodeService
	Printers *services.PrinterService
}

func NewOrderController(db *gorm.DB, geocoder *services.GeocodeService, printers *services.PrinterService) *OrderController {
	return &OrderController{DB: db, Geocoder: geocoder, Printers: printers}
}

// CreateOrder -> submit a cart for the resolved shop. Line items, payments
// and totals are persisted as submitted; the server does not recompute them.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	shop, ok := resolveShop(c, oc.DB)
	if !ok {
		return
	}

	type ReqBody struct {
		FulfillmentMethod string          `json:"fulfillment_method" binding:"required"`
		FulfillmentDate   string          `json:"fulfillment_date"`
		FulfillmentTime   string          `json:"fulfillment_time"`
		OrderDetails      json.RawMessage `json:"order_details" binding:"required"`
		CustomerDetails   json.RawMessage `json:"customer_details"`
		Payments          json.RawMessage `json:"payments"`
		PaymentMethodID   *uint           `json:"payment_method_id"`
		CustomerID        *uint           `json:"customer_id"`
		DeliveryAddress   string          `json:"delivery_address"`
		Total             float64         `json:"total"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var fulfillment models.FulfillmentMethod
	if err := oc.DB.Where("shop_id = ? AND kind = ? AND enabled = ?",
		shop.ID, body.FulfillmentMethod, true).First(&fulfillment).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("fulfillment method %q is not available at this shop", body.FulfillmentMethod))
		return
	}

	// Online payment methods park the order in pending_payment until the
	// checkout webhook settles it.
	status := models.StatusAwaitingPreparation
	if body.PaymentMethodID != nil {
		var pm models.PaymentMethod
		if err := oc.DB.Where("id = ? AND shop_id = ? AND enabled = ?",
			*body.PaymentMethodID, shop.ID, true).First(&pm).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown payment method"))
			return
		}
		if pm.Online {
			status = models.StatusPendingPayment
		}
	}

	if body.FulfillmentMethod == models.FulfillmentDelivery && body.DeliveryAddress != "" && oc.Geocoder != nil {
		result, err := oc.Geocoder.DistanceFrom(shop.Lat, shop.Lng, body.DeliveryAddress)
		if err != nil {
			// Geocoding is best-effort: a provider outage must not block orders.
			utils.ErrorLogger.Errorf("order submit: geocode failed for shop %s: %v", shop.Slug, err)
		} else if shop.DeliveryRadiusKm > 0 && result.DistanceKm > shop.DeliveryRadiusKm {
			utils.RespondError(c, http.StatusBadRequest,
				fmt.Errorf("delivery address is %.1f km away, outside the %.1f km delivery radius",
					result.DistanceKm, shop.DeliveryRadiusKm))
			return
		}
	}

	order := models.Order{
		Reference:         uuid.NewString(),
		ShopID:            shop.ID,
		TenantID:          shop.TenantID,
		Status:            status,
		FulfillmentMethod: body.FulfillmentMethod,
		FulfillmentDate:   body.FulfillmentDate,
		FulfillmentTime:   body.FulfillmentTime,
		OrderDetails:      datatypes.JSON(body.OrderDetails),
		CustomerDetails:   datatypes.JSON(body.CustomerDetails),
		Payments:          datatypes.JSON(body.Payments),
		CustomerID:        body.CustomerID,
		Total:             body.Total,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kitchen.BroadcastOrderCreated(shop.Slug, order)

	utils.RespondData(c, http.StatusCreated, order)
}

// GetOrderByID -> single order, 403 when it belongs to another shop.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	shop, ok := resolveShop(c, oc.DB)
	if !ok {
		return
	}

	order, ok := oc.loadOwnedOrder(c, shop)
	if !ok {
		return
	}

	utils.RespondData(c, http.StatusOK, order)
}

// GetOrders -> shop-scoped, reverse-chronological list. The view parameter
// picks the status filter: active, archived, or the default set.
func (oc *OrderController) GetOrders(c *gin.Context) {
	shop, ok := resolveShop(c, oc.DB)
	if !ok {
		return
	}

	var statuses []string
	switch c.Query("view") {
	case "active":
		statuses = models.ActiveStatuses
	case "archived":
		statuses = models.ArchivedStatuses
	default:
		statuses = models.DefaultViewStatuses
	}

	var orders []models.Order
	if err := oc.DB.Where("shop_id = ? AND status IN ?", shop.ID, statuses).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, orders)
}

/*
========================================
 STATUS TRANSITIONS
========================================
*/

func (oc *OrderController) MarkAwaitingPreparation(c *gin.Context) {
	oc.transition(c, models.StatusAwaitingPreparation)
}

func (oc *OrderController) MarkInPreparation(c *gin.Context) {
	oc.transition(c, models.StatusInPreparation)
}

func (oc *OrderController) MarkReadyForPickup(c *gin.Context) {
	oc.transition(c, models.StatusReadyForPickup)
}

func (oc *OrderController) MarkInDelivery(c *gin.Context) {
	oc.transition(c, models.StatusInDelivery)
}

func (oc *OrderController) MarkComplete(c *gin.Context) {
	oc.transition(c, models.StatusComplete)
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	oc.transition(c, models.StatusCancelled)
}

// transition moves an order to target through the allowed-transition table.
// The update is conditional on the status the order was read with, so of two
// concurrent writers exactly one succeeds and the other gets a 409.
func (oc *OrderController) transition(c *gin.Context, target string) {
	shop, ok := resolveShop(c, oc.DB)
	if !ok {
		return
	}

	order, ok := oc.loadOwnedOrder(c, shop)
	if !ok {
		return
	}

	if !models.CanTransition(order.Status, target) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("order %s cannot move from %s to %s", order.Reference, order.Status, target))
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	switch target {
	case models.StatusInPreparation:
		updates["preparation_at"] = now
	case models.StatusReadyForPickup, models.StatusInDelivery:
		updates["ready_at"] = now
	case models.StatusComplete:
		updates["completed_at"] = now
	}

	res := oc.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(updates)
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("order %s was updated concurrently, transition to %s lost", order.Reference, target))
		return
	}

	if err := oc.DB.First(order, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if target == models.StatusInPreparation && oc.Printers != nil {
		oc.Printers.PrintKitchenTicket(shop, order)
	}
	kitchen.BroadcastOrderStatus(shop.Slug, *order)

	utils.RespondData(c, http.StatusOK, order)
}

// loadOwnedOrder fetches the order from the path parameter and verifies it
// belongs to the resolved shop. The ownership check applies to reads and
// writes alike.
func (oc *OrderController) loadOwnedOrder(c *gin.Context, shop *models.Shop) (*models.Order, bool) {
	idStr := c.Param("order_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid order id %q", idStr))
		return nil, false
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil, false
	}

	if order.ShopID != shop.ID {
		utils.RespondError(c, http.StatusForbidden, ErrShopMismatch)
		return nil, false
	}

	return &order, true
}
