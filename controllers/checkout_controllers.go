package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/kitchen"
	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/services"
	"github.com/foodos-payload/frituurapp/utils"
)

type CheckoutController struct {
	DB       *gorm.DB
	Checkout *services.CheckoutService
}

func NewCheckoutController(db *gorm.DB, checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{DB: db, Checkout: checkout}
}

// CreateSession -> open a hosted checkout session for a pending_payment order.
func (cc *CheckoutController) CreateSession(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	type ReqBody struct {
		OrderID   uint   `json:"order_id" binding:"required"`
		ReturnURL string `json:"return_url"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := cc.DB.First(&order, body.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if order.ShopID != shop.ID {
		utils.RespondError(c, http.StatusForbidden, ErrShopMismatch)
		return
	}
	if order.Status != models.StatusPendingPayment {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("order %s is %s, not pending payment", order.Reference, order.Status))
		return
	}

	session, err := cc.Checkout.CreateSession(&order, body.ReturnURL)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := cc.DB.Model(&order).Update("checkout_session_id", session.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, session)
}

// GetSession -> current provider-side state of a session.
func (cc *CheckoutController) GetSession(c *gin.Context) {
	if _, ok := resolveShop(c, cc.DB); !ok {
		return
	}

	session, err := cc.Checkout.GetSession(c.Param("session_id"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, session)
}

// CreatePortal -> billing portal URL for a tenant's subscription.
func (cc *CheckoutController) CreatePortal(c *gin.Context) {
	type ReqBody struct {
		TenantID  uint   `json:"tenant_id" binding:"required"`
		ReturnURL string `json:"return_url"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var tenant models.Tenant
	if err := cc.DB.First(&tenant, body.TenantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if tenant.BillingCustomerID == "" {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("tenant has no billing customer configured"))
		return
	}

	url, err := cc.Checkout.CreatePortal(tenant.BillingCustomerID, body.ReturnURL)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{"url": url})
}

// HandleWebhook -> signature-verified provider callback. A paid session
// promotes its order from pending_payment to awaiting_preparation through
// the same guarded update the transition endpoints use; expired and failed
// sessions cancel the order.
func (cc *CheckoutController) HandleWebhook(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	signature := c.GetHeader("X-Checkout-Signature")
	if !cc.Checkout.VerifySignature(raw, signature) {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid webhook signature"))
		return
	}

	type Event struct {
		SessionID string `json:"session_id"`
		Reference string `json:"reference"`
		Status    string `json:"status"`
	}
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// An empty identifier would match every order whose session id is still
	// the zero value, so only identifiers the event actually carries may
	// enter the lookup.
	if event.SessionID == "" && event.Reference == "" {
		utils.RespondError(c, http.StatusBadRequest,
			errors.New("webhook event carries neither session id nor reference"))
		return
	}

	query := cc.DB
	switch {
	case event.SessionID != "" && event.Reference != "":
		query = query.Where("checkout_session_id = ? OR reference = ?", event.SessionID, event.Reference)
	case event.SessionID != "":
		query = query.Where("checkout_session_id = ?", event.SessionID)
	default:
		query = query.Where("reference = ?", event.Reference)
	}

	var order models.Order
	if err := query.First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var target string
	switch event.Status {
	case services.SessionStatusPaid:
		target = models.StatusAwaitingPreparation
	case services.SessionStatusExpired, services.SessionStatusFailed:
		target = models.StatusCancelled
	default:
		// Open sessions carry no transition; acknowledge and move on.
		utils.RespondData(c, http.StatusOK, gin.H{"received": true})
		return
	}

	if !models.CanTransition(order.Status, target) {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("order %s cannot move from %s to %s", order.Reference, order.Status, target))
		return
	}

	res := cc.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(map[string]interface{}{"status": target, "updated_at": time.Now()})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusConflict,
			fmt.Errorf("order %s was updated concurrently", order.Reference))
		return
	}

	if target == models.StatusAwaitingPreparation {
		var shop models.Shop
		if err := cc.DB.First(&shop, order.ShopID).Error; err == nil {
			order.Status = target
			kitchen.BroadcastOrderCreated(shop.Slug, order)
		}
	}

	utils.RespondData(c, http.StatusOK, gin.H{"received": true})
}
