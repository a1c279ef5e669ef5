package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/utils"
)

type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> the tenant's linked customers (anonymous web orders
// have no customer record and are not listed here).
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	var customers []models.Customer
	if err := cc.DB.Where("tenant_id = ?", shop.TenantID).Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, customers)
}

// CreateCustomer
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	type reqBody struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer := models.Customer{
		TenantID: shop.TenantID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := cc.DB.Create(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, customer)
}

// GetCustomerByID
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("customer_id"))
	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if customer.TenantID != shop.TenantID {
		utils.RespondError(c, http.StatusForbidden, ErrShopMismatch)
		return
	}

	utils.RespondData(c, http.StatusOK, customer)
}

// AdjustLoyaltyCredits -> add or subtract loyalty credits; the balance
// never goes below zero.
func (cc *CustomerController) AdjustLoyaltyCredits(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("customer_id"))
	var customer models.Customer
	if err := cc.DB.First(&customer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if customer.TenantID != shop.TenantID {
		utils.RespondError(c, http.StatusForbidden, ErrShopMismatch)
		return
	}

	type reqBody struct {
		Delta float64 `json:"delta" binding:"required"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if customer.LoyaltyCredits+req.Delta < 0 {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("insufficient loyalty credits: balance %.2f, delta %.2f",
				customer.LoyaltyCredits, req.Delta))
		return
	}

	customer.LoyaltyCredits += req.Delta
	if err := cc.DB.Save(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, customer)
}
