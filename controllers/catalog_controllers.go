package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/utils"
)

// CatalogController covers the dashboard side of categories, products and
// subproducts. The storefront reads live in ShopController.
type CatalogController struct {
	DB *gorm.DB
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// CreateCategory
func (cc *CatalogController) CreateCategory(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	type reqBody struct {
		Name      string `json:"name" binding:"required"`
		SortOrder int    `json:"sort_order"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.Category{
		ShopID:    shop.ID,
		Name:      req.Name,
		SortOrder: req.SortOrder,
		Active:    true,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, category)
}

// UpdateCategory
func (cc *CatalogController) UpdateCategory(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("category_id"))
	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if category.ShopID != shop.ID {
		utils.RespondError(c, http.StatusForbidden, ErrShopMismatch)
		return
	}

	type reqBody struct {
		Name      *string `json:"name"`
		SortOrder *int    `json:"sort_order"`
		Active    *bool   `json:"active"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, category)
}

// CreateProduct
func (cc *CatalogController) CreateProduct(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	type reqBody struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
		ImageURL    string  `json:"image_url"`
		Stock       *int    `json:"stock"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := cc.DB.Where("id = ? AND shop_id = ?", req.CategoryID, shop.ID).First(&category).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	product := models.Product{
		ShopID:      shop.ID,
		CategoryID:  category.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		Active:      true,
	}
	if err := cc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, product)
}

// UpdateProduct
func (cc *CatalogController) UpdateProduct(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("product_id"))
	var product models.Product
	if err := cc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if product.ShopID != shop.ID {
		utils.RespondError(c, http.StatusForbidden, ErrShopMismatch)
		return
	}

	type reqBody struct {
		CategoryID  *uint    `json:"category_id"`
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		ImageURL    *string  `json:"image_url"`
		Stock       *int     `json:"stock"`
		Active      *bool    `json:"active"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Stock != nil {
		product.Stock = req.Stock
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := cc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, product)
}

// CreateSubproduct
func (cc *CatalogController) CreateSubproduct(c *gin.Context) {
	shop, ok := resolveShop(c, cc.DB)
	if !ok {
		return
	}

	type reqBody struct {
		ProductID  uint    `json:"product_id" binding:"required"`
		Name       string  `json:"name" binding:"required"`
		PriceDelta float64 `json:"price_delta"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := cc.DB.Where("id = ? AND shop_id = ?", req.ProductID, shop.ID).First(&product).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	sub := models.Subproduct{
		ProductID:  product.ID,
		Name:       req.Name,
		PriceDelta: req.PriceDelta,
		Active:     true,
	}
	if err := cc.DB.Create(&sub).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, sub)
}
