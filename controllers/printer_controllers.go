package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/utils"
)

type PrinterController struct {
	DB *gorm.DB
}

func NewPrinterController(db *gorm.DB) *PrinterController {
	return &PrinterController{DB: db}
}

// CreatePrinter
func (pc *PrinterController) CreatePrinter(c *gin.Context) {
	shop, ok := resolveShop(c, pc.DB)
	if !ok {
		return
	}

	type reqBody struct {
		Name        string `json:"name" binding:"required"`
		Serial      string `json:"serial"`
		EndpointURL string `json:"endpoint_url"`
		TicketKinds string `json:"ticket_kinds"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TicketKinds == "" {
		req.TicketKinds = "kitchen"
	}

	printer := models.Printer{
		ShopID:      shop.ID,
		Name:        req.Name,
		Serial:      req.Serial,
		EndpointURL: req.EndpointURL,
		TicketKinds: req.TicketKinds,
	}
	if err := pc.DB.Create(&printer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusCreated, printer)
}

// UpdatePrinter
func (pc *PrinterController) UpdatePrinter(c *gin.Context) {
	shop, ok := resolveShop(c, pc.DB)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("printer_id"))
	var printer models.Printer
	if err := pc.DB.First(&printer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if printer.ShopID != shop.ID {
		utils.RespondError(c, http.StatusForbidden, ErrShopMismatch)
		return
	}

	type reqBody struct {
		Name        *string `json:"name"`
		Serial      *string `json:"serial"`
		EndpointURL *string `json:"endpoint_url"`
		TicketKinds *string `json:"ticket_kinds"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		printer.Name = *req.Name
	}
	if req.Serial != nil {
		printer.Serial = *req.Serial
	}
	if req.EndpointURL != nil {
		printer.EndpointURL = *req.EndpointURL
	}
	if req.TicketKinds != nil {
		printer.TicketKinds = *req.TicketKinds
	}
	// Hand-edited printers are no longer considered auto-provisioned.
	printer.AutoProvisioned = false

	if err := pc.DB.Save(&printer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, printer)
}

// DeletePrinter
func (pc *PrinterController) DeletePrinter(c *gin.Context) {
	shop, ok := resolveShop(c, pc.DB)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("printer_id"))
	var printer models.Printer
	if err := pc.DB.First(&printer, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if printer.ShopID != shop.ID {
		utils.RespondError(c, http.StatusForbidden, ErrShopMismatch)
		return
	}

	if err := pc.DB.Delete(&printer).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, gin.H{"printer_id": id})
}
