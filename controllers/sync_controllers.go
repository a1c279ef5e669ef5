package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/services"
	"github.com/foodos-payload/frituurapp/utils"
)

type SyncController struct {
	DB   *gorm.DB
	Sync *services.POSSyncService
}

func NewSyncController(db *gorm.DB, sync *services.POSSyncService) *SyncController {
	return &SyncController{DB: db, Sync: sync}
}

// SyncCategories -> pull the POS category list into the shop's catalog.
func (sc *SyncController) SyncCategories(c *gin.Context) {
	shop, ok := resolveShop(c, sc.DB)
	if !ok {
		return
	}

	result, err := sc.Sync.SyncCategories(shop)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, result)
}

// SyncProducts -> pull the POS product list.
func (sc *SyncController) SyncProducts(c *gin.Context) {
	shop, ok := resolveShop(c, sc.DB)
	if !ok {
		return
	}

	result, err := sc.Sync.SyncProducts(shop)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, result)
}

// SyncSubproducts -> pull the POS modifier/option list.
func (sc *SyncController) SyncSubproducts(c *gin.Context) {
	shop, ok := resolveShop(c, sc.DB)
	if !ok {
		return
	}

	result, err := sc.Sync.SyncSubproducts(shop)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondData(c, http.StatusOK, result)
}
