package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/utils"
)

var (
	ErrShopMismatch   = errors.New("order does not belong to this shop")
	ErrMissingHost    = errors.New("host parameter is required")
	ErrMissingAddress = errors.New("address parameter is required")
)

// resolveShop maps a request to its shop: the `host` query parameter is the
// shop slug, with the Host header (minus port) as fallback. The tenant is
// preloaded since most callers derive it from the shop. On failure the
// response has already been written and ok is false.
func resolveShop(c *gin.Context, db *gorm.DB) (*models.Shop, bool) {
	host := c.Query("host")
	if host == "" {
		host = c.Request.Host
		if idx := strings.IndexByte(host, ':'); idx >= 0 {
			host = host[:idx]
		}
	}
	if host == "" {
		utils.RespondError(c, http.StatusBadRequest, ErrMissingHost)
		return nil, false
	}

	var shop models.Shop
	if err := db.Preload("Tenant").Where("slug = ? AND active = ?", host, true).First(&shop).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("no shop found for host "+host))
		return nil, false
	}

	return &shop, true
}
