package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/kitchen"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// KitchenScreenHandler -> websocket endpoint for a shop's kitchen screens.
// The connection is registered under the resolved shop slug and only
// receives events for that shop.
func KitchenScreenHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := resolveShop(c, db)
		if !ok {
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		kitchen.RegisterClient(ws, shop.Slug)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		kitchen.UnregisterClient(ws)
	}
}
