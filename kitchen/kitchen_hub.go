package kitchen

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/utils"
)

// Event types
const (
	EventOrderCreated = "order_created"
	EventOrderStatus  = "order_status"
	EventShopUpdate   = "shop_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected kitchen screen, keyed by the shop slug the
// screen registered with. Broadcasts only reach screens of the same shop.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> shop slug
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a kitchen screen connection for a shop.
func RegisterClient(conn *websocket.Conn, shopSlug string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = shopSlug
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderCreated pushes a freshly submitted order to the shop's screens.
func BroadcastOrderCreated(shopSlug string, order models.Order) {
	broadcast(shopSlug, Message{Event: EventOrderCreated, Data: order})
}

// BroadcastOrderStatus pushes a status change to the shop's screens.
func BroadcastOrderStatus(shopSlug string, order models.Order) {
	broadcast(shopSlug, Message{Event: EventOrderStatus, Data: order})
}

// BroadcastShopUpdate pushes branding/config changes to the shop's screens.
func BroadcastShopUpdate(shopSlug string, shop models.Shop) {
	broadcast(shopSlug, Message{Event: EventShopUpdate, Data: shop})
}

func broadcast(shopSlug string, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("kitchen hub: marshal failed: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn, slug := range hub.clients {
		if slug != shopSlug {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Errorf("kitchen hub: write failed, dropping client: %v", err)
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
