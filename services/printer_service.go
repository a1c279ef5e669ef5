package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/utils"
)

// PrinterService pushes kitchen tickets to a shop's networked printers and
// auto-provisions a default printer record when a shop has none. Both are
// side paths: failures are logged and never fail the request that
// triggered them.
type PrinterService struct {
	httpClient *http.Client
	db         *gorm.DB
}

func NewPrinterService(db *gorm.DB) *PrinterService {
	return &PrinterService{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		db: db,
	}
}

// EnsureDefaultPrinter creates a placeholder kitchen printer for shops that
// have none yet, so the dashboard always has a row to configure.
func (p *PrinterService) EnsureDefaultPrinter(shop *models.Shop) {
	var count int64
	if err := p.db.Model(&models.Printer{}).Where("shop_id = ?", shop.ID).Count(&count).Error; err != nil {
		utils.ErrorLogger.Errorf("printer provisioning: count failed for shop %s: %v", shop.Slug, err)
		return
	}
	if count > 0 {
		return
	}

	printer := models.Printer{
		ShopID:          shop.ID,
		Name:            fmt.Sprintf("%s kitchen", shop.Name),
		TicketKinds:     "kitchen",
		AutoProvisioned: true,
	}
	if err := p.db.Create(&printer).Error; err != nil {
		utils.ErrorLogger.Errorf("printer provisioning: create failed for shop %s: %v", shop.Slug, err)
		return
	}
	utils.InfoLogger.Printf("printer provisioning: created default printer for shop %s", shop.Slug)
}

// PrintKitchenTicket pushes the order to every configured kitchen printer of
// the shop. Printers without an endpoint URL are skipped.
func (p *PrinterService) PrintKitchenTicket(shop *models.Shop, order *models.Order) {
	var printers []models.Printer
	if err := p.db.Where("shop_id = ? AND ticket_kinds LIKE ?", shop.ID, "%kitchen%").Find(&printers).Error; err != nil {
		utils.ErrorLogger.Errorf("printer: lookup failed for shop %s: %v", shop.Slug, err)
		return
	}

	ticket := map[string]interface{}{
		"reference":          order.Reference,
		"fulfillment_method": order.FulfillmentMethod,
		"fulfillment_date":   order.FulfillmentDate,
		"fulfillment_time":   order.FulfillmentTime,
		"order_details":      order.OrderDetails,
		"total":              order.Total,
	}
	payload, err := json.Marshal(ticket)
	if err != nil {
		utils.ErrorLogger.Errorf("printer: ticket marshal failed: %v", err)
		return
	}

	for _, printer := range printers {
		if printer.EndpointURL == "" {
			continue
		}
		resp, err := p.httpClient.Post(printer.EndpointURL, "application/json", bytes.NewReader(payload))
		if err != nil {
			utils.ErrorLogger.Errorf("printer %s: push failed: %v", printer.Name, err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			utils.ErrorLogger.Errorf("printer %s: endpoint returned %d", printer.Name, resp.StatusCode)
			continue
		}
		utils.InfoLogger.Printf("printer %s: ticket for order %s queued", printer.Name, order.Reference)
	}
}
