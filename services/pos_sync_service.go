package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/foodos-payload/frituurapp/config"
	"github.com/foodos-payload/frituurapp/models"
	"github.com/foodos-payload/frituurapp/utils"
)

// POSSyncService pulls categories, products and subproducts from a shop's
// point-of-sale provider and mirrors them into the local catalog. Rows are
// matched on the POS external id; anything the POS no longer returns is
// deactivated rather than deleted.
type POSSyncService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	db *gorm.DB
}

func NewPOSSyncService(db *gorm.DB, cfg *config.Config) *POSSyncService {
	return &POSSyncService{
		baseURL: cfg.POSBaseURL,
		apiKey:  cfg.POSAPIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		db: db,
	}
}

type posCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type posProduct struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type posSubproduct struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	PriceDelta float64 `json:"price_delta"`
}

// SyncResult summarises one sync run.
type SyncResult struct {
	Synced      int `json:"synced"`
	Deactivated int `json:"deactivated"`
}

// SyncCategories mirrors the POS category list into the shop's catalog.
func (p *POSSyncService) SyncCategories(shop *models.Shop) (*SyncResult, error) {
	var remote []posCategory
	if err := p.fetch(shop, "/categories", &remote); err != nil {
		return nil, err
	}

	result := &SyncResult{}
	seen := make(map[string]bool, len(remote))

	for _, rc := range remote {
		seen[rc.ID] = true

		var cat models.Category
		err := p.db.Where("shop_id = ? AND pos_id = ?", shop.ID, rc.ID).First(&cat).Error
		if err == gorm.ErrRecordNotFound {
			cat = models.Category{ShopID: shop.ID, POSID: rc.ID}
		} else if err != nil {
			return nil, err
		}

		cat.Name = rc.Name
		cat.SortOrder = rc.SortOrder
		cat.Active = true
		if err := p.db.Save(&cat).Error; err != nil {
			return nil, err
		}
		result.Synced++
	}

	result.Deactivated = p.deactivateMissing(&models.Category{}, shop.ID, seen)
	return result, nil
}

// SyncProducts mirrors the POS product list. Products whose category has not
// been synced yet are skipped and logged.
func (p *POSSyncService) SyncProducts(shop *models.Shop) (*SyncResult, error) {
	var remote []posProduct
	if err := p.fetch(shop, "/products", &remote); err != nil {
		return nil, err
	}

	result := &SyncResult{}
	seen := make(map[string]bool, len(remote))

	for _, rp := range remote {
		var cat models.Category
		if err := p.db.Where("shop_id = ? AND pos_id = ?", shop.ID, rp.CategoryID).First(&cat).Error; err != nil {
			utils.ErrorLogger.Errorf("pos sync: skipping product %q, unknown category %s", rp.Name, rp.CategoryID)
			continue
		}

		seen[rp.ID] = true

		var product models.Product
		err := p.db.Where("shop_id = ? AND pos_id = ?", shop.ID, rp.ID).First(&product).Error
		if err == gorm.ErrRecordNotFound {
			product = models.Product{ShopID: shop.ID, POSID: rp.ID}
		} else if err != nil {
			return nil, err
		}

		product.CategoryID = cat.ID
		product.Name = rp.Name
		product.Description = rp.Description
		product.Price = rp.Price
		product.Active = true
		if err := p.db.Save(&product).Error; err != nil {
			return nil, err
		}
		result.Synced++
	}

	result.Deactivated = p.deactivateMissing(&models.Product{}, shop.ID, seen)
	return result, nil
}

// SyncSubproducts mirrors the POS modifier/option list under synced products.
func (p *POSSyncService) SyncSubproducts(shop *models.Shop) (*SyncResult, error) {
	var remote []posSubproduct
	if err := p.fetch(shop, "/subproducts", &remote); err != nil {
		return nil, err
	}

	result := &SyncResult{}
	seen := make(map[string]bool, len(remote))

	for _, rs := range remote {
		var product models.Product
		if err := p.db.Where("shop_id = ? AND pos_id = ?", shop.ID, rs.ProductID).First(&product).Error; err != nil {
			utils.ErrorLogger.Errorf("pos sync: skipping subproduct %q, unknown product %s", rs.Name, rs.ProductID)
			continue
		}

		seen[rs.ID] = true

		var sub models.Subproduct
		err := p.db.Where("product_id = ? AND pos_id = ?", product.ID, rs.ID).First(&sub).Error
		if err == gorm.ErrRecordNotFound {
			sub = models.Subproduct{ProductID: product.ID, POSID: rs.ID}
		} else if err != nil {
			return nil, err
		}

		sub.Name = rs.Name
		sub.PriceDelta = rs.PriceDelta
		sub.Active = true
		if err := p.db.Save(&sub).Error; err != nil {
			return nil, err
		}
		result.Synced++
	}

	result.Deactivated = p.deactivateMissingSubproducts(shop.ID, seen)
	return result, nil
}

// deactivateMissingSubproducts mirrors deactivateMissing for subproducts,
// which hang off products rather than carrying a shop id themselves.
func (p *POSSyncService) deactivateMissingSubproducts(shopID uint, seen map[string]bool) int {
	keep := make([]string, 0, len(seen))
	for id := range seen {
		keep = append(keep, id)
	}

	productIDs := p.db.Model(&models.Product{}).Select("id").Where("shop_id = ?", shopID)
	q := p.db.Model(&models.Subproduct{}).
		Where("product_id IN (?)", productIDs).
		Where("active = ? AND pos_id <> ''", true)
	if len(keep) > 0 {
		q = q.Where("pos_id NOT IN ?", keep)
	}

	res := q.Update("active", false)
	if res.Error != nil {
		utils.ErrorLogger.Errorf("pos sync: subproduct deactivation failed: %v", res.Error)
		return 0
	}
	return int(res.RowsAffected)
}

func (p *POSSyncService) deactivateMissing(model interface{}, shopID uint, seen map[string]bool) int {
	keep := make([]string, 0, len(seen))
	for id := range seen {
		keep = append(keep, id)
	}

	q := p.db.Model(model).Where("shop_id = ? AND active = ? AND pos_id <> ''", shopID, true)
	if len(keep) > 0 {
		q = q.Where("pos_id NOT IN ?", keep)
	}

	res := q.Update("active", false)
	if res.Error != nil {
		utils.ErrorLogger.Errorf("pos sync: deactivation failed: %v", res.Error)
		return 0
	}
	return int(res.RowsAffected)
}

func (p *POSSyncService) fetch(shop *models.Shop, path string, out interface{}) error {
	if shop.POSProvider == "" {
		return fmt.Errorf("shop %s has no POS provider configured", shop.Slug)
	}

	endpoint := fmt.Sprintf("%s/%s/v1/shops/%s%s", p.baseURL, shop.POSProvider, shop.Slug, path)
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pos request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pos provider returned %d: %s", resp.StatusCode, string(raw))
	}

	return json.Unmarshal(raw, out)
}
