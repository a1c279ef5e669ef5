package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
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

// Checkout session statuses as reported by the provider.
const (
	SessionStatusOpen    = "open"
	SessionStatusPaid    = "paid"
	SessionStatusExpired = "expired"
	SessionStatusFailed  = "failed"
)

// CheckoutService talks to the hosted checkout/billing provider. Sessions are
// created per order; the provider redirects the customer to its own payment
// page and reports the outcome through the webhook.
type CheckoutService struct {
	apiKey        string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client

	db *gorm.DB
}

func NewCheckoutService(db *gorm.DB, cfg *config.Config) *CheckoutService {
	return &CheckoutService{
		apiKey:        cfg.CheckoutAPIKey,
		webhookSecret: cfg.CheckoutWebhookSecret,
		baseURL:       cfg.CheckoutBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		db: db,
	}
}

// CheckoutSession is the provider's session representation.
type CheckoutSession struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	CheckoutURL string  `json:"checkout_url"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Reference   string  `json:"reference"`
	ExpiresAt   string  `json:"expires_at"`
}

// CreateSession registers a checkout session for an order and returns the
// hosted payment page URL.
func (s *CheckoutService) CreateSession(order *models.Order, returnURL string) (*CheckoutSession, error) {
	payload := map[string]interface{}{
		"amount":     order.Total,
		"currency":   "EUR",
		"reference":  order.Reference,
		"return_url": returnURL,
	}

	var session CheckoutSession
	if err := s.call(http.MethodPost, "/v1/checkout/sessions", payload, &session); err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return &session, nil
}

// GetSession retrieves a session by its provider ID.
func (s *CheckoutService) GetSession(sessionID string) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := s.call(http.MethodGet, "/v1/checkout/sessions/"+sessionID, nil, &session); err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}
	return &session, nil
}

// CreatePortal returns a billing-portal URL where a tenant manages its
// subscription with the provider.
func (s *CheckoutService) CreatePortal(billingCustomerID, returnURL string) (string, error) {
	payload := map[string]interface{}{
		"customer":   billingCustomerID,
		"return_url": returnURL,
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := s.call(http.MethodPost, "/v1/billing/portal", payload, &out); err != nil {
		return "", fmt.Errorf("failed to create billing portal: %w", err)
	}
	return out.URL, nil
}

// VerifySignature checks the webhook signature: hex(HMAC-SHA512(body, secret)).
func (s *CheckoutService) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(s.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// StartExpirySweeper cancels pending_payment orders whose checkout session
// never settled. Runs until the process exits.
func (s *CheckoutService) StartExpirySweeper(interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			s.sweepExpired(maxAge)
		}
	}()
}

func (s *CheckoutService) sweepExpired(maxAge time.Duration) {
	cutoff := time.Now().Add(-maxAge)

	var stale []models.Order
	if err := s.db.Where("status = ? AND created_at < ?", models.StatusPendingPayment, cutoff).
		Find(&stale).Error; err != nil {
		utils.ErrorLogger.Errorf("checkout sweeper: query failed: %v", err)
		return
	}

	for _, order := range stale {
		// Same guarded transition as the HTTP handlers; a concurrent webhook
		// promoting the order simply wins.
		res := s.db.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.StatusPendingPayment).
			Updates(map[string]interface{}{"status": models.StatusCancelled, "updated_at": time.Now()})
		if res.Error != nil {
			utils.ErrorLogger.Errorf("checkout sweeper: cancel of order %s failed: %v", order.Reference, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			utils.InfoLogger.Printf("checkout sweeper: cancelled unpaid order %s", order.Reference)
		}
	}
}

func (s *CheckoutService) call(method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("checkout provider returned %d: %s", resp.StatusCode, string(raw))
	}

	return json.Unmarshal(raw, out)
}
