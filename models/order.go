package models

import (
	"time"

	"gorm.io/datatypes"
)

// Order belongs to one shop and, transitively, one tenant. Line items,
// payments and customer details are stored as the client submitted them;
// the server never recomputes prices or totals.
type Order struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Reference         string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"`
	ShopID            uint           `gorm:"not null;index" json:"shop_id"`
	Shop              Shop           `gorm:"foreignKey:ShopID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	TenantID          uint           `gorm:"not null;index" json:"tenant_id"`
	Status            string         `gorm:"type:varchar(30);not null;default:'pending_payment';index" json:"status"`
	FulfillmentMethod string         `gorm:"type:varchar(20);not null" json:"fulfillment_method"`
	FulfillmentDate   string         `gorm:"type:varchar(10)" json:"fulfillment_date"`
	FulfillmentTime   string         `gorm:"type:varchar(5)" json:"fulfillment_time"`
	OrderDetails      datatypes.JSON `gorm:"type:json" json:"order_details"`
	Payments          datatypes.JSON `gorm:"type:json" json:"payments"`
	CustomerDetails   datatypes.JSON `gorm:"type:json" json:"customer_details"`
	CustomerID        *uint          `gorm:"index" json:"customer_id,omitempty"`
	Customer          *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Total             float64        `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	CheckoutSessionID string         `gorm:"type:varchar(100);index" json:"checkout_session_id,omitempty"`
	PreparationAt     *time.Time     `json:"preparation_at,omitempty"`
	ReadyAt           *time.Time     `json:"ready_at,omitempty"`
	CompletedAt       *time.Time     `json:"completed_at,omitempty"`
	CreatedAt         time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
}
