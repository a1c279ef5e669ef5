package models

import "time"

// Fulfillment kinds
const (
	FulfillmentDineIn   = "dine_in"
	FulfillmentTakeaway = "takeaway"
	FulfillmentDelivery = "delivery"
)

type FulfillmentMethod struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ShopID         uint      `gorm:"not null;index" json:"shop_id"`
	Shop           Shop      `gorm:"foreignKey:ShopID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Kind           string    `gorm:"type:varchar(20);not null" json:"kind"`
	Enabled        bool      `gorm:"default:true" json:"enabled"`
	MinimumAmount  float64   `gorm:"type:decimal(10,2);default:0" json:"minimum_amount"`
	Surcharge      float64   `gorm:"type:decimal(10,2);default:0" json:"surcharge"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
