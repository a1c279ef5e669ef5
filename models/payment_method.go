package models

import "time"

// Payment method providers
const (
	PaymentProviderCheckout = "checkout_provider"
	PaymentProviderCash     = "cash"
	PaymentProviderTerminal = "terminal"
)

type PaymentMethod struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ShopID    uint      `gorm:"not null;index" json:"shop_id"`
	Shop      Shop      `gorm:"foreignKey:ShopID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Provider  string    `gorm:"type:varchar(50);not null;default:'cash'" json:"provider"`
	// Online methods settle through the hosted checkout before the kitchen
	// ever sees the order.
	Online    bool      `gorm:"default:false" json:"online"`
	Enabled   bool      `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
