package models

import (
	"time"

	"gorm.io/datatypes"
)

// Shop is a single storefront/location. Its slug doubles as the host key the
// storefront, kiosk and kitchen clients route with.
type Shop struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	TenantID         uint           `gorm:"not null;index" json:"tenant_id"`
	Tenant           Tenant         `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"tenant,omitempty"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug             string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Branding         datatypes.JSON `gorm:"type:json" json:"branding"`
	Address          string         `gorm:"type:varchar(255)" json:"address"`
	Lat              float64        `json:"lat"`
	Lng              float64        `json:"lng"`
	DeliveryRadiusKm float64        `gorm:"type:decimal(6,2);default:0" json:"delivery_radius_km"`
	Timezone         string         `gorm:"type:varchar(64);default:'Europe/Brussels'" json:"timezone"`
	KioskIdleTimeout int            `gorm:"default:60" json:"kiosk_idle_timeout"`
	POSProvider      string         `gorm:"type:varchar(50)" json:"pos_provider"`
	Active           bool           `gorm:"default:true" json:"active"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}
