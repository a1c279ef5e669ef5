package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tenant is the top-level billing/organizational owner of one or more shops.
type Tenant struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug              string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Domains           datatypes.JSON `gorm:"type:json" json:"domains"`
	BillingCustomerID string         `gorm:"type:varchar(100)" json:"billing_customer_id"`
	Active            bool           `gorm:"default:true" json:"active"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
	Shops             []Shop         `gorm:"foreignKey:TenantID" json:"shops,omitempty"`
}
