package models

import "time"

type Printer struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ShopID          uint      `gorm:"not null;index" json:"shop_id"`
	Shop            Shop      `gorm:"foreignKey:ShopID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Serial          string    `gorm:"type:varchar(100);index" json:"serial"`
	EndpointURL     string    `gorm:"type:varchar(255)" json:"endpoint_url"`
	TicketKinds     string    `gorm:"type:varchar(100);default:'kitchen'" json:"ticket_kinds"`
	AutoProvisioned bool      `gorm:"default:false" json:"auto_provisioned"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
