package models

import "time"

type Product struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ShopID      uint         `gorm:"not null;index" json:"shop_id"`
	Shop        Shop         `gorm:"foreignKey:ShopID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CategoryID  uint         `gorm:"not null;index" json:"category_id"`
	Category    Category     `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category,omitempty"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string       `gorm:"type:varchar(255)" json:"image_url"`
	POSID       string       `gorm:"type:varchar(100);index" json:"pos_id"`
	// Stock is nil for products whose stock the shop does not track.
	Stock       *int         `json:"stock,omitempty"`
	Active      bool         `gorm:"default:true" json:"active"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
	Subproducts []Subproduct `gorm:"foreignKey:ProductID" json:"subproducts,omitempty"`
}
