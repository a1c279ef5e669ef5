package models

import "time"

// Subproduct is a selectable option under a product (sauce, size, extra),
// priced as a delta on top of the product price.
type Subproduct struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Product    Product   `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	PriceDelta float64   `gorm:"type:decimal(10,2);default:0" json:"price_delta"`
	POSID      string    `gorm:"type:varchar(100);index" json:"pos_id"`
	Active     bool      `gorm:"default:true" json:"active"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
