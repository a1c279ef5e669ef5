package models

import "time"

// Customer is an optional linked identity; anonymous web orders carry their
// customer details inline on the order instead.
type Customer struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	TenantID       uint      `gorm:"not null;index" json:"tenant_id"`
	Tenant         Tenant    `gorm:"foreignKey:TenantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name           string    `gorm:"type:varchar(255)" json:"name"`
	Email          string    `gorm:"type:varchar(255);index" json:"email"`
	Phone          string    `gorm:"type:varchar(50)" json:"phone"`
	LoyaltyCredits float64   `gorm:"type:decimal(10,2);default:0" json:"loyalty_credits"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}
