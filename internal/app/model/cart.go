package model

import (
	"time"

	"gorm.io/gorm"
)

// CartItem holds one (customer, product) line. At most one line exists per
// pair; repeated adds increment the quantity instead of inserting.
type CartItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CustomerID uint           `gorm:"not null;index:idx_cart_customer_product" json:"customer_id"`
	ProductID  uint           `gorm:"not null;index:idx_cart_customer_product" json:"product_id"`
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer User    `gorm:"foreignKey:CustomerID" json:"-"`
	Product  Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
