package model

import "time"

// WishlistItem is a saved (customer, product) pair. The composite unique
// index makes a duplicate add fail at the database as well; rows are
// hard-deleted so a removed product can be saved again.
type WishlistItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"not null;uniqueIndex:idx_wishlist_customer_product" json:"customer_id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_wishlist_customer_product" json:"product_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Associations (loaded with Preload)
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
