package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	ImageURL      string         `json:"image_url"`
	IsBestseller  bool           `gorm:"default:false" json:"is_bestseller"`
	IsOnSale      bool           `gorm:"default:false" json:"is_on_sale"`
	SalePrice     *float64       `json:"sale_price,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category      Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	OrderItems    []OrderItem    `gorm:"foreignKey:ProductID" json:"-"`
	CartItems     []CartItem     `gorm:"foreignKey:ProductID" json:"-"`
	WishlistItems []WishlistItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the sale price when the product is on sale,
// the regular price otherwise.
func (p *Product) EffectivePrice() float64 {
	if p.IsOnSale && p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
