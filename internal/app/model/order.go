package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"

	PaymentMethodOnline PaymentMethod = "Online"
	PaymentMethodCOD    PaymentMethod = "COD"
)

// ValidOrderStatus reports whether s is one of the four order statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingInfo is the address snapshot embedded into an order at creation.
// Later edits or deletes of the source address never touch it.
type ShippingInfo struct {
	FullName   string `gorm:"size:100;not null" json:"full_name"`
	Phone      string `gorm:"size:30;not null" json:"phone"`
	Line1      string `gorm:"type:text;not null" json:"line1"`
	Line2      string `gorm:"type:text" json:"line2"`
	City       string `gorm:"size:100;not null" json:"city"`
	State      string `gorm:"size:100;not null" json:"state"`
	PostalCode string `gorm:"size:10;not null" json:"postal_code"`
	Country    string `gorm:"size:100;default:'India'" json:"country"`
}

// PaymentInfo carries fields for exactly one method: Online orders keep the
// gateway id/status and never CodPaid; COD orders keep CodPaid and never the
// gateway fields. Construction in the order service enforces the split.
type PaymentInfo struct {
	Method        PaymentMethod `gorm:"type:varchar(10);not null" json:"method"`
	GatewayID     string        `gorm:"size:100" json:"gateway_id,omitempty"`
	GatewayStatus string        `gorm:"size:50" json:"gateway_status,omitempty"`
	CodPaid       bool          `gorm:"default:false" json:"cod_paid"`
}

func (p PaymentInfo) IsCOD() bool {
	return p.Method == PaymentMethodCOD
}

type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	OrderNumber   string         `gorm:"size:40;uniqueIndex;not null" json:"order_number"`
	CustomerID    uint           `gorm:"not null;index" json:"customer_id"`
	ShippingInfo  ShippingInfo   `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_info"`
	PaymentInfo   PaymentInfo    `gorm:"embedded;embeddedPrefix:payment_" json:"payment_info"`
	TaxPrice      float64        `gorm:"default:0" json:"tax_price"`
	ShippingPrice float64        `gorm:"default:0" json:"shipping_price"`
	TotalPrice    float64        `gorm:"not null" json:"total_price"`
	OrderStatus   OrderStatus    `gorm:"type:varchar(20);default:'Processing'" json:"order_status"`
	DeliveredAt   *time.Time     `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Customer   User        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// IsTerminal reports whether no further status transition is permitted.
func (o *Order) IsTerminal() bool {
	return o.OrderStatus == OrderStatusDelivered || o.OrderStatus == OrderStatusCancelled
}

// OrderItem is a snapshot line: name, unit price and image are captured from
// the product at order-creation time.
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	OrderID   uint           `gorm:"not null;index" json:"order_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	Name      string         `gorm:"not null" json:"name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice float64        `gorm:"not null" json:"unit_price"`
	ImageURL  string         `json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
