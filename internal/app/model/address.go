package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CustomerID uint           `gorm:"not null;index" json:"customer_id"`
	FullName   string         `gorm:"size:100;not null" json:"full_name"`
	Phone      string         `gorm:"size:30;not null" json:"phone"`
	Line1      string         `gorm:"type:text;not null" json:"line1"`
	Line2      string         `gorm:"type:text" json:"line2"`
	City       string         `gorm:"size:100;not null" json:"city"`
	State      string         `gorm:"size:100;not null" json:"state"`
	PostalCode string         `gorm:"size:10;not null" json:"postal_code"`
	Country    string         `gorm:"size:100;default:'India'" json:"country"`
	IsDefault  bool           `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}
