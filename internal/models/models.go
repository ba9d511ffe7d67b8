package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string  `gorm:"primaryKey"     json:"id"`
	Name        string  `gorm:"not null"       json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `gorm:"not null"       json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Category    string  `gorm:"index;not null" json:"category"`
	Stock       int     `gorm:"default:0"      json:"stock"`
	SKU         string  `json:"sku,omitempty"`
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type Order struct {
	ID              string    `gorm:"primaryKey"               json:"id"`
	CustomerName    string    `gorm:"not null"                 json:"customer_name"`
	CustomerPhone   string    `gorm:"not null"                 json:"customer_phone"`
	CustomerAddress string    `json:"customer_address,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Total           float64   `gorm:"not null"                 json:"total"`
	Status          string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"  json:"-"`
	OrderID   string  `gorm:"index;not null"            json:"-"`
	ProductID string  `gorm:"not null"                  json:"product_id"`
	Quantity  int     `gorm:"not null;check:quantity>0" json:"quantity"`
	Price     float64 `gorm:"not null"                  json:"price"`
}
